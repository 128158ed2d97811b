// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/hio-assistant/internal/theme"
	"github.com/pdiddy/hio-assistant/pkg/types"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Inspect the front-end brand theme (show, css, scan)",
	Long: `Theme works with the color and font tokens the web front-end's styling
build uses. Overrides are read from the YAML file named by --theme or the
theme config key and merged over the built-in brand theme.`,
}

// --- show subcommand ---

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective theme as YAML or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		th, err := loadTheme()
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "yaml", "":
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(th); err != nil {
				return err
			}
			return enc.Close()
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(th)
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
	},
}

// --- css subcommand ---

var themeCSSCmd = &cobra.Command{
	Use:   "css",
	Short: "Write the theme tokens as CSS custom properties",
	RunE: func(cmd *cobra.Command, args []string) error {
		th, err := loadTheme()
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			return theme.WriteCSS(cmd.OutOrStdout(), th)
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		if err := theme.WriteCSS(f, th); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
		return nil
	},
}

// --- scan subcommand ---

var themeScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Report which theme tokens the template files use",
	Long: `Scan expands the theme's content globs under --root and reports, for each
color and font token, the template files that reference it through utility
classes. With --strict the command fails when any token is unused.`,
	RunE: runThemeScan,
}

func runThemeScan(cmd *cobra.Command, args []string) error {
	th, err := loadTheme()
	if err != nil {
		return err
	}
	root, _ := cmd.Flags().GetString("root")
	report, err := theme.Scan(os.DirFS(root), th)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Scanned %d template files.\n\n", report.Files)
		for _, u := range report.Used {
			fmt.Fprintf(w, "%-6s %-14s %d file(s)\n", u.Kind, u.Token, len(u.Files))
			for _, f := range u.Files {
				fmt.Fprintf(w, "         %s\n", f)
			}
		}
		if len(report.Unused) > 0 {
			fmt.Fprintln(w, "\nUnused tokens:")
			for _, u := range report.Unused {
				fmt.Fprintf(w, "%-6s %s\n", u.Kind, u.Token)
			}
		}
	}

	strict, _ := cmd.Flags().GetBool("strict")
	if strict && len(report.Unused) > 0 {
		return fmt.Errorf("%d theme token(s) unused", len(report.Unused))
	}
	return nil
}

func loadTheme() (types.Theme, error) {
	path := viper.GetString("theme")
	if path == "" {
		return theme.Default(), nil
	}
	return theme.Load(path)
}

func init() {
	themeCmd.PersistentFlags().String("theme", "", "YAML theme overrides")
	viper.BindPFlag("theme", themeCmd.PersistentFlags().Lookup("theme"))

	themeShowCmd.Flags().String("format", "yaml", "output format: yaml or json")
	themeCSSCmd.Flags().String("out", "", "write CSS to this file instead of stdout")
	themeScanCmd.Flags().String("root", ".", "front-end project root")
	themeScanCmd.Flags().Bool("json", false, "output the report as JSON")
	themeScanCmd.Flags().Bool("strict", false, "fail when a token is unused")

	themeCmd.AddCommand(themeShowCmd)
	themeCmd.AddCommand(themeCSSCmd)
	themeCmd.AddCommand(themeScanCmd)

	rootCmd.AddCommand(themeCmd)
}
