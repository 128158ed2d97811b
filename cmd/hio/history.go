// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hio-assistant/internal/gateway"
	"github.com/pdiddy/hio-assistant/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, show, or clear locally recorded queries",
	Long: `History manages the local SQLite log of queries sent with "hio query".
The database lives in history.dir (default ~/.local/state/hio).`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list [search]",
	Short: "List recent queries, optionally filtered by text",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(historyConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		var entries []history.Entry
		if len(args) > 0 {
			entries, err = store.Search(cmd.Context(), args[0], limit)
		} else {
			entries, err = store.List(cmd.Context(), limit)
		}
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "table", "":
			history.FormatTable(entries, cmd.OutOrStdout())
			return nil
		case "json":
			return history.FormatJSON(entries, cmd.OutOrStdout())
		case "yaml":
			return history.FormatYAML(entries, cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported format %q: use table, json or yaml", format)
		}
	},
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recorded query and its answer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(historyConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		e, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "ID:       %s\n", e.ID)
		fmt.Fprintf(w, "Time:     %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "Endpoint: %s\n", e.Endpoint)
		fmt.Fprintf(w, "Status:   %s (%s)\n", e.Status, e.Duration)
		fmt.Fprintf(w, "Query:    %s\n\n", e.Query)
		if e.Status == history.StatusError {
			fmt.Fprintf(w, "Error: %s\n", e.Error)
			return nil
		}
		result, err := decodeStored(e.Response)
		if err != nil {
			fmt.Fprintln(w, e.Response)
			return nil
		}
		return gateway.FormatText(result, w)
	},
}

// --- clear subcommand ---

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded queries",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(historyConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Clear(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d entries.\n", n)
		return nil
	},
}

// decodeStored parses a recorded JSON answer for display.
func decodeStored(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func init() {
	historyCmd.PersistentFlags().String("history-dir", "", "directory holding history.db")
	viper.BindPFlag("history.dir", historyCmd.PersistentFlags().Lookup("history-dir"))

	historyListCmd.Flags().Int("limit", 0, "maximum entries (0 = history.max_results)")
	historyListCmd.Flags().String("format", "table", "output format: table, json or yaml")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)

	rootCmd.AddCommand(historyCmd)
}
