// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package theme holds the brand design tokens used by the front-end styling
// build: named colors, font stacks, and the template globs the build scans.
// It loads overrides from YAML, validates tokens, reports which tokens the
// templates use, and renders them as CSS custom properties.
package theme

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"regexp"
	"slices"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/hio-assistant/pkg/types"
)

// templateExts are the file types scanned in each content directory.
const templateExts = "{js,ts,jsx,tsx,mdx}"

// Default returns the brand theme.
func Default() types.Theme {
	return types.Theme{
		Content: []string{
			"./pages/**/*." + templateExts,
			"./components/**/*." + templateExts,
			"./app/**/*." + templateExts,
		},
		Colors: map[string]string{
			"hio-blue":   "#12156e",
			"hio-green":  "#0d9f4c",
			"hio-orange": "#d4560a",
			"hio-grey":   "#999999",
			"hio-white":  "#ffffff",
			"hio-black":  "#000000",
			"background": "var(--background)",
			"foreground": "var(--foreground)",
		},
		FontFamily: map[string][]string{
			"sans":      {"Roboto", "sans-serif"},
			"condensed": {`"Roboto Condensed"`, "sans-serif"},
		},
	}
}

// Load reads a YAML theme from path and merges it over Default.
func Load(path string) (types.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Theme{}, fmt.Errorf("reading theme %s: %w", path, err)
	}
	var over types.Theme
	if err := yaml.Unmarshal(data, &over); err != nil {
		return types.Theme{}, fmt.Errorf("parsing theme %s: %w", path, err)
	}
	th := Merge(Default(), over)
	if err := Validate(th); err != nil {
		return types.Theme{}, fmt.Errorf("theme %s: %w", path, err)
	}
	return th, nil
}

// Merge extends base with over: colors and fonts in over replace or add to
// those in base, and a non-empty content list replaces base's. Neither input
// is modified.
func Merge(base, over types.Theme) types.Theme {
	out := types.Theme{
		Content:    slices.Clone(base.Content),
		Colors:     maps.Clone(base.Colors),
		FontFamily: make(map[string][]string, len(base.FontFamily)),
	}
	if out.Colors == nil {
		out.Colors = make(map[string]string)
	}
	for k, v := range base.FontFamily {
		out.FontFamily[k] = slices.Clone(v)
	}
	if len(over.Content) > 0 {
		out.Content = slices.Clone(over.Content)
	}
	maps.Copy(out.Colors, over.Colors)
	for k, v := range over.FontFamily {
		out.FontFamily[k] = slices.Clone(v)
	}
	return out
}

var (
	tokenName = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	hexColor  = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	cssVarRef = regexp.MustCompile(`^var\(--[A-Za-z0-9_-]+\)$`)
)

// Validate checks token names, color values (#rgb, #rrggbb or var(--name))
// and font stacks. All problems are reported together.
func Validate(th types.Theme) error {
	var errs []error
	for _, name := range slices.Sorted(maps.Keys(th.Colors)) {
		if !tokenName.MatchString(name) {
			errs = append(errs, fmt.Errorf("color %q: invalid token name", name))
		}
		v := th.Colors[name]
		if !hexColor.MatchString(v) && !cssVarRef.MatchString(v) {
			errs = append(errs, fmt.Errorf("color %q: invalid value %q", name, v))
		}
	}
	for _, name := range slices.Sorted(maps.Keys(th.FontFamily)) {
		if !tokenName.MatchString(name) {
			errs = append(errs, fmt.Errorf("font %q: invalid token name", name))
		}
		stack := th.FontFamily[name]
		if len(stack) == 0 || slices.ContainsFunc(stack, func(f string) bool { return strings.TrimSpace(f) == "" }) {
			errs = append(errs, fmt.Errorf("font %q: empty font in stack", name))
		}
	}
	if len(th.Content) == 0 {
		errs = append(errs, errors.New("content: at least one glob is required"))
	}
	return errors.Join(errs...)
}

// WriteCSS writes the tokens as CSS custom properties on :root, colors
// first, each group in name order.
func WriteCSS(w io.Writer, th types.Theme) error {
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, name := range slices.Sorted(maps.Keys(th.Colors)) {
		fmt.Fprintf(&b, "  --color-%s: %s;\n", name, th.Colors[name])
	}
	for _, name := range slices.Sorted(maps.Keys(th.FontFamily)) {
		fmt.Fprintf(&b, "  --font-%s: %s;\n", name, strings.Join(th.FontFamily[name], ", "))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}
