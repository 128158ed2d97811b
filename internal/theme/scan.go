// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package theme

import (
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pdiddy/hio-assistant/pkg/types"
)

// colorUtilities are the class prefixes that take a color token, longest
// first so "border-t" wins over "border".
var colorUtilities = []string{
	"placeholder", "decoration", "outline", "border-t", "border-r", "border-b",
	"border-l", "border-x", "border-y", "border", "divide", "accent", "shadow",
	"stroke", "caret", "text", "fill", "ring", "from", "via", "bg", "to",
}

// TokenKind distinguishes color and font tokens.
type TokenKind string

const (
	KindColor TokenKind = "color"
	KindFont  TokenKind = "font"
)

// Usage lists the files referencing one token.
type Usage struct {
	Kind  TokenKind `json:"kind" yaml:"kind"`
	Token string    `json:"token" yaml:"token"`
	Files []string  `json:"files" yaml:"files"`
}

// Report is the result of scanning the content files.
type Report struct {
	// Files is the number of template files scanned.
	Files  int     `json:"files" yaml:"files"`
	Used   []Usage `json:"used" yaml:"used"`
	Unused []Usage `json:"unused" yaml:"unused"`
}

// ContentFiles expands the content globs against fsys and returns the
// matching files, sorted and without duplicates. A leading "./" on a pattern
// is ignored; brace alternatives and ** are supported.
func ContentFiles(fsys fs.FS, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	for _, p := range patterns {
		p = strings.TrimPrefix(p, "./")
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid content glob %q", p)
		}
		matches, err := doublestar.Glob(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", p, err)
		}
		for _, m := range matches {
			if info, err := fs.Stat(fsys, m); err == nil && !info.IsDir() {
				seen[m] = true
			}
		}
	}
	return slices.Sorted(maps.Keys(seen)), nil
}

// Scan reads every content file of th in fsys and reports which color and
// font tokens appear in utility classes (bg-hio-blue, hover:text-foreground,
// font-condensed, border-t-hio-grey/50, ...).
func Scan(fsys fs.FS, th types.Theme) (Report, error) {
	files, err := ContentFiles(fsys, th.Content)
	if err != nil {
		return Report{}, err
	}

	used := make(map[TokenKind]map[string]map[string]bool)
	used[KindColor] = make(map[string]map[string]bool)
	used[KindFont] = make(map[string]map[string]bool)
	mark := func(kind TokenKind, token, file string) {
		if used[kind][token] == nil {
			used[kind][token] = make(map[string]bool)
		}
		used[kind][token][file] = true
	}

	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return Report{}, fmt.Errorf("reading %s: %w", file, err)
		}
		for _, class := range classCandidates(string(data)) {
			if name, ok := colorToken(class); ok {
				if _, known := th.Colors[name]; known {
					mark(KindColor, name, file)
				}
			}
			if name, ok := strings.CutPrefix(class, "font-"); ok {
				if _, known := th.FontFamily[name]; known {
					mark(KindFont, name, file)
				}
			}
		}
	}

	report := Report{Files: len(files)}
	collect := func(kind TokenKind, names []string) {
		for _, name := range names {
			if fileSet, ok := used[kind][name]; ok {
				report.Used = append(report.Used, Usage{Kind: kind, Token: name, Files: slices.Sorted(maps.Keys(fileSet))})
			} else {
				report.Unused = append(report.Unused, Usage{Kind: kind, Token: name})
			}
		}
	}
	collect(KindColor, slices.Sorted(maps.Keys(th.Colors)))
	collect(KindFont, slices.Sorted(maps.Keys(th.FontFamily)))
	return report, nil
}

// classCandidates splits source text into class-like words and strips
// variant prefixes (hover:, md:), the important marker and opacity suffixes.
func classCandidates(src string) []string {
	words := strings.FieldsFunc(src, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return false
		case r == '-', r == ':', r == '/', r == '!', r == '_', r == '.':
			return false
		}
		return true
	})
	out := make([]string, 0, len(words))
	for _, w := range words {
		if i := strings.LastIndexByte(w, ':'); i >= 0 {
			w = w[i+1:]
		}
		w = strings.TrimPrefix(w, "!")
		if i := strings.IndexByte(w, '/'); i >= 0 {
			w = w[:i]
		}
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// colorToken returns the color name carried by a color utility class.
func colorToken(class string) (string, bool) {
	for _, prefix := range colorUtilities {
		if name, ok := strings.CutPrefix(class, prefix+"-"); ok && name != "" {
			return name, true
		}
	}
	return "", false
}
