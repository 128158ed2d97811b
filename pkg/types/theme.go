// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Theme holds the named design tokens consumed by the front-end's styling
// build. Content lists the glob patterns of template files the build scans
// for utility classes.
type Theme struct {
	Content    []string            `json:"content" yaml:"content"`
	Colors     map[string]string   `json:"colors" yaml:"colors"`
	FontFamily map[string][]string `json:"font_family" yaml:"font_family"`
}
