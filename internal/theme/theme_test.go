// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package theme

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/hio-assistant/pkg/types"
)

func TestDefault(t *testing.T) {
	th := Default()

	assert.Equal(t, "#12156e", th.Colors["hio-blue"])
	assert.Equal(t, "#0d9f4c", th.Colors["hio-green"])
	assert.Equal(t, "#d4560a", th.Colors["hio-orange"])
	assert.Equal(t, "var(--background)", th.Colors["background"])
	assert.Len(t, th.Colors, 8)
	assert.Equal(t, []string{`"Roboto Condensed"`, "sans-serif"}, th.FontFamily["condensed"])
	assert.Equal(t, []string{
		"./pages/**/*.{js,ts,jsx,tsx,mdx}",
		"./components/**/*.{js,ts,jsx,tsx,mdx}",
		"./app/**/*.{js,ts,jsx,tsx,mdx}",
	}, th.Content)
	assert.NoError(t, Validate(th))
}

func TestDefaultReturnsFreshCopies(t *testing.T) {
	a := Default()
	a.Colors["hio-blue"] = "#000"
	assert.Equal(t, "#12156e", Default().Colors["hio-blue"])
}

func TestMerge(t *testing.T) {
	base := Default()
	over := types.Theme{
		Colors:     map[string]string{"hio-blue": "#0000ff", "hio-teal": "#008080"},
		FontFamily: map[string][]string{"mono": {"Roboto Mono", "monospace"}},
	}

	got := Merge(base, over)
	assert.Equal(t, "#0000ff", got.Colors["hio-blue"])
	assert.Equal(t, "#008080", got.Colors["hio-teal"])
	assert.Equal(t, "#0d9f4c", got.Colors["hio-green"])
	assert.Equal(t, []string{"Roboto Mono", "monospace"}, got.FontFamily["mono"])
	assert.Equal(t, base.Content, got.Content)

	// Inputs are untouched.
	assert.Equal(t, "#12156e", base.Colors["hio-blue"])
	assert.NotContains(t, base.FontFamily, "mono")

	got = Merge(base, types.Theme{Content: []string{"./src/**/*.tsx"}})
	assert.Equal(t, []string{"./src/**/*.tsx"}, got.Content)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.Theme)
		wantErr []string
	}{
		{name: "default is valid", mutate: func(*types.Theme) {}},
		{
			name:   "short hex is valid",
			mutate: func(th *types.Theme) { th.Colors["hio-red"] = "#f00" },
		},
		{
			name:    "bad color value",
			mutate:  func(th *types.Theme) { th.Colors["hio-red"] = "red" },
			wantErr: []string{`color "hio-red": invalid value "red"`},
		},
		{
			name:    "bad token name",
			mutate:  func(th *types.Theme) { th.Colors["Hio_Red"] = "#ff0000" },
			wantErr: []string{`color "Hio_Red": invalid token name`},
		},
		{
			name:    "empty font stack",
			mutate:  func(th *types.Theme) { th.FontFamily["serif"] = nil },
			wantErr: []string{`font "serif": empty font in stack`},
		},
		{
			name: "several problems",
			mutate: func(th *types.Theme) {
				th.Colors["hio-red"] = "#ff00"
				th.FontFamily["serif"] = []string{" "}
				th.Content = nil
			},
			wantErr: []string{`color "hio-red"`, `font "serif"`, "content: at least one glob"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := Default()
			tt.mutate(&th)
			err := Validate(th)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, msg := range tt.wantErr {
				assert.Contains(t, err.Error(), msg)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
colors:
  hio-orange: "#e06010"
  hio-sand: "#f4e4c1"
font_family:
  display: ["Oswald", "sans-serif"]
`), 0o644))

	th, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "#e06010", th.Colors["hio-orange"])
	assert.Equal(t, "#f4e4c1", th.Colors["hio-sand"])
	assert.Equal(t, "#12156e", th.Colors["hio-blue"])
	assert.Equal(t, []string{"Oswald", "sans-serif"}, th.FontFamily["display"])
	assert.Len(t, th.Content, 3)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading theme")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("colors: [unclosed"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing theme")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("colors:\n  hio-blue: navy\n"), 0o644))
	_, err = Load(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid value "navy"`)
}

func TestWriteCSS(t *testing.T) {
	th := types.Theme{
		Colors: map[string]string{
			"hio-green":  "#0d9f4c",
			"background": "var(--background)",
		},
		FontFamily: map[string][]string{
			"sans":      {"Roboto", "sans-serif"},
			"condensed": {`"Roboto Condensed"`, "sans-serif"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSS(&buf, th))
	assert.Equal(t, `:root {
  --color-background: var(--background);
  --color-hio-green: #0d9f4c;
  --font-condensed: "Roboto Condensed", sans-serif;
  --font-sans: Roboto, sans-serif;
}
`, buf.String())
}
