package wix

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const fullManifest = `
[package]
name = "demo"
version = "2.1.0"
description = "A demonstration package"
authors = ["First Author <first@example.com>", "Second Author"]
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "Cargo.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadManifest(t *testing.T) {
	t.Parallel()

	m, err := ReadManifest(writeManifest(t, fullManifest))
	require.NoError(t, err)

	require.Equal(t, "demo", m.Name)
	require.Equal(t, "2.1.0", m.Version)
	require.Equal(t, "A demonstration package", m.Description)
	require.Equal(t, "First Author <first@example.com>", m.Author)
	require.Equal(t, "demo", m.BinName, "bin name defaults to the package name")
}

func TestReadManifestBinOverride(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name     string
		extra    string
		expected string
	}{
		{"bin table", "[bin]\nname = \"demo-cli\"\n", "demo-cli"},
		{"bin array of tables", "[[bin]]\nname = \"demo-cli\"\n", "demo-cli"},
		{"bin name wrong type", "[bin]\nname = 3\n", "demo"},
		{"no bin section", "", "demo"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := ReadManifest(writeManifest(t, fullManifest+tt.extra))
			require.NoError(t, err)
			require.Equal(t, tt.expected, m.BinName)
		})
	}
}

func TestReadManifestMissingFields(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		field    string
		manifest string
	}{
		{
			"version",
			"[package]\nname = \"demo\"\ndescription = \"d\"\nauthors = [\"a\"]\n",
		},
		{
			"name",
			"[package]\nversion = \"2.1.0\"\ndescription = \"d\"\nauthors = [\"a\"]\n",
		},
		{
			"description",
			"[package]\nname = \"demo\"\nversion = \"2.1.0\"\nauthors = [\"a\"]\n",
		},
		{
			"authors",
			"[package]\nname = \"demo\"\nversion = \"2.1.0\"\ndescription = \"d\"\n",
		},
		{
			"authors",
			"[package]\nname = \"demo\"\nversion = \"2.1.0\"\ndescription = \"d\"\nauthors = []\n",
		},
		{
			"version",
			"[package]\nname = \"demo\"\nversion = 210\ndescription = \"d\"\nauthors = [\"a\"]\n",
		},
		{
			"version",
			"[dependencies]\nserde = \"1\"\n",
		},
	}

	for i, tt := range tests {
		i, tt := i, tt
		t.Run(fmt.Sprintf("%s_%d", tt.field, i), func(t *testing.T) {
			t.Parallel()

			_, err := ReadManifest(writeManifest(t, tt.manifest))
			require.Error(t, err)

			werr, ok := err.(*Error)
			require.True(t, ok)
			require.Equal(t, KindManifest, werr.Kind())
			require.Equal(t, tt.field, werr.Field())
			require.Contains(t, werr.Error(), "no '"+tt.field+"' field found")
		})
	}
}

func TestReadManifestParseFailure(t *testing.T) {
	t.Parallel()

	_, err := ReadManifest(writeManifest(t, "[package\nname = demo"))
	require.Error(t, err)

	werr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, KindParse, werr.Kind())
	require.Error(t, werr.Unwrap(), "parse errors keep the underlying cause")
}

func TestReadManifestMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ReadManifest(filepath.Join(t.TempDir(), "Cargo.toml"))
	require.Error(t, err)

	werr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, KindIo, werr.Kind())
	require.ErrorIs(t, err, os.ErrNotExist)
}
