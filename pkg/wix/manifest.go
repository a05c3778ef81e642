package wix

import (
	"os"

	"github.com/BurntSushi/toml"
)

// ManifestFile is the conventional name of a Rust package manifest,
// looked up relative to the working directory.
const ManifestFile = "Cargo.toml"

// Manifest holds the handful of Cargo.toml fields the installer
// needs. Author is the first entry of package.authors; BinName falls
// back to the package name when no [bin] override is present.
type Manifest struct {
	Name        string
	Version     string
	Description string
	Author      string
	BinName     string
}

// ReadManifest loads a Cargo.toml and extracts the fields above. Each
// required field fails independently with a KindManifest error naming
// the field, so a caller can tell exactly what the manifest lacks.
func ReadManifest(path string) (*Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, ioError("reading manifest "+path, err)
	}

	var raw map[string]interface{}
	if _, err := toml.Decode(string(content), &raw); err != nil {
		return nil, parseError("parsing manifest "+path, err)
	}

	pkg := tableOf(raw, "package")

	version, ok := stringOf(pkg, "version")
	if !ok {
		return nil, manifestError("version")
	}

	name, ok := stringOf(pkg, "name")
	if !ok {
		return nil, manifestError("name")
	}

	description, ok := stringOf(pkg, "description")
	if !ok {
		return nil, manifestError("description")
	}

	author, ok := firstAuthor(pkg)
	if !ok {
		return nil, manifestError("authors")
	}

	m := &Manifest{
		Name:        name,
		Version:     version,
		Description: description,
		Author:      author,
		BinName:     name,
	}

	// The [bin] override is best effort. A missing or misshapen bin
	// section just means the binary is named after the package.
	if binName, ok := stringOf(binTable(raw), "name"); ok {
		m.BinName = binName
	}

	return m, nil
}

func tableOf(raw map[string]interface{}, key string) map[string]interface{} {
	table, _ := raw[key].(map[string]interface{})
	return table
}

func stringOf(table map[string]interface{}, key string) (string, bool) {
	s, ok := table[key].(string)
	return s, ok
}

func firstAuthor(pkg map[string]interface{}) (string, bool) {
	authors, ok := pkg["authors"].([]interface{})
	if !ok || len(authors) == 0 {
		return "", false
	}
	first, ok := authors[0].(string)
	return first, ok
}

// binTable handles both spellings of the bin section. Cargo.toml
// normally uses an array of tables ([[bin]]) but the plain [bin]
// table shows up in the wild too.
func binTable(raw map[string]interface{}) map[string]interface{} {
	switch bin := raw["bin"].(type) {
	case map[string]interface{}:
		return bin
	case []map[string]interface{}:
		if len(bin) > 0 {
			return bin[0]
		}
	case []interface{}:
		if len(bin) > 0 {
			if table, ok := bin[0].(map[string]interface{}); ok {
				return table
			}
		}
	}
	return nil
}
