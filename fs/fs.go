// Package fs keeps the URL list, test set and evaluation summary as files
// in the data directory.
package fs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// writeJSON writes v as indented JSON to path. The data goes to a
// temporary file in the same directory first and is renamed into place,
// so readers never see a partial file.
func writeJSON(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
