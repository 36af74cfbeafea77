// Package yaml loads furnex configuration files.
package yaml

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/furnex"
	"gopkg.in/yaml.v3"
)

// LoadConfig overlays the YAML file at path onto cfg. Keys absent from the
// file keep their value in cfg. Relative dataDir and database paths are
// resolved against the file's directory.
//
// Returns ENOTFOUND if the file does not exist and EINVALID if it cannot
// be decoded or the result fails validation.
func LoadConfig(path string, cfg *furnex.Config) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return furnex.Errorf(furnex.ENOTFOUND, "config file not found: %s", path)
	}
	if err != nil {
		return err
	}
	defer f.Close()

	dataDir, dbPath := cfg.DataDir, cfg.DatabasePath

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return furnex.Errorf(furnex.EINVALID, "config file %s: %v", path, err)
	}

	base := filepath.Dir(path)
	if cfg.DataDir != dataDir {
		cfg.DataDir = resolve(base, cfg.DataDir)
	}
	if cfg.DatabasePath != dbPath {
		cfg.DatabasePath = resolve(base, cfg.DatabasePath)
	}

	if err := cfg.Validate(); err != nil {
		return furnex.Errorf(furnex.EINVALID, "config file %s: %s", path, furnex.ErrorMessage(err))
	}
	return nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
