// Package confkit carries the configuration plumbing shared by the API
// server and the refresher: one-shot dotenv loading and hydration of
// sub-config files referenced from the main YAML config.
package confkit

import (
	"os"
	"path/filepath"
)

// ResolvePath expands environment variables in file and resolves it against
// base when it is relative. Absolute paths are returned as expanded.
func ResolvePath(base, file string) string {
	file = os.ExpandEnv(file)
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(base, file)
}

// Section points at a sub-config file from within the main config. The zero
// Section is valid and stays empty: hydration only runs when File is set.
type Section[T any] struct {
	File  string `json:",optional"`
	Value *T     `json:"-"`
}

// Hydrate resolves File against base, runs the loader on it and keeps the
// result in Value. File is rewritten to the resolved path so later log lines
// point at the file actually read.
func (s *Section[T]) Hydrate(base string, loader func(string) (*T, error)) error {
	if s.File == "" {
		return nil
	}
	path := ResolvePath(base, s.File)
	value, err := loader(path)
	if err != nil {
		return err
	}
	s.File, s.Value = path, value
	return nil
}
