// Package filex holds small filesystem helpers shared by the binaries.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir with its parents when missing and returns its
// absolute path. A relative dir is resolved against the working directory.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// EnsureParentDir makes sure the directory that will hold file exists.
func EnsureParentDir(file string) error {
	dir := filepath.Dir(file)
	if dir == "." {
		return nil
	}
	_, err := EnsureDir(dir)
	return err
}
