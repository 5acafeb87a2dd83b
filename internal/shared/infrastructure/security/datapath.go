// Package security validates user-supplied locations before the app touches them.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidDataPath is returned for data file locations that cannot be used.
var ErrInvalidDataPath = errors.New("invalid data path")

var forbiddenChars = []string{";", "&", "|", "$", "`", "<", ">", "\n", "\r", "\x00"}

// ValidateDataPath cleans a configured data file location and returns it as an
// absolute path. Symlinks are resolved when the file already exists.
func ValidateDataPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidDataPath)
	}
	for _, char := range forbiddenChars {
		if strings.Contains(path, char) {
			return "", fmt.Errorf("%w: forbidden character %q in %s", ErrInvalidDataPath, char, path)
		}
	}

	clean, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("resolve data path: %w", err)
	}

	info, err := os.Stat(clean)
	switch {
	case os.IsNotExist(err):
		return clean, nil
	case err != nil:
		return "", fmt.Errorf("stat data path: %w", err)
	case info.IsDir():
		return "", fmt.Errorf("%w: %s is a directory", ErrInvalidDataPath, clean)
	}

	resolved, err := filepath.EvalSymlinks(clean)
	if err != nil {
		return "", fmt.Errorf("resolve data path: %w", err)
	}
	return resolved, nil
}
