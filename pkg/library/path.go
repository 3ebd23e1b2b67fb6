package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveDir expands a leading ~ and cleans the library directory path.
func ResolveDir(dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return "", errors.New("library directory is required")
	}
	expanded, err := expandHome(dir)
	if err != nil {
		return "", err
	}
	return filepath.Clean(expanded), nil
}

// CleanName reduces a requested game name to a bare file name so that it
// cannot leave the library directory.
func CleanName(name string) (string, error) {
	trimmed := strings.TrimSpace(strings.ReplaceAll(name, `\`, "/"))
	if trimmed == "" {
		return "", errors.New("game file name is required")
	}
	base := filepath.Base(trimmed)
	switch {
	case base == "." || base == ".." || base == string(filepath.Separator):
		return "", fmt.Errorf("invalid game file name %q", name)
	case strings.HasPrefix(base, "."):
		return "", fmt.Errorf("invalid game file name %q: hidden files are not games", name)
	case strings.HasSuffix(base, metadataSuffix):
		return "", fmt.Errorf("invalid game file name %q: reserved for metadata", name)
	}
	return base, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	if path == "~" {
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:]), nil
	}

	return path, nil
}
