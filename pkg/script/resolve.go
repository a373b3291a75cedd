package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// resolvePath は大文字小文字を無視してファイルを探す
func resolvePath(path string) (string, error) {
	// まず直接アクセスを試みる
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	dir := filepath.Dir(path)
	name := strings.ToLower(filepath.Base(path))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.ToLower(entry.Name()) == name {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("file not found: %s (searched in %s): %w", filepath.Base(path), dir, os.ErrNotExist)
}
