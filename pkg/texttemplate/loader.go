package texttemplate

import (
	"fmt"
	"os"
	"path/filepath"
)

// MemoryLoader serves includes from an in-memory map. Suitable for tests
// and embedded template sets.
type MemoryLoader map[string]string

func (m MemoryLoader) Load(path string) (string, error) {
	if s, ok := m[path]; ok {
		return s, nil
	}
	return "", fmt.Errorf("template not found: %s", path)
}

// DirLoader serves includes from files under root. Paths that point
// outside the root are rejected.
func DirLoader(root string) func(path string) (string, error) {
	return func(path string) (string, error) {
		if !filepath.IsLocal(path) {
			return "", fmt.Errorf("include path escapes root: %s", path)
		}
		data, err := os.ReadFile(filepath.Join(root, path))
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}
