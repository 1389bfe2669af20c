package skills

import (
	"fmt"
	"os"
	"path/filepath"
)

// Install copies a skill's embedded files into targetDir/<name>/,
// creating directories as needed. Existing files are overwritten so
// reinstalling upgrades the skill in place.
func Install(s *Info, targetDir string) (string, error) {
	files, err := Files(s)
	if err != nil {
		return "", err
	}

	dest := filepath.Join(targetDir, s.Name)
	for rel, data := range files {
		path := filepath.Join(dest, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
	}
	return dest, nil
}
