// Package skills provides the embedded skill documents shipped with
// this marketplace and helpers to install them for an AI assistant.
package skills

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed threat-model-assessment/*
var skillFiles embed.FS

// Info describes an installable skill.
type Info struct {
	Name        string
	Description string
	Dir         string
}

// Available lists all skills shipped in this repository.
var Available = []Info{
	{
		Name:        "threat-model-assessment",
		Description: "Assess a codebase against security countermeasurements and file remediation tickets",
		Dir:         "threat-model-assessment",
	},
}

// ByName returns a skill by name, or nil if not found.
func ByName(name string) *Info {
	for i := range Available {
		if Available[i].Name == name {
			return &Available[i]
		}
	}
	return nil
}

// Files returns the embedded files of a skill, keyed by their path
// relative to the skill directory.
func Files(s *Info) (map[string][]byte, error) {
	out := make(map[string][]byte)
	err := fs.WalkDir(skillFiles, s.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := skillFiles.ReadFile(path)
		if err != nil {
			return err
		}
		out[path[len(s.Dir)+1:]] = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read skill %s: %w", s.Name, err)
	}
	return out, nil
}

// ReadDoc returns the main document of a skill for display.
func ReadDoc(s *Info) (string, error) {
	data, err := skillFiles.ReadFile(s.Dir + "/SKILL.md")
	if err != nil {
		return "", fmt.Errorf("read skill doc: %w", err)
	}
	return string(data), nil
}
