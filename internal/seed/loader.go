// Package seed imports a starter playlist from YAML into an empty collection.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Playlist is the top-level structure of a seed file:
//
//	videos:
//	  - nombre: Never Gonna Give You Up
//	    link: https://www.youtube.com/watch?v=dQw4w9WgXcQ
type Playlist struct {
	Videos []Entry `yaml:"videos"`
}

// Entry is one video to import. Fields are raw input; the service validates and normalizes them.
type Entry struct {
	Name string `yaml:"nombre"`
	Link string `yaml:"link"`
}

// Loader reads a seed file from disk.
type Loader struct {
	filePath string
}

// NewLoader creates a loader for filePath.
func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Load reads and parses the seed file.
func (l *Loader) Load() (*Playlist, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var p Playlist
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}
	return &p, nil
}
