package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"eventqa/internal/domain"
)

type presenterFile struct {
	Presenters []*domain.Presenter `yaml:"presenters"`
}

// LoadPresenters reads a presenter seed file. An empty path returns no presenters.
func LoadPresenters(path string) ([]*domain.Presenter, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presenters file: %w", err)
	}

	var file presenterFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse presenters file %s: %w", path, err)
	}

	seen := make(map[string]bool, len(file.Presenters))
	for i, p := range file.Presenters {
		if p == nil || p.Name == "" {
			return nil, fmt.Errorf("presenters file %s: entry %d has no name", path, i+1)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("presenters file %s: duplicate name %q", path, p.Name)
		}
		seen[p.Name] = true
	}
	return file.Presenters, nil
}
