package catalogfile

import (
	"fmt"
	"os"

	"dorm-services/internal/domain/space"

	"gopkg.in/yaml.v3"
)

type fileSpace struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Capacity int    `yaml:"capacity"`
}

type fileCatalog struct {
	Spaces    []fileSpace `yaml:"spaces"`
	TimeSlots []string    `yaml:"timeSlots"`
}

// Load returns the built-in catalog when path is empty.
func Load(path string) (*space.Catalog, error) {
	if path == "" {
		return space.DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*space.Catalog, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	spaces := make([]space.Space, 0, len(fc.Spaces))
	for i, s := range fc.Spaces {
		sp, err := space.NewSpace(s.ID, s.Name, s.Capacity)
		if err != nil {
			return nil, fmt.Errorf("spaces[%d]: %w", i, err)
		}
		spaces = append(spaces, sp)
	}

	catalog, err := space.NewCatalog(spaces, fc.TimeSlots)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return catalog, nil
}
