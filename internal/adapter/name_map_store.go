package adapter

import (
	"fmt"

	"gopkg.in/yaml.v3"

	m "checkgen.dev/pkg/checkgen/internal/model"
)

const nameMapPerm = 0o644

// NameMapStore persists the display names assigned during a run so that
// reviewers can rename generated variables to something meaningful.
type NameMapStore interface {
	SaveNameMap(path m.Path, names m.NameMap) error
	LoadNameMap(path m.Path) (m.NameMap, error)
}

// YAMLNameMapStore stores name maps as YAML documents.
type YAMLNameMapStore struct {
	fs SourceFSAdapter
}

// NewNameMapStore creates a YAMLNameMapStore writing through fs.
func NewNameMapStore(fs SourceFSAdapter) *YAMLNameMapStore {
	return &YAMLNameMapStore{fs: fs}
}

// SaveNameMap encodes names as YAML and writes it to path.
func (s *YAMLNameMapStore) SaveNameMap(path m.Path, names m.NameMap) error {
	data, err := yaml.Marshal(names)
	if err != nil {
		return fmt.Errorf("encode name map: %w", err)
	}

	return s.fs.WriteFile(path, data, nameMapPerm)
}

// LoadNameMap reads a name map written by SaveNameMap.
func (s *YAMLNameMapStore) LoadNameMap(path m.Path) (m.NameMap, error) {
	var names m.NameMap

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return names, err
	}

	if err := yaml.Unmarshal(data, &names); err != nil {
		return names, fmt.Errorf("decode name map %s: %w", path, err)
	}

	return names, nil
}
