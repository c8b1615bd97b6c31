package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/spelltree/internal/domain"
)

// ErrNoTree is returned when a tree file has no schools block.
var ErrNoTree = errors.New("no tree data")

// LoadTree reads a tree written by `spelltree build`. Both the bare tree
// object and the {success, treeData} result wrapper are accepted.
func LoadTree(path string) (*domain.TreeData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tree, err := ParseTree(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return tree, nil
}

// ParseTree decodes tree JSON.
func ParseTree(data []byte) (*domain.TreeData, error) {
	var probe struct {
		TreeData *domain.TreeData              `json:"treeData"`
		Schools  map[string]*domain.SchoolTree `json:"schools"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decoding tree: %w", err)
	}
	if probe.TreeData != nil {
		if len(probe.TreeData.Schools) == 0 {
			return nil, ErrNoTree
		}
		return probe.TreeData, nil
	}
	if len(probe.Schools) == 0 {
		return nil, ErrNoTree
	}

	var tree domain.TreeData
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decoding tree: %w", err)
	}
	return &tree, nil
}

// WriteJSON writes v as indented JSON, creating the file's directory.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	data = append(data, '\n')
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
