// Package importer reads item lists and finished trees from disk.
package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/spelltree/internal/domain"
)

// ErrNoItems is returned when an input file holds no item records.
var ErrNoItems = errors.New("no items in input")

// itemFile is the object form of an input file.
type itemFile struct {
	Spells []domain.Item `json:"spells"`
}

// LoadItems reads and parses an item input file.
func LoadItems(path string) ([]domain.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	items, err := ParseItems(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return items, nil
}

// ParseItems accepts either a bare JSON array of items or an object with a
// "spells" array.
func ParseItems(data []byte) ([]domain.Item, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrNoItems
	}

	var items []domain.Item
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decoding item array: %w", err)
		}
	case '{':
		var f itemFile
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decoding item object: %w", err)
		}
		items = f.Spells
	default:
		return nil, fmt.Errorf("expected a JSON array or an object with a spells key")
	}

	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}
