// Package catalog loads item definitions from YAML into an inventory
// registry.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gravitas-games/gridstash/pkg/inventory"
)

// File is the on-disk catalog format.
type File struct {
	Items []Item `yaml:"items"`
}

// Item is one catalog entry.
type Item struct {
	ID        string `yaml:"id"`
	NumericID int64  `yaml:"numeric_id"`
	Name      string `yaml:"name"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Category  string `yaml:"category"`
}

// Descriptor converts the entry into an item descriptor.
func (it Item) Descriptor() (inventory.ItemDescriptor, error) {
	cat, err := inventory.ParseCategory(it.Category)
	if err != nil {
		return inventory.ItemDescriptor{}, err
	}
	if it.Width < 0 || it.Height < 0 {
		return inventory.ItemDescriptor{}, fmt.Errorf("item %s: negative footprint", it.ID)
	}
	return inventory.ItemDescriptor{
		ID:        inventory.ItemID(it.ID),
		Name:      it.Name,
		Footprint: inventory.Footprint{W: it.Width, H: it.Height},
		Category:  cat,
	}, nil
}

// Load reads a catalog file.
func Load(path string) (*inventory.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes catalog YAML into a new registry.
func Parse(data []byte) (*inventory.Registry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	reg := inventory.NewRegistry()
	for i, it := range f.Items {
		desc, err := it.Descriptor()
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if err := reg.RegisterWithID(desc, inventory.RegistryID(it.NumericID)); err != nil {
			return nil, fmt.Errorf("catalog entry %d (%s): %w", i, it.ID, err)
		}
	}
	return reg, nil
}
