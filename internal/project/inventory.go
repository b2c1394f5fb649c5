package project

import (
	"fmt"

	"github.com/piwi3910/LoadPlan/internal/model"
)

// DefaultInventoryPath returns ~/.loadplan/inventory.json.
func DefaultInventoryPath() string {
	return dataFile("inventory.json")
}

// SaveInventory writes the inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, inv)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	var inv model.Inventory
	found, err := readJSON(path, &inv)
	if err != nil {
		return model.Inventory{}, err
	}
	if !found {
		inv = model.DefaultInventory()
		return inv, SaveInventory(path, inv)
	}
	return inv, nil
}

// LoadOrCreateInventory loads the inventory from the default path.
// If the file does not exist, it creates one with default entries.
func LoadOrCreateInventory() (model.Inventory, string, error) {
	path := DefaultInventoryPath()
	inv, err := LoadInventory(path)
	return inv, path, err
}

// ExportInventory exports the inventory to a user-specified JSON file.
func ExportInventory(path string, inv model.Inventory) error {
	return SaveInventory(path, inv)
}

// ImportInventory imports an inventory from a user-specified JSON file,
// merging it with the existing inventory. Duplicate IDs are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	var imported model.Inventory
	found, err := readJSON(path, &imported)
	if err != nil {
		return existing, err
	}
	if !found {
		return existing, fmt.Errorf("inventory file %s does not exist", path)
	}
	return mergeInventory(existing, imported), nil
}

func mergeInventory(existing, imported model.Inventory) model.Inventory {
	containerIDs := make(map[string]bool, len(existing.Containers))
	for _, c := range existing.Containers {
		containerIDs[c.ID] = true
	}
	boxIDs := make(map[string]bool, len(existing.Boxes))
	for _, b := range existing.Boxes {
		boxIDs[b.ID] = true
	}

	for _, c := range imported.Containers {
		if !containerIDs[c.ID] {
			existing.Containers = append(existing.Containers, c)
			containerIDs[c.ID] = true
		}
	}
	for _, b := range imported.Boxes {
		if !boxIDs[b.ID] {
			existing.Boxes = append(existing.Boxes, b)
			boxIDs[b.ID] = true
		}
	}
	return existing
}
