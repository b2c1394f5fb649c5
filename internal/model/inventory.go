package model

import "github.com/google/uuid"

// ContainerPreset represents a reusable container definition.
type ContainerPreset struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Length        float64 `json:"length"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	WallThickness float64 `json:"wall_thickness"`
	PricePerUnit  float64 `json:"price_per_unit"` // Freight cost per container, 0 if unknown
}

// NewContainerPreset creates a new ContainerPreset with a generated ID.
func NewContainerPreset(name string, length, width, height, wall float64) ContainerPreset {
	return ContainerPreset{
		ID:            uuid.New().String()[:8],
		Name:          name,
		Length:        length,
		Width:         width,
		Height:        height,
		WallThickness: wall,
	}
}

// ToContainerSpec converts the preset into a ContainerSpec.
func (cp ContainerPreset) ToContainerSpec() ContainerSpec {
	return ContainerSpec{
		Label:         cp.Name,
		Length:        cp.Length,
		Width:         cp.Width,
		Height:        cp.Height,
		WallThickness: cp.WallThickness,
	}
}

// BoxPreset represents a reusable box definition (a carton or crate size).
type BoxPreset struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Dimensions BoxDimensions `json:"dimensions"`
}

// NewBoxPreset creates a new BoxPreset with a generated ID.
func NewBoxPreset(name string, length, width, height float64) BoxPreset {
	return BoxPreset{
		ID:         uuid.New().String()[:8],
		Name:       name,
		Dimensions: BoxDimensions{Length: length, Width: width, Height: height},
	}
}

// ToBoxItem converts a BoxPreset into a packing list line with the given quantity.
func (bp BoxPreset) ToBoxItem(qty int) BoxItem {
	return NewBoxItem(bp.Name, bp.Dimensions.Length, bp.Dimensions.Width, bp.Dimensions.Height, qty)
}

// Inventory holds the user's saved container and box presets.
type Inventory struct {
	Containers []ContainerPreset `json:"containers"`
	Boxes      []BoxPreset       `json:"boxes"`
}

// DefaultInventory returns an inventory populated with common defaults.
// Container sizes are ISO outer dimensions; the wall thickness brings the
// interior close to the usual published inside dimensions.
func DefaultInventory() Inventory {
	return Inventory{
		Containers: []ContainerPreset{
			NewContainerPreset("20ft Standard", 6058, 2438, 2591, 80),
			NewContainerPreset("40ft Standard", 12192, 2438, 2591, 80),
			NewContainerPreset("40ft High Cube", 12192, 2438, 2896, 80),
			NewContainerPreset("Euro Pallet (1.8m stack)", 1200, 800, 1800, 0),
		},
		Boxes: []BoxPreset{
			NewBoxPreset("Carton S 400x300x300", 400, 300, 300),
			NewBoxPreset("Carton M 600x400x400", 600, 400, 400),
			NewBoxPreset("Carton L 800x600x500", 800, 600, 500),
			NewBoxPreset("Crate 1200x800x900", 1200, 800, 900),
			NewBoxPreset("Cube 300", 300, 300, 300),
		},
	}
}

// FindContainerByID returns a pointer to the container preset with the given ID, or nil.
func (inv *Inventory) FindContainerByID(id string) *ContainerPreset {
	for i := range inv.Containers {
		if inv.Containers[i].ID == id {
			return &inv.Containers[i]
		}
	}
	return nil
}

// FindBoxByID returns a pointer to the box preset with the given ID, or nil.
func (inv *Inventory) FindBoxByID(id string) *BoxPreset {
	for i := range inv.Boxes {
		if inv.Boxes[i].ID == id {
			return &inv.Boxes[i]
		}
	}
	return nil
}

// ContainerNames returns a list of container preset names for UI dropdowns.
func (inv *Inventory) ContainerNames() []string {
	names := make([]string, len(inv.Containers))
	for i, c := range inv.Containers {
		names[i] = c.Name
	}
	return names
}

// BoxNames returns a list of box preset names for UI dropdowns.
func (inv *Inventory) BoxNames() []string {
	names := make([]string, len(inv.Boxes))
	for i, b := range inv.Boxes {
		names[i] = b.Name
	}
	return names
}

// FindContainerByName returns a pointer to the first container preset with the given name, or nil.
func (inv *Inventory) FindContainerByName(name string) *ContainerPreset {
	for i := range inv.Containers {
		if inv.Containers[i].Name == name {
			return &inv.Containers[i]
		}
	}
	return nil
}

// FindBoxByName returns a pointer to the first box preset with the given name, or nil.
func (inv *Inventory) FindBoxByName(name string) *BoxPreset {
	for i := range inv.Boxes {
		if inv.Boxes[i].Name == name {
			return &inv.Boxes[i]
		}
	}
	return nil
}
