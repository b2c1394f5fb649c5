package model

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// BoxDimensions holds the three edge lengths of a box in mm.
// Length runs along the container length (x), Height is vertical (y)
// and Width runs across the container (z).
type BoxDimensions struct {
	Length float64 `json:"length" yaml:"length"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Valid reports whether all three edges are strictly positive and finite.
func (d BoxDimensions) Valid() bool {
	for _, v := range []float64{d.Length, d.Width, d.Height} {
		if !(v > 0) || math.IsInf(v, 1) {
			return false
		}
	}
	return true
}

// Volume returns the box volume in cubic mm.
func (d BoxDimensions) Volume() float64 {
	return d.Length * d.Width * d.Height
}

// BaseArea returns the footprint area (length x width) in square mm.
func (d BoxDimensions) BaseArea() float64 {
	return d.Length * d.Width
}

// Orientations returns every distinct axis-aligned orientation of the box.
// The box as given is always first; duplicates produced by equal edges are dropped.
func (d BoxDimensions) Orientations() []BoxDimensions {
	all := []BoxDimensions{
		{Length: d.Length, Width: d.Width, Height: d.Height},
		{Length: d.Width, Width: d.Length, Height: d.Height},
		{Length: d.Length, Width: d.Height, Height: d.Width},
		{Length: d.Height, Width: d.Length, Height: d.Width},
		{Length: d.Width, Width: d.Height, Height: d.Length},
		{Length: d.Height, Width: d.Width, Height: d.Length},
	}
	out := make([]BoxDimensions, 0, len(all))
	for _, o := range all {
		dup := false
		for _, seen := range out {
			if seen == o {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, o)
		}
	}
	return out
}

// Point3D is a coordinate in mm in the container interior frame.
// The frame is centered on the interior: y is vertical, x runs along the
// container length and z across its width.
type Point3D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Bounds is an axis-aligned region of the container interior.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
	MinZ float64 `json:"min_z"`
	MaxZ float64 `json:"max_z"`
}

// Size returns the extent of the bounds along each axis as box dimensions.
func (b Bounds) Size() BoxDimensions {
	return BoxDimensions{
		Length: b.MaxX - b.MinX,
		Width:  b.MaxZ - b.MinZ,
		Height: b.MaxY - b.MinY,
	}
}

// Volume returns the enclosed volume, or 0 for degenerate bounds.
func (b Bounds) Volume() float64 {
	s := b.Size()
	if !s.Valid() {
		return 0
	}
	return s.Volume()
}

// Origin returns the back-bottom-left corner.
func (b Bounds) Origin() Point3D {
	return Point3D{X: b.MinX, Y: b.MinY, Z: b.MinZ}
}

// ContainerSpec describes a container by its outer dimensions.
type ContainerSpec struct {
	Label         string  `json:"label" yaml:"label"`
	Length        float64 `json:"length" yaml:"length"`                 // mm, outer
	Width         float64 `json:"width" yaml:"width"`                   // mm, outer
	Height        float64 `json:"height" yaml:"height"`                 // mm, outer
	WallThickness float64 `json:"wall_thickness" yaml:"wall_thickness"` // mm, applied on every side
}

// InnerDimensions returns the dimensions left after removing the walls.
func (c ContainerSpec) InnerDimensions() BoxDimensions {
	return BoxDimensions{
		Length: c.Length - 2*c.WallThickness,
		Width:  c.Width - 2*c.WallThickness,
		Height: c.Height - 2*c.WallThickness,
	}
}

// BoxItem is a line of the packing list: a box type and how many of it to load.
type BoxItem struct {
	ID         string        `json:"id" yaml:"id"`
	Label      string        `json:"label" yaml:"label"`
	Dimensions BoxDimensions `json:"dimensions" yaml:"dimensions"`
	Quantity   int           `json:"quantity" yaml:"quantity"`
}

func NewBoxItem(label string, length, width, height float64, qty int) BoxItem {
	return BoxItem{
		ID:         uuid.New().String()[:8],
		Label:      label,
		Dimensions: BoxDimensions{Length: length, Width: width, Height: height},
		Quantity:   qty,
	}
}

// PlacedBox is a box the engine has positioned inside the container.
type PlacedBox struct {
	BoxID       string        `json:"box_id,omitempty"`
	Label       string        `json:"label,omitempty"`
	Orientation BoxDimensions `json:"orientation"`
	Position    Point3D       `json:"position"` // center of the box
}

// Min returns the back-bottom-left corner of the placed box.
func (p PlacedBox) Min() Point3D {
	return Point3D{
		X: p.Position.X - p.Orientation.Length/2,
		Y: p.Position.Y - p.Orientation.Height/2,
		Z: p.Position.Z - p.Orientation.Width/2,
	}
}

// Max returns the front-top-right corner of the placed box.
func (p PlacedBox) Max() Point3D {
	return Point3D{
		X: p.Position.X + p.Orientation.Length/2,
		Y: p.Position.Y + p.Orientation.Height/2,
		Z: p.Position.Z + p.Orientation.Width/2,
	}
}

// ScoringMode selects how the engine ranks feasible positions.
type ScoringMode string

const (
	ScoringBottomBackLeft ScoringMode = "bottom-back-left" // Fill a layer back-to-front, left-to-right
	ScoringDistance       ScoringMode = "distance"         // Closest corner to the interior origin
	ScoringContact        ScoringMode = "contact"          // Most walls and neighbor faces touched
)

// Algorithm represents the planning strategy used by the host.
type Algorithm string

const (
	AlgorithmSequential Algorithm = "sequential" // One pass in list order (fast)
	AlgorithmGenetic    Algorithm = "genetic"    // Evolve box order and orientation (slower, often fuller)
)

// SortOrder controls the order boxes are handed to the engine.
type SortOrder string

const (
	SortInput        SortOrder = "input"
	SortVolumeDesc   SortOrder = "volume-desc"
	SortBaseAreaDesc SortOrder = "base-area-desc"
)

// LoadSettings holds the packing policy.
type LoadSettings struct {
	// Engine settings
	BoxGap        float64     `json:"box_gap" yaml:"box_gap"`             // Clearance between boxes in mm
	WallGap       float64     `json:"wall_gap" yaml:"wall_gap"`           // Clearance to the container walls in mm
	SupportRatio  float64     `json:"support_ratio" yaml:"support_ratio"` // Minimum supported fraction of a box base
	AllowRotation bool        `json:"allow_rotation" yaml:"allow_rotation"`
	Scoring       ScoringMode `json:"scoring" yaml:"scoring"`

	// Planner settings
	Algorithm          Algorithm `json:"algorithm" yaml:"algorithm"`
	SortOrder          SortOrder `json:"sort_order" yaml:"sort_order"`
	StopOnFailure      bool      `json:"stop_on_failure" yaml:"stop_on_failure"`
	PlacementTimeoutMs int       `json:"placement_timeout_ms" yaml:"placement_timeout_ms"` // 0 = unlimited
}

func DefaultSettings() LoadSettings {
	return LoadSettings{
		BoxGap:             5.0,
		WallGap:            10.0,
		SupportRatio:       0.7,
		AllowRotation:      false,
		Scoring:            ScoringBottomBackLeft,
		Algorithm:          AlgorithmSequential,
		SortOrder:          SortInput,
		StopOnFailure:      false,
		PlacementTimeoutMs: 0,
	}
}

// Layer groups the boxes that share a bottom height.
type Layer struct {
	Bottom float64     `json:"bottom"`
	Boxes  []PlacedBox `json:"boxes"`
}

// layerTolerance is how far apart two bottoms may be (mm) and still count as one layer.
const layerTolerance = 0.5

// LoadResult holds the outcome of a planning run for one container.
type LoadResult struct {
	Container      ContainerSpec `json:"container"`
	Interior       Bounds        `json:"interior"`
	Placements     []PlacedBox   `json:"placements"`
	UnplacedBoxes  []BoxItem     `json:"unplaced_boxes"`
	InteriorVolume float64       `json:"interior_volume"`
}

// LoadedVolume returns the total volume of placed boxes.
func (r LoadResult) LoadedVolume() float64 {
	var total float64
	for _, p := range r.Placements {
		total += p.Orientation.Volume()
	}
	return total
}

// Efficiency returns the loaded share of the interior volume as a percentage.
func (r LoadResult) Efficiency() float64 {
	if r.InteriorVolume <= 0 {
		return 0
	}
	return (r.LoadedVolume() / r.InteriorVolume) * 100.0
}

// Height returns the height of the stack measured from the interior floor.
func (r LoadResult) Height() float64 {
	var top float64
	for _, p := range r.Placements {
		if h := p.Max().Y - r.Interior.MinY; h > top {
			top = h
		}
	}
	return top
}

// Layers groups placements by bottom height, lowest layer first.
// Boxes inside a layer keep their placement order.
func (r LoadResult) Layers() []Layer {
	var layers []Layer
	for _, p := range r.Placements {
		bottom := p.Min().Y
		found := false
		for i := range layers {
			if math.Abs(layers[i].Bottom-bottom) <= layerTolerance {
				layers[i].Boxes = append(layers[i].Boxes, p)
				found = true
				break
			}
		}
		if !found {
			layers = append(layers, Layer{Bottom: bottom, Boxes: []PlacedBox{p}})
		}
	}
	sort.SliceStable(layers, func(i, j int) bool {
		return layers[i].Bottom < layers[j].Bottom
	})
	return layers
}

// UnplacedCount returns the number of individual boxes that were not loaded.
func (r LoadResult) UnplacedCount() int {
	n := 0
	for _, b := range r.UnplacedBoxes {
		n += b.Quantity
	}
	return n
}

// Project ties everything together for save/load.
type Project struct {
	Name      string        `json:"name"`
	Container ContainerSpec `json:"container"`
	Boxes     []BoxItem     `json:"boxes"`
	Settings  LoadSettings  `json:"settings"`
	Result    *LoadResult   `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:      "Untitled",
		Container: DefaultInventory().Containers[0].ToContainerSpec(),
		Boxes:     []BoxItem{},
		Settings:  DefaultSettings(),
	}
}

// TotalBoxes returns the number of individual boxes on the packing list.
func (p Project) TotalBoxes() int {
	n := 0
	for _, b := range p.Boxes {
		n += b.Quantity
	}
	return n
}
