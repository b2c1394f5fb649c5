package model

import "math"

// LoadEstimate holds the results of a container count calculation.
type LoadEstimate struct {
	TotalBoxVolume        float64 `json:"total_box_volume"`        // Volume of all boxes incl. gap allowance (cubic mm)
	TotalCubicMeters      float64 `json:"total_cubic_meters"`      // Same volume in cubic meters
	UsableVolume          float64 `json:"usable_volume"`           // Interior volume of one container after wall gap (cubic mm)
	ContainersNeededExact float64 `json:"containers_needed_exact"` // Exact fractional number of containers
	ContainersNeededMin   int     `json:"containers_needed_min"`   // Minimum containers (ceiling of exact)
	ContainersWithWaste   int     `json:"containers_with_waste"`   // Recommended containers including waste factor
	WastePercent          float64 `json:"waste_percent"`           // Waste factor applied (e.g., 15 for 15%)
	EstimatedCost         float64 `json:"estimated_cost"`          // Total cost if pricing available
	PricePerContainer     float64 `json:"price_per_container"`     // Price used for estimation
	BoxGap                float64 `json:"box_gap"`                 // Box gap used in calculation
}

// cubicMMPerCubicMeter is the number of cubic millimeters in one cubic meter.
const cubicMMPerCubicMeter = 1e9

// CalculateLoadEstimate computes how many containers a packing list needs by volume.
// Each box is grown by the box gap on every axis, and an additional waste
// percentage accounts for space the heuristic cannot fill.
func CalculateLoadEstimate(items []BoxItem, container ContainerSpec, settings LoadSettings, wastePercent, pricePerContainer float64) LoadEstimate {
	var totalVolume float64
	for _, b := range items {
		l := b.Dimensions.Length + settings.BoxGap
		w := b.Dimensions.Width + settings.BoxGap
		h := b.Dimensions.Height + settings.BoxGap
		totalVolume += l * w * h * float64(b.Quantity)
	}

	inner := container.InnerDimensions()
	usable := BoxDimensions{
		Length: inner.Length - 2*settings.WallGap,
		Width:  inner.Width - 2*settings.WallGap,
		Height: inner.Height - 2*settings.WallGap,
	}
	if !usable.Valid() {
		return LoadEstimate{
			TotalBoxVolume:   totalVolume,
			TotalCubicMeters: totalVolume / cubicMMPerCubicMeter,
			WastePercent:     wastePercent,
			BoxGap:           settings.BoxGap,
		}
	}
	usableVolume := usable.Volume()

	exact := totalVolume / usableVolume
	minContainers := int(math.Ceil(exact))

	// Apply waste factor
	wasteFactor := 1.0 + (wastePercent / 100.0)
	withWaste := int(math.Ceil(exact * wasteFactor))
	if withWaste < minContainers {
		withWaste = minContainers
	}

	return LoadEstimate{
		TotalBoxVolume:        totalVolume,
		TotalCubicMeters:      totalVolume / cubicMMPerCubicMeter,
		UsableVolume:          usableVolume,
		ContainersNeededExact: exact,
		ContainersNeededMin:   minContainers,
		ContainersWithWaste:   withWaste,
		WastePercent:          wastePercent,
		EstimatedCost:         float64(withWaste) * pricePerContainer,
		PricePerContainer:     pricePerContainer,
		BoxGap:                settings.BoxGap,
	}
}
