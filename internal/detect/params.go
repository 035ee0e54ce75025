// Package detect orchestrates the full digitization pipeline: rectify,
// threshold, extract blobs, filter, fit the lattice, and assign blobs to
// grid cells.
package detect

// DetectionParams holds the tunable parameters of a detection run. Values
// outside their documented range are clamped by Clamped, which Detect applies
// at the start of every run, rather than rejected (spec §7: "Parameter out of
// documented range -> clamp to range").
type DetectionParams struct {
	Sensitivity        float64 // [0, 100]
	NeighborhoodRadius float64 // [1, 20], in grid-cell units
	BlobSizePercent    float64 // [5, 100], expected blob area as % of cell area
	SamplesPerCell     int     // samples per cell along each axis; default 10
	Debug              bool
}

// DefaultDetectionParams returns the documented defaults.
func DefaultDetectionParams() DetectionParams {
	return DetectionParams{
		Sensitivity:        15,
		NeighborhoodRadius: 5,
		BlobSizePercent:    50,
		SamplesPerCell:     10,
	}
}

// Clamped returns a copy of p with every field clamped into its documented
// range.
func (p DetectionParams) Clamped() DetectionParams {
	p.Sensitivity = clamp(p.Sensitivity, 0, 100)
	p.NeighborhoodRadius = clamp(p.NeighborhoodRadius, 1, 20)
	p.BlobSizePercent = clamp(p.BlobSizePercent, 5, 100)
	if p.SamplesPerCell <= 0 {
		p.SamplesPerCell = 10
	}
	return p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
