package detect

import (
	"fmt"
	"os"

	"github.com/knitscape/punchcard-digitizer/internal/assign"
	"github.com/knitscape/punchcard-digitizer/internal/blob"
	"github.com/knitscape/punchcard-digitizer/internal/boundary"
	"github.com/knitscape/punchcard-digitizer/internal/lattice"
	"github.com/knitscape/punchcard-digitizer/internal/rectify"
	"github.com/knitscape/punchcard-digitizer/internal/surface"
	"github.com/knitscape/punchcard-digitizer/internal/threshold"
)

// Result is the output of a detection run (spec §6.1).
type Result struct {
	Grid       assign.Grid
	ColCenters []float64
	RowCenters []float64
	Blobs      []blob.Blob
	CellPx     int
}

// Detect runs the full pipeline: rectify the source image through the
// surface map bounded by boundary, adaptively threshold it, extract and
// filter blobs, fit the column/row lattice, and assign blobs to cells.
//
// It never panics on bad input data and never returns a partial grid: the
// only error is "pipeline not runnable" when the source image or boundary
// is missing or invalid (spec §4.8, §7). Everything else — zero peaks,
// rejected blobs, out-of-bounds samples, degenerate inverse-map queries —
// is absorbed internally and still yields a grid.
func Detect(src rectify.Source, bnd boundary.Boundary, w, h int, params DetectionParams) (Result, error) {
	if src.Width <= 0 || src.Height <= 0 {
		return Result{}, fmt.Errorf("detect: pipeline not runnable: source image missing")
	}
	if w <= 0 || h <= 0 {
		return Result{}, fmt.Errorf("detect: pipeline not runnable: invalid grid dimensions %dx%d", w, h)
	}
	if err := bnd.Validate(); err != nil {
		return Result{}, fmt.Errorf("detect: pipeline not runnable: %w", err)
	}

	params = params.Clamped()
	debugf := func(format string, args ...any) {
		if params.Debug {
			fmt.Fprintf(os.Stderr, "[detect] "+format+"\n", args...)
		}
	}

	surf := surface.New(bnd)

	rectified, err := rectify.Rectify(src, surf, w, h, params.SamplesPerCell)
	if err != nil {
		return Result{}, fmt.Errorf("detect: %w", err)
	}
	defer rectified.Close()
	debugf("rectified to %dx%d", rectified.Width, rectified.Height)

	mask := threshold.Adaptive(rectified, params.NeighborhoodRadius, params.SamplesPerCell, params.Sensitivity)
	defer mask.Close()

	rawBlobs := blob.Label(mask)
	debugf("labeled %d raw components", len(rawBlobs))

	accepted := blob.Filter(rawBlobs, params.SamplesPerCell, params.BlobSizePercent)
	debugf("%d blobs survived the size/aspect filter", len(accepted))

	colCoords := make([]float64, len(accepted))
	rowCoords := make([]float64, len(accepted))
	for i, b := range accepted {
		colCoords[i] = b.CenterX
		rowCoords[i] = b.CenterY
	}

	colAxis := lattice.FindAxis(colCoords, float64(rectified.Width), w, params.SamplesPerCell)
	rowAxis := lattice.FindAxis(rowCoords, float64(rectified.Height), h, params.SamplesPerCell)

	grid := assign.Assign(accepted, colAxis, rowAxis)

	return Result{
		Grid:       grid,
		ColCenters: colAxis,
		RowCenters: rowAxis,
		Blobs:      accepted,
		CellPx:     params.SamplesPerCell,
	}, nil
}
