// Package assign maps accepted blobs to the nearest grid cell, rejecting
// blobs that fall too far from any lattice intersection.
package assign

import (
	"math"

	"github.com/knitscape/punchcard-digitizer/internal/blob"
	"github.com/knitscape/punchcard-digitizer/internal/lattice"
)

// acceptFactor is the fraction of local lattice spacing within which a
// blob must fall to be assigned to a cell (spec §4.7; an Open Question
// documenting it as empirical).
const acceptFactor = 0.6

// Grid is an H x W boolean matrix naming which cells contain a punch.
type Grid struct {
	Rows, Cols int
	cells      []bool
}

// NewGrid allocates an all-false H x W grid.
func NewGrid(rows, cols int) Grid {
	return Grid{Rows: rows, Cols: cols, cells: make([]bool, rows*cols)}
}

// At reports whether cell (row, col) is punched.
func (g Grid) At(row, col int) bool {
	return g.cells[row*g.Cols+col]
}

// set marks cell (row, col) as punched. Setting an already-true cell is a
// no-op, making repeated assignment to the same cell idempotent.
func (g Grid) set(row, col int) {
	g.cells[row*g.Cols+col] = true
}

// Assign finds, for each blob, the nearest column center (by centroid X) and
// row center (by centroid Y), and marks that cell punched if both distances
// are strictly less than acceptFactor times the respective axis's average
// spacing. Multiple blobs landing on the same cell collapse to one punch.
func Assign(blobs []blob.Blob, colCenters, rowCenters []float64) Grid {
	grid := NewGrid(len(rowCenters), len(colCenters))

	avgCol := lattice.AverageSpacing(colCenters)
	avgRow := lattice.AverageSpacing(rowCenters)
	colThreshold := acceptFactor * avgCol
	rowThreshold := acceptFactor * avgRow

	for _, b := range blobs {
		col, colDist := nearest(colCenters, b.CenterX)
		row, rowDist := nearest(rowCenters, b.CenterY)

		if colDist < colThreshold && rowDist < rowThreshold {
			grid.set(row, col)
		}
	}

	return grid
}

// nearest returns the index of the closest value in axis to target, and the
// absolute distance to it.
func nearest(axis []float64, target float64) (int, float64) {
	best := 0
	bestDist := math.Inf(1)
	for i, v := range axis {
		d := math.Abs(v - target)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best, bestDist
}
