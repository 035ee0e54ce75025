// Package lattice recovers the W column centers and H row centers of a
// punch-card grid from accepted blob centroids, by 1-D histogram peak
// picking with non-maximum suppression and gap interpolation. It operates
// independently on the X and Y axes.
package lattice

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// minSeparationFactor and nmsSeparationFactor are the empirical constants
// from the spec (§9 Open Questions: "documented here but untested at other
// values"); sigmaFactor is the Gaussian deposit width as a fraction of the
// minimum separation.
const (
	minSeparationFactor = 0.7
	sigmaFactor         = 0.3
	nmsSeparationFactor = 0.5
	peakThreshold       = 0.01
	gaussianTruncSigmas = 3
)

// FindAxis recovers n ordered positions along one axis from the centroid
// coordinates in coords (all in the same units as extent), using samplesPerCell
// to derive the minimum peak separation.
func FindAxis(coords []float64, extent float64, n, samplesPerCell int) []float64 {
	if n <= 0 {
		return nil
	}
	if len(coords) == 0 {
		return uniformAxis(extent, n)
	}

	sep := minSeparationFactor * float64(samplesPerCell)
	hist := depositHistogram(coords, extent, sep)
	peaks := localMaxima(hist)
	accepted := nonMaxSuppress(peaks, sep, n)

	positions := make([]float64, len(accepted))
	for i, p := range accepted {
		positions[i] = p.pos
	}
	sort.Float64s(positions)

	if len(positions) < n {
		positions = interpolateGaps(positions, extent, n, sep)
	}
	return positions
}

// uniformAxis returns n uniformly spaced positions over [0, extent], used
// when there are no centroids to work with at all (spec §4.6 step 1).
func uniformAxis(extent float64, n int) []float64 {
	spacing := extent / float64(n)
	positions := make([]float64, n)
	for i := range positions {
		positions[i] = (float64(i) + 0.5) * spacing
	}
	return positions
}

// depositHistogram builds a ceil(extent)-bin histogram, depositing each
// coordinate as a Gaussian of std-dev sigmaFactor*sep truncated at
// gaussianTruncSigmas standard deviations (spec §4.6 step 2).
func depositHistogram(coords []float64, extent, sep float64) []float64 {
	bins := int(math.Ceil(extent))
	if bins < 1 {
		bins = 1
	}
	hist := make([]float64, bins)

	sigma := sigmaFactor * sep
	if sigma <= 0 {
		sigma = 1e-6
	}
	trunc := gaussianTruncSigmas * sigma
	norm := 1.0 / (sigma * math.Sqrt(2*math.Pi))

	for _, c := range coords {
		lo := int(math.Floor(c - trunc))
		hi := int(math.Ceil(c + trunc))
		if lo < 0 {
			lo = 0
		}
		if hi > bins-1 {
			hi = bins - 1
		}
		for b := lo; b <= hi; b++ {
			center := float64(b) + 0.5
			d := center - c
			hist[b] += norm * math.Exp(-(d*d)/(2*sigma*sigma))
		}
	}
	return hist
}

type peak struct {
	pos    float64
	height float64
}

// localMaxima collects histogram bins that are strictly greater than their
// left neighbor and not less than their right neighbor (so a flat top of
// equal bins yields its leftmost bin) and exceed peakThreshold, sorted by
// descending height (spec §4.6 step 3).
func localMaxima(hist []float64) []peak {
	var peaks []peak
	for i, v := range hist {
		if v <= peakThreshold {
			continue
		}
		if i > 0 && hist[i-1] >= v {
			continue
		}
		if i < len(hist)-1 && hist[i+1] > v {
			continue
		}
		peaks = append(peaks, peak{pos: float64(i) + 0.5, height: v})
	}
	sort.Slice(peaks, func(i, j int) bool { return peaks[i].height > peaks[j].height })
	return peaks
}

// nonMaxSuppress accepts peaks in descending-height order, skipping any peak
// closer than nmsSeparationFactor*sep to an already-accepted peak, stopping
// once n peaks are accepted (spec §4.6 step 4).
func nonMaxSuppress(peaks []peak, sep float64, n int) []peak {
	minDist := nmsSeparationFactor * sep
	accepted := make([]peak, 0, n)
	for _, p := range peaks {
		if len(accepted) >= n {
			break
		}
		tooClose := false
		for _, a := range accepted {
			if math.Abs(p.pos-a.pos) < minDist {
				tooClose = true
				break
			}
		}
		if !tooClose {
			accepted = append(accepted, p)
		}
	}
	return accepted
}

// interpolateGaps fills in missing grid positions (spec §4.6.1). Detected
// positions are snapped to the nearest of n equally spaced grid indices;
// collisions keep whichever position is closest to that index's ideal
// center. Missing indices are linearly interpolated between their nearest
// known neighbors, extrapolated from the nearest known index if unbracketed,
// or given the ideal uniform position if no anchors exist at all.
func interpolateGaps(detected []float64, extent float64, n int, _ float64) []float64 {
	spacing := extent / float64(n)

	bestForIdx := make(map[int]float64)
	bestDist := make(map[int]float64)
	for _, pos := range detected {
		idx := int(math.Round(pos/spacing - 0.5))
		if idx < 0 {
			idx = 0
		}
		if idx > n-1 {
			idx = n - 1
		}
		ideal := (float64(idx) + 0.5) * spacing
		d := math.Abs(pos - ideal)
		if _, ok := bestForIdx[idx]; !ok || d < bestDist[idx] {
			bestForIdx[idx] = pos
			bestDist[idx] = d
		}
	}

	knownIdx := make([]int, 0, len(bestForIdx))
	for idx := range bestForIdx {
		knownIdx = append(knownIdx, idx)
	}
	sort.Ints(knownIdx)

	result := make([]float64, n)
	for _, idx := range knownIdx {
		result[idx] = bestForIdx[idx]
	}

	for i := 0; i < n; i++ {
		if _, ok := bestForIdx[i]; ok {
			continue
		}

		prevIdx, nextIdx := -1, -1
		for _, idx := range knownIdx {
			if idx < i {
				prevIdx = idx
			}
			if idx > i && nextIdx == -1 {
				nextIdx = idx
			}
		}

		switch {
		case prevIdx >= 0 && nextIdx >= 0:
			pPrev, pNext := bestForIdx[prevIdx], bestForIdx[nextIdx]
			frac := float64(i-prevIdx) / float64(nextIdx-prevIdx)
			result[i] = pPrev + frac*(pNext-pPrev)
		case prevIdx >= 0:
			result[i] = bestForIdx[prevIdx] + float64(i-prevIdx)*spacing
		case nextIdx >= 0:
			result[i] = bestForIdx[nextIdx] - float64(nextIdx-i)*spacing
		default:
			result[i] = (float64(i) + 0.5) * spacing
		}
	}

	return result
}

// AverageSpacing returns the mean gap between consecutive axis positions,
// used by the assigner as the local-spacing reference for its acceptance
// threshold. Returns 0 for axes with fewer than 2 positions.
func AverageSpacing(axis []float64) float64 {
	if len(axis) < 2 {
		return 0
	}
	gaps := make([]float64, len(axis)-1)
	floats.SubTo(gaps, axis[1:], axis[:len(axis)-1])
	return stat.Mean(gaps, nil)
}
