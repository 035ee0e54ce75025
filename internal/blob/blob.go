// Package blob extracts and filters connected components from a binary
// mask: two-pass 4-connectivity labeling with union-find, followed by an
// area/aspect-ratio filter against an expected punch size.
package blob

import (
	"sort"

	"github.com/knitscape/punchcard-digitizer/internal/threshold"
)

// Blob is a connected foreground component.
type Blob struct {
	CenterX, CenterY       float64
	Area                   int
	MinX, MaxX, MinY, MaxY int
}

// BBoxWidth returns the tight bounding-box width in pixels.
func (b Blob) BBoxWidth() int { return b.MaxX - b.MinX + 1 }

// BBoxHeight returns the tight bounding-box height in pixels.
func (b Blob) BBoxHeight() int { return b.MaxY - b.MinY + 1 }

// Label runs two-pass 4-connectivity connected-component labeling over mask,
// returning one Blob per component with its centroid, area, and bounding
// box. Pass 1 assigns provisional labels and records unions between labels
// that turn out to belong to the same component; pass 2 resolves each
// pixel's label to its root and accumulates per-component statistics.
func Label(mask threshold.Mask) []Blob {
	w, h := mask.Width, mask.Height
	fg := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fg[y*w+x] = mask.Mat.GetUCharAt(y, x)
		}
	}

	labels := make([]int32, w*h)
	parent := []int32{0} // parent[0] unused; labels are 1-indexed

	find := func(x int32) int32 {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int32) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	newLabel := func() int32 {
		l := int32(len(parent))
		parent = append(parent, l)
		return l
	}

	// Pass 1: provisional labeling.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if fg[y*w+x] == 0 {
				continue
			}

			var left, up int32
			if x > 0 {
				left = labels[y*w+x-1]
			}
			if y > 0 {
				up = labels[(y-1)*w+x]
			}

			var label int32
			switch {
			case left == 0 && up == 0:
				label = newLabel()
			case left != 0 && up == 0:
				label = left
			case left == 0 && up != 0:
				label = up
			case left == up:
				label = left
			default:
				label = left
				union(left, up)
			}
			labels[y*w+x] = label
		}
	}

	// Pass 2: resolve roots and accumulate per-component statistics.
	type accum struct {
		sumX, sumY int64
		area       int
		minX, maxX int
		minY, maxY int
	}
	stats := make(map[int32]*accum)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			label := labels[y*w+x]
			if label == 0 {
				continue
			}
			root := find(label)
			labels[y*w+x] = root

			a, ok := stats[root]
			if !ok {
				a = &accum{minX: x, maxX: x, minY: y, maxY: y}
				stats[root] = a
			}
			a.sumX += int64(x)
			a.sumY += int64(y)
			a.area++
			if x < a.minX {
				a.minX = x
			}
			if x > a.maxX {
				a.maxX = x
			}
			if y < a.minY {
				a.minY = y
			}
			if y > a.maxY {
				a.maxY = y
			}
		}
	}

	// Map iteration order is randomized; sort roots so the returned blob
	// list (and therefore anything downstream that relies on its order,
	// such as visualization) is deterministic across runs.
	roots := make([]int32, 0, len(stats))
	for root := range stats {
		roots = append(roots, root)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })

	blobs := make([]Blob, 0, len(roots))
	for _, root := range roots {
		a := stats[root]
		blobs = append(blobs, Blob{
			CenterX: float64(a.sumX) / float64(a.area),
			CenterY: float64(a.sumY) / float64(a.area),
			Area:    a.area,
			MinX:    a.minX,
			MaxX:    a.maxX,
			MinY:    a.minY,
			MaxY:    a.maxY,
		})
	}
	return blobs
}
