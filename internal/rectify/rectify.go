// Package rectify samples a source image onto a regular lattice in grid
// space, producing a dense grayscale raster where punch shape is uniform
// regardless of the card's position or perspective in the original photo.
package rectify

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"gocv.io/x/gocv"

	"github.com/knitscape/punchcard-digitizer/internal/surface"
)

// outOfBoundsGray is substituted for samples that fall outside the source
// image (spec §4.2, §7).
const outOfBoundsGray = 128

// Source wraps the BGR source image the rectifier samples from.
type Source struct {
	Mat           gocv.Mat
	Width, Height int
}

// NewSource wraps a BGR gocv.Mat as a rectification source.
func NewSource(mat gocv.Mat) Source {
	return Source{Mat: mat, Width: mat.Cols(), Height: mat.Rows()}
}

// Image is a dense grayscale raster of size (W*s) x (H*s), one byte per
// pixel, backed by a gocv.Mat.
type Image struct {
	Mat           gocv.Mat
	Width, Height int // in rectified pixels: W*s, H*s
}

// Close releases the underlying Mat.
func (img Image) Close() error {
	return img.Mat.Close()
}

// Rectify samples src through surf onto a (w*s) x (h*s) grayscale raster.
// Each rectified pixel (x,y) maps to grid coordinate (x/s, y/s), which the
// surface's forward map sends to an image-plane point; that point is
// floored to the nearest source pixel and read as (R+G+B)/3. Out-of-bounds
// samples read as gray 128. Rows are computed independently so internal
// row-striped parallelism never changes the result.
func Rectify(src Source, surf surface.Surface, w, h, s int) (Image, error) {
	if w <= 0 || h <= 0 || s <= 0 {
		return Image{}, fmt.Errorf("rectify: invalid dimensions w=%d h=%d s=%d", w, h, s)
	}

	outW := w * s
	outH := h * s
	out := gocv.NewMatWithSize(outH, outW, gocv.MatTypeCV8UC1)

	numWorkers := runtime.NumCPU()
	rowsPerWorker := (outH + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for worker := 0; worker < numWorkers; worker++ {
		startY := worker * rowsPerWorker
		endY := startY + rowsPerWorker
		if endY > outH {
			endY = outH
		}
		if startY >= outH {
			break
		}

		wg.Add(1)
		go func(yStart, yEnd int) {
			defer wg.Done()
			rectifyRows(src, surf, out, outW, w, h, s, yStart, yEnd)
		}(startY, endY)
	}
	wg.Wait()

	return Image{Mat: out, Width: outW, Height: outH}, nil
}

func rectifyRows(src Source, surf surface.Surface, out gocv.Mat, outW, w, h, s, yStart, yEnd int) {
	fw, fh := float64(w), float64(h)
	for y := yStart; y < yEnd; y++ {
		gridR := float64(y) / float64(s)
		for x := 0; x < outW; x++ {
			gridC := float64(x) / float64(s)
			p := surf.ForwardGrid(gridC, gridR, fw, fh)

			ix := int(math.Floor(p.X))
			iy := int(math.Floor(p.Y))

			var gray uint8
			if ix >= 0 && ix < src.Width && iy >= 0 && iy < src.Height {
				pix := src.Mat.GetVecbAt(iy, ix)
				sum := int(pix[0]) + int(pix[1]) + int(pix[2]) // B+G+R
				gray = uint8(sum / 3)
			} else {
				gray = outOfBoundsGray
			}

			out.SetUCharAt(y, x, gray)
		}
	}
}
