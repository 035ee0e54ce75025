// Package threshold binarizes a rectified grayscale raster by comparing each
// pixel to its local mean, computed efficiently via an integral image.
package threshold

import (
	"math"

	"gocv.io/x/gocv"

	"github.com/knitscape/punchcard-digitizer/internal/rectify"
)

// minWindowRadius is the floor on the local-mean window radius (spec §4.3).
const minWindowRadius = 3

// Mask is a binary foreground/background mask with the same dimensions as
// the rectified image it was computed from: one byte per pixel, 0 or 1.
type Mask struct {
	Mat           gocv.Mat
	Width, Height int
}

// Close releases the underlying Mat.
func (m Mask) Close() error {
	return m.Mat.Close()
}

// Adaptive computes the binary mask: foreground(x,y) = 1 iff
// gray(x,y) < localMean(x,y) - sensitivity, where localMean is the mean over
// a square window of radius max(3, neighborhoodRadius*samplesPerCell),
// clipped to image bounds.
func Adaptive(img rectify.Image, neighborhoodRadius float64, samplesPerCell int, sensitivity float64) Mask {
	windowRadius := int(math.Round(neighborhoodRadius * float64(samplesPerCell)))
	if windowRadius < minWindowRadius {
		windowRadius = minWindowRadius
	}

	w, h := img.Width, img.Height
	gray := readGray(img)
	integral := buildIntegral(gray, w, h)

	mask := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC1)
	for y := 0; y < h; y++ {
		y0 := y - windowRadius
		if y0 < 0 {
			y0 = 0
		}
		y1 := y + windowRadius
		if y1 > h-1 {
			y1 = h - 1
		}
		for x := 0; x < w; x++ {
			x0 := x - windowRadius
			if x0 < 0 {
				x0 = 0
			}
			x1 := x + windowRadius
			if x1 > w-1 {
				x1 = w - 1
			}

			sum := windowSum(integral, w, x0, y0, x1, y1)
			count := (x1 - x0 + 1) * (y1 - y0 + 1)
			localMean := float64(sum) / float64(count)

			var fg byte
			if float64(gray[y*w+x]) < localMean-sensitivity {
				fg = 1
			}
			mask.SetUCharAt(y, x, fg)
		}
	}

	return Mask{Mat: mask, Width: w, Height: h}
}

// readGray extracts the raster's pixel bytes into a plain slice for fast,
// allocation-free local access during integral-image construction.
func readGray(img rectify.Image) []uint8 {
	w, h := img.Width, img.Height
	out := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[y*w+x] = img.Mat.GetUCharAt(y, x)
		}
	}
	return out
}

// buildIntegral returns a (w+1)x(h+1) summed-area table: integral[(y+1)*(w+1)+(x+1)]
// is the sum of gray[0..y][0..x] inclusive.
func buildIntegral(gray []uint8, w, h int) []int64 {
	stride := w + 1
	integral := make([]int64, stride*(h+1))
	for y := 0; y < h; y++ {
		var rowSum int64
		for x := 0; x < w; x++ {
			rowSum += int64(gray[y*w+x])
			integral[(y+1)*stride+(x+1)] = integral[y*stride+(x+1)] + rowSum
		}
	}
	return integral
}

// windowSum returns the sum over the inclusive rectangle [x0,x1]x[y0,y1]
// using the summed-area table built by buildIntegral.
func windowSum(integral []int64, w, x0, y0, x1, y1 int) int64 {
	stride := w + 1
	a := integral[y0*stride+x0]
	b := integral[y0*stride+(x1+1)]
	c := integral[(y1+1)*stride+x0]
	d := integral[(y1+1)*stride+(x1+1)]
	return d - b - c + a
}
