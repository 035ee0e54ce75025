package rectify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/knitscape/punchcard-digitizer/internal/boundary"
	"github.com/knitscape/punchcard-digitizer/internal/surface"
	"github.com/knitscape/punchcard-digitizer/pkg/geometry"
)

func solidBGR(w, h int, b, g, r uint8) gocv.Mat {
	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mat.SetUCharAt(y, x*3+0, b)
			mat.SetUCharAt(y, x*3+1, g)
			mat.SetUCharAt(y, x*3+2, r)
		}
	}
	return mat
}

func identitySurface(w, h float64) surface.Surface {
	b := boundary.Boundary{
		Corners: [4]geometry.Point2D{
			{X: 0, Y: 0},
			{X: w, Y: 0},
			{X: w, Y: h},
			{X: 0, Y: h},
		},
	}
	return surface.New(b)
}

func TestRectifyUniformImageYieldsUniformGray(t *testing.T) {
	mat := solidBGR(100, 100, 90, 90, 90)
	defer mat.Close()

	src := NewSource(mat)
	surf := identitySurface(100, 100)

	img, err := Rectify(src, surf, 10, 10, 4)
	require.NoError(t, err)
	defer img.Mat.Close()

	assert.Equal(t, 40, img.Width)
	assert.Equal(t, 40, img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			assert.Equal(t, byte(90), img.Mat.GetUCharAt(y, x), "pixel (%d,%d)", x, y)
		}
	}
}

func TestRectifyOutOfBoundsReadsGray128(t *testing.T) {
	mat := solidBGR(10, 10, 200, 200, 200)
	defer mat.Close()

	src := NewSource(mat)
	// Surface maps grid space to an image-plane region well outside the
	// 10x10 source, so every sample is out of bounds.
	b := boundary.Boundary{
		Corners: [4]geometry.Point2D{
			{X: 1000, Y: 1000},
			{X: 1010, Y: 1000},
			{X: 1010, Y: 1010},
			{X: 1000, Y: 1010},
		},
	}
	surf := surface.New(b)

	img, err := Rectify(src, surf, 5, 5, 2)
	require.NoError(t, err)
	defer img.Mat.Close()

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			assert.Equal(t, byte(outOfBoundsGray), img.Mat.GetUCharAt(y, x))
		}
	}
}

func TestRectifyRejectsInvalidDimensions(t *testing.T) {
	mat := solidBGR(10, 10, 0, 0, 0)
	defer mat.Close()
	surf := identitySurface(10, 10)

	_, err := Rectify(NewSource(mat), surf, 0, 5, 2)
	assert.Error(t, err)
}

func TestRectifyDeterministicAcrossRuns(t *testing.T) {
	mat := solidBGR(50, 50, 10, 20, 30)
	defer mat.Close()
	surf := identitySurface(50, 50)

	img1, err := Rectify(NewSource(mat), surf, 10, 10, 3)
	require.NoError(t, err)
	defer img1.Mat.Close()

	img2, err := Rectify(NewSource(mat), surf, 10, 10, 3)
	require.NoError(t, err)
	defer img2.Mat.Close()

	for y := 0; y < img1.Height; y++ {
		for x := 0; x < img1.Width; x++ {
			assert.Equal(t, img1.Mat.GetUCharAt(y, x), img2.Mat.GetUCharAt(y, x))
		}
	}
}
