package ingest

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMatPreservesColorAndSize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}

	mat, err := ToMat(img)
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, 4, mat.Cols())
	assert.Equal(t, 3, mat.Rows())

	pix := mat.GetVecbAt(1, 2)
	assert.Equal(t, byte(30), pix[0]) // B
	assert.Equal(t, byte(20), pix[1]) // G
	assert.Equal(t, byte(10), pix[2]) // R
}

func TestToMatHandlesNonOriginBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(2, 5, 6, 8))
	img.Set(3, 6, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	mat, err := ToMat(img)
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, 4, mat.Cols())
	assert.Equal(t, 3, mat.Rows())

	pix := mat.GetVecbAt(1, 1)
	assert.Equal(t, byte(3), pix[0])
	assert.Equal(t, byte(2), pix[1])
	assert.Equal(t, byte(1), pix[2])
}
