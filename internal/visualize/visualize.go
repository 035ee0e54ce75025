// Package visualize draws detection results onto the rectified raster for
// diagnostic inspection. It is not part of the core pipeline; it exists so
// a CLI run can produce something a person can look at.
package visualize

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/knitscape/punchcard-digitizer/internal/blob"
	"github.com/knitscape/punchcard-digitizer/internal/detect"
)

var (
	colAxisColor = color.RGBA{R: 0, G: 160, B: 255, A: 255}
	rowAxisColor = color.RGBA{R: 255, G: 160, B: 0, A: 255}
	blobColor    = color.RGBA{R: 0, G: 220, B: 0, A: 255}
)

// Overlay draws the recovered lattice axes and accepted blobs on top of a
// color (BGR) copy of the rectified raster.
func Overlay(rectifiedGray gocv.Mat, result detect.Result) gocv.Mat {
	dst := gocv.NewMat()
	gocv.CvtColor(rectifiedGray, &dst, gocv.ColorGrayToBGR)

	h := dst.Rows()
	w := dst.Cols()

	for _, x := range result.ColCenters {
		ix := int(x)
		gocv.Line(&dst, image.Pt(ix, 0), image.Pt(ix, h-1), colAxisColor, 1)
	}
	for _, y := range result.RowCenters {
		iy := int(y)
		gocv.Line(&dst, image.Pt(0, iy), image.Pt(w-1, iy), rowAxisColor, 1)
	}

	drawBlobs(&dst, result.Blobs)

	return dst
}

// drawBlobs draws each accepted blob's bounding box, grounded on the
// teacher's VisualizeContacts rectangle-drawing pattern.
func drawBlobs(dst *gocv.Mat, blobs []blob.Blob) {
	for _, b := range blobs {
		rect := image.Rect(b.MinX, b.MinY, b.MaxX+1, b.MaxY+1)
		gocv.Rectangle(dst, rect, blobColor, 1)
	}
}
