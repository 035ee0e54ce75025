package export

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/knitscape/punchcard-digitizer/internal/assign"
)

// WritePNG writes a W x H bitmap, one pixel per cell: punched = black,
// unpunched = white. Encoding goes through gocv.IMWrite rather than the
// standard image/png encoder, consistent with this repo's use of gocv.Mat
// as its universal image buffer.
func WritePNG(path string, grid assign.Grid) error {
	mat := gocv.NewMatWithSize(grid.Rows, grid.Cols, gocv.MatTypeCV8UC1)
	defer mat.Close()

	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			var v uint8 = 255
			if grid.At(row, col) {
				v = 0
			}
			mat.SetUCharAt(row, col, v)
		}
	}

	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("export: gocv.IMWrite failed for %s", path)
	}
	return nil
}
