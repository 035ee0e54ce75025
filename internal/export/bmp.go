package export

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/knitscape/punchcard-digitizer/internal/assign"
)

// BMP layout constants from spec §6.2. No decoder-only BMP library in the
// example pack writes this exact byte layout (24-bit BGR, bottom-up,
// BITMAPINFOHEADER v3), so this is a small hand-rolled encoder rather than a
// wired dependency.
const (
	bmpFileHeaderSize = 14
	bmpInfoHeaderSize = 40
	bmpPixelDataOffset = bmpFileHeaderSize + bmpInfoHeaderSize
	bmpPixelsPerMeter  = 2835 // ~72 DPI
)

// WriteBMP writes a 24-bit uncompressed, bottom-up BMP: punched = black
// (0,0,0), unpunched = white (255,255,255).
func WriteBMP(path string, grid assign.Grid) error {
	width, height := grid.Cols, grid.Rows
	stride := (width*3 + 3) &^ 3 // pad each row to a 4-byte boundary
	pixelDataSize := stride * height
	fileSize := bmpPixelDataOffset + pixelDataSize

	buf := make([]byte, fileSize)

	// BITMAPFILEHEADER
	buf[0], buf[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(buf[2:6], uint32(fileSize))
	binary.LittleEndian.PutUint32(buf[10:14], uint32(bmpPixelDataOffset))

	// BITMAPINFOHEADER
	h := buf[bmpFileHeaderSize:]
	binary.LittleEndian.PutUint32(h[0:4], bmpInfoHeaderSize)
	binary.LittleEndian.PutUint32(h[4:8], uint32(width))
	binary.LittleEndian.PutUint32(h[8:12], uint32(height)) // positive = bottom-up
	binary.LittleEndian.PutUint16(h[12:14], 1)              // planes
	binary.LittleEndian.PutUint16(h[14:16], 24)             // bit count
	binary.LittleEndian.PutUint32(h[16:20], 0)              // BI_RGB, uncompressed
	binary.LittleEndian.PutUint32(h[20:24], uint32(pixelDataSize))
	binary.LittleEndian.PutUint32(h[24:28], bmpPixelsPerMeter)
	binary.LittleEndian.PutUint32(h[28:32], bmpPixelsPerMeter)
	binary.LittleEndian.PutUint32(h[32:36], 0) // colors used
	binary.LittleEndian.PutUint32(h[36:40], 0) // colors important

	// Pixel data: bottom-up, so the image's last row is written first.
	pixels := buf[bmpPixelDataOffset:]
	for fileRow := 0; fileRow < height; fileRow++ {
		gridRow := height - 1 - fileRow
		rowOff := fileRow * stride
		for col := 0; col < width; col++ {
			var v byte = 255
			if grid.At(gridRow, col) {
				v = 0
			}
			px := rowOff + col*3
			pixels[px+0] = v // B
			pixels[px+1] = v // G
			pixels[px+2] = v // R
		}
		// bytes [width*3, stride) in this row are zero padding, already
		// zero-valued from make().
	}

	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
