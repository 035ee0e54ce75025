package blob

// Filter retains blobs whose area and aspect ratio are consistent with an
// expected punch of size s (samples per cell) covering blobSizePercent% of
// a cell's area (spec §4.5). The area band is generous (0.15x-5x expected)
// to absorb lighting variation; the aspect cap rejects cracks and scratches.
func Filter(blobs []Blob, s int, blobSizePercent float64) []Blob {
	expected := float64(s*s) * blobSizePercent / 100

	minArea := 0.15 * expected
	maxArea := 5 * expected

	kept := make([]Blob, 0, len(blobs))
	for _, b := range blobs {
		area := float64(b.Area)
		if area < minArea || area > maxArea {
			continue
		}

		bw, bh := b.BBoxWidth(), b.BBoxHeight()
		longSide := bw
		shortSide := bh
		if bh > bw {
			longSide, shortSide = bh, bw
		}
		if shortSide < 1 {
			shortSide = 1
		}
		aspect := float64(longSide) / float64(shortSide)
		if aspect > 5 {
			continue
		}

		kept = append(kept, b)
	}
	return kept
}
