// Package export writes a detected CellGrid out in the formats external
// collaborators consume (spec §6.2): plain text, PNG, and BMP.
package export

import (
	"bufio"
	"fmt"
	"os"

	"github.com/knitscape/punchcard-digitizer/internal/assign"
)

// WriteText writes one line per grid row, each line W characters from
// {'0','1'}, '\n'-terminated; '1' means punched.
func WriteText(path string, grid assign.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	line := make([]byte, grid.Cols+1)
	line[grid.Cols] = '\n'

	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			if grid.At(row, col) {
				line[col] = '1'
			} else {
				line[col] = '0'
			}
		}
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("export: write %s: %w", path, err)
		}
	}

	return w.Flush()
}
