package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/knitscape/punchcard-digitizer/internal/assign"
	"github.com/knitscape/punchcard-digitizer/internal/detect"
)

func emptyResult() detect.Result {
	return detect.Result{Grid: assign.NewGrid(1, 1)}
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, "card.pcscan.txt", defaultOutputPath("card.pcscan", "text"))
	assert.Equal(t, "card.pcscan.png", defaultOutputPath("card.pcscan", "png"))
	assert.Equal(t, "card.pcscan.bmp", defaultOutputPath("card.pcscan", "bmp"))
	assert.Equal(t, "card.pcscan.out", defaultOutputPath("card.pcscan", "unknown"))
}

func TestWriteExportRejectsUnknownFormat(t *testing.T) {
	err := writeExport("/tmp/wherever", "xml", emptyResult())
	assert := assert.New(t)
	assert.Error(err)
}
