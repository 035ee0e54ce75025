package scan

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knitscape/punchcard-digitizer/internal/detect"
	"github.com/knitscape/punchcard-digitizer/pkg/geometry"
)

func TestNewUsesDefaultParams(t *testing.T) {
	f := New("card-1", 80, 12)
	assert.Equal(t, 1, f.Version)
	assert.Equal(t, "card-1", f.Name)
	assert.Equal(t, 80, f.Width)
	assert.Equal(t, 12, f.Height)
	assert.Equal(t, detect.DefaultDetectionParams(), f.Params)
	assert.False(t, f.Created.IsZero())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.pcscan")

	f := New("card-2", 40, 8)
	f.Boundary.Corners[0] = geometry.Point2D{X: 1, Y: 2}
	f.Boundary.Corners[1] = geometry.Point2D{X: 100, Y: 2}
	f.Boundary.Corners[2] = geometry.Point2D{X: 100, Y: 50}
	f.Boundary.Corners[3] = geometry.Point2D{X: 1, Y: 50}

	require.NoError(t, f.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, f.Name, loaded.Name)
	assert.Equal(t, f.Width, loaded.Width)
	assert.Equal(t, f.Height, loaded.Height)
	assert.Equal(t, f.Boundary, loaded.Boundary)
	assert.Equal(t, f.Params, loaded.Params)
}

func TestSetImageRelativePath(t *testing.T) {
	f := New("card-3", 10, 10)
	descriptorPath := "/home/user/scans/card-3.pcscan"
	imagePath := "/home/user/scans/photos/card-3.tiff"

	f.SetImage(descriptorPath, imagePath)
	assert.Equal(t, filepath.FromSlash("photos/card-3.tiff"), f.ImagePath)

	resolved := f.ResolvedImagePath(descriptorPath)
	assert.Equal(t, filepath.FromSlash("/home/user/scans/photos/card-3.tiff"), resolved)
}

func TestResolvedImagePathAbsolute(t *testing.T) {
	f := New("card-4", 10, 10)
	f.ImagePath = "/abs/path/image.tiff"
	assert.Equal(t, "/abs/path/image.tiff", f.ResolvedImagePath("/anywhere/scan.pcscan"))
}

func TestResolvedImagePathEmpty(t *testing.T) {
	f := New("card-5", 10, 10)
	assert.Equal(t, "", f.ResolvedImagePath("/anywhere/scan.pcscan"))
}
