// Package scan provides a JSON sidecar file bundling everything one
// digitization run needs: the source image, the boundary, the target grid
// dimensions, and detection parameters — so a CLI invocation does not have
// to re-specify a full boundary on every run.
package scan

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/knitscape/punchcard-digitizer/internal/boundary"
	"github.com/knitscape/punchcard-digitizer/internal/detect"
)

// File represents a punch-card digitizer scan descriptor (.pcscan).
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// ImagePath is relative to the descriptor file unless absolute.
	ImagePath string `json:"image"`

	Boundary boundary.Boundary     `json:"boundary"`
	Width    int                   `json:"width"`
	Height   int                   `json:"height"`
	Params   detect.DetectionParams `json:"params"`
}

// New creates a new scan descriptor with default detection parameters.
func New(name string, width, height int) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
		Width:    width,
		Height:   height,
		Params:   detect.DefaultDetectionParams(),
	}
}

// Load reads a scan descriptor from a .pcscan file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	return &f, nil
}

// Save writes the descriptor to path, updating its modified time.
func (f *File) Save(path string) error {
	f.Modified = time.Now()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetImage sets ImagePath, relative to descriptorPath when possible.
func (f *File) SetImage(descriptorPath, imagePath string) {
	rel, err := filepath.Rel(filepath.Dir(descriptorPath), imagePath)
	if err != nil {
		f.ImagePath = imagePath
	} else {
		f.ImagePath = rel
	}
	f.Modified = time.Now()
}

// ResolvedImagePath returns the path to the source image: ImagePath as is
// when absolute, otherwise joined onto descriptorPath's directory (so the
// result is relative when descriptorPath is relative).
func (f *File) ResolvedImagePath(descriptorPath string) string {
	if f.ImagePath == "" {
		return ""
	}
	if filepath.IsAbs(f.ImagePath) {
		return f.ImagePath
	}
	return filepath.Join(filepath.Dir(descriptorPath), f.ImagePath)
}
