// Command digitize turns a photograph of a punched card into a boolean grid.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"gocv.io/x/gocv"

	"github.com/knitscape/punchcard-digitizer/internal/boundary"
	"github.com/knitscape/punchcard-digitizer/internal/detect"
	"github.com/knitscape/punchcard-digitizer/internal/export"
	"github.com/knitscape/punchcard-digitizer/internal/ingest"
	"github.com/knitscape/punchcard-digitizer/internal/rectify"
	"github.com/knitscape/punchcard-digitizer/internal/scan"
	"github.com/knitscape/punchcard-digitizer/internal/surface"
	"github.com/knitscape/punchcard-digitizer/internal/version"
	"github.com/knitscape/punchcard-digitizer/internal/visualize"

	_ "golang.org/x/image/tiff"
)

func main() {
	scanPath := flag.String("scan", "", "Path to a .pcscan descriptor (image, boundary, grid size, params)")
	imagePath := flag.String("image", "", "Override the image path from the scan descriptor")
	format := flag.String("format", "text", "Export format: text, png, or bmp")
	out := flag.String("out", "", "Output path (default: derived from -scan and -format)")
	overlay := flag.String("overlay", "", "Optional path to write a PNG visualization overlay")
	sensitivity := flag.Float64("sensitivity", -1, "Override DetectionParams.Sensitivity [0,100]")
	debug := flag.Bool("debug", false, "Print per-stage diagnostics to stderr")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("digitize %s (%s, %s)\n", version.Version, version.GitCommit, version.BuildTime)
		return
	}

	if *scanPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: digitize -scan <file.pcscan> [-image path] [-format text|png|bmp] [-out path] [-overlay path.png]")
		os.Exit(1)
	}

	if err := run(*scanPath, *imagePath, *format, *out, *overlay, *sensitivity, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "digitize: %v\n", err)
		os.Exit(1)
	}
}

func run(scanPath, imageOverride, format, out, overlayPath string, sensitivity float64, debug bool) error {
	descriptor, err := scan.Load(scanPath)
	if err != nil {
		return fmt.Errorf("load scan descriptor: %w", err)
	}

	resolvedImage := imageOverride
	if resolvedImage == "" {
		resolvedImage = descriptor.ResolvedImagePath(scanPath)
	}
	if resolvedImage == "" {
		return fmt.Errorf("no image path in descriptor or on the command line")
	}

	srcImg, err := decodeImage(resolvedImage)
	if err != nil {
		return err
	}

	mat, err := ingest.ToMat(srcImg)
	if err != nil {
		return fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	params := descriptor.Params
	params.Debug = debug
	if sensitivity >= 0 {
		params.Sensitivity = sensitivity
	}

	src := rectify.NewSource(mat)
	result, err := detect.Detect(src, descriptor.Boundary, descriptor.Width, descriptor.Height, params)
	if err != nil {
		return fmt.Errorf("detect: %w", err)
	}

	if out == "" {
		out = defaultOutputPath(scanPath, format)
	}
	if err := writeExport(out, format, result); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d blobs accepted, %dx%d grid)\n", out, len(result.Blobs), descriptor.Height, descriptor.Width)

	if overlayPath != "" {
		if err := writeOverlay(overlayPath, src, descriptor.Boundary, descriptor.Width, descriptor.Height, params, result); err != nil {
			return fmt.Errorf("write overlay: %w", err)
		}
		fmt.Printf("wrote overlay %s\n", overlayPath)
	}

	return nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

func defaultOutputPath(scanPath, format string) string {
	ext := map[string]string{"text": ".txt", "png": ".png", "bmp": ".bmp"}[format]
	if ext == "" {
		ext = ".out"
	}
	return scanPath + ext
}

func writeExport(path, format string, result detect.Result) error {
	switch format {
	case "text":
		return export.WriteText(path, result.Grid)
	case "png":
		return export.WritePNG(path, result.Grid)
	case "bmp":
		return export.WriteBMP(path, result.Grid)
	default:
		return fmt.Errorf("unknown format %q (want text, png, or bmp)", format)
	}
}

func writeOverlay(path string, src rectify.Source, b boundary.Boundary, w, h int, params detect.DetectionParams, result detect.Result) error {
	surf := surface.New(b)
	rectified, err := rectify.Rectify(src, surf, w, h, params.SamplesPerCell)
	if err != nil {
		return err
	}
	defer rectified.Close()

	overlayMat := visualize.Overlay(rectified.Mat, result)
	defer overlayMat.Close()

	if ok := gocv.IMWrite(path, overlayMat); !ok {
		return fmt.Errorf("gocv.IMWrite failed for %s", path)
	}
	return nil
}
