// split_planets cuts a planet sprite sheet into one PNG per catalog level and
// writes them to assets/planets/<slug>.png, the files the server prefers over
// its generated artwork. Cells are read left to right, top to bottom, in
// catalog order.
// Usage: go run scripts/split_planets.go <sheet.png> [columns]
package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"spaceexplorer/internal/game"
)

const catalogPath = "content/planets.yaml"

func main() {
	code := run()
	if code != 0 {
		os.Exit(code)
	}
}

func run() int {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintf(os.Stderr, "usage: go run scripts/split_planets.go <sheet.png> [columns]\n")
		return 1
	}
	catalog, err := game.LoadCatalog(catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load catalog: %v\n", err)
		return 1
	}
	n := catalog.Len()
	cols := n
	if len(os.Args) == 3 {
		cols, err = strconv.Atoi(os.Args[2])
		if err != nil || cols <= 0 {
			fmt.Fprintf(os.Stderr, "columns must be a positive number\n")
			return 1
		}
	}
	rows := (n + cols - 1) / cols

	inPath := filepath.Clean(os.Args[1])
	if strings.Contains(inPath, "..") {
		fmt.Fprintf(os.Stderr, "path must not escape current directory\n")
		return 1
	}
	f, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", inPath, err)
		return 1
	}
	defer func() {
		if cErr := f.Close(); cErr != nil {
			fmt.Fprintf(os.Stderr, "close input: %v\n", cErr)
		}
	}()
	img, _, err := image.Decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode: %v\n", err)
		return 1
	}

	// Bounds may not start at the origin after decode.
	b := img.Bounds()
	cellW, cellH := b.Dx()/cols, b.Dy()/rows
	if cellW == 0 || cellH == 0 {
		fmt.Fprintf(os.Stderr, "sheet %dx%d is too small for %d cells\n", b.Dx(), b.Dy(), n)
		return 1
	}

	outDir := filepath.Join("assets", "planets")
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", outDir, err)
		return 1
	}
	for i := range catalog.Levels {
		lvl := &catalog.Levels[i]
		x0 := b.Min.X + (i%cols)*cellW
		y0 := b.Min.Y + (i/cols)*cellH
		r := image.Rect(x0, y0, x0+cellW, y0+cellH)
		name := lvl.Slug() + ".png"
		if err := writeCrop(img, r, outDir, name); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", name, err)
			return 1
		}
		fmt.Println(filepath.Join(outDir, name))
	}
	return 0
}

func writeCrop(img image.Image, r image.Rectangle, outDir, baseName string) (err error) {
	dx, dy := r.Dx(), r.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, dx, dy))
	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			dst.Set(x, y, img.At(r.Min.X+x, r.Min.Y+y))
		}
	}
	path := filepath.Join(outDir, baseName)
	if filepath.Clean(path) != path || strings.Contains(path, "..") {
		return fmt.Errorf("invalid path")
	}
	f, err := os.Create(path) // #nosec G304 -- path is under assets/planets
	if err != nil {
		return err
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}()
	return png.Encode(f, dst)
}
