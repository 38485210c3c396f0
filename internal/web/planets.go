package web

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"os"
	"strings"

	"spaceexplorer/internal/game"
)

// handlePlanet serves planet artwork: <AssetsDir>/planets/<slug>.png if
// present, otherwise a generated blocky planet in the level's colours.
func (s *Server) handlePlanet(w http.ResponseWriter, r *http.Request) {
	lvl, ok := s.levelFromPath(r.PathValue("index"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	// Prefer a static file so artists can drop in PNGs.
	if candidates, ok := s.assetCandidates("planets", lvl.Slug()+".png", nil); ok {
		if b, err := os.ReadFile(candidates[0]); err == nil { // #nosec G304 -- under validated <assets>/planets
			w.Header().Set("Content-Type", "image/png")
			w.Header().Set("Cache-Control", assetCacheControl)
			if _, err := w.Write(b); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
	}

	img := generatePlanetImage(lvl)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=300")
	if _, err := w.Write(buf.Bytes()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

var (
	pixelSpace = color.RGBA{0x0f, 0x17, 0x2a, 255} // slate-900
	pixelStar  = color.RGBA{0xe2, 0xe8, 0xf0, 255}
	pixelRing  = color.RGBA{0xfd, 0xe6, 0x8a, 255}
	pixelGrey  = color.RGBA{0x94, 0xa3, 0xb8, 255}
)

const blockPx = 8
const artW, artH = 128, 128
const blocksW, blocksH = artW / blockPx, artH / blockPx

// fillBlock fills one 8×8 block at block coords (bx, by) with clr.
func fillBlock(img *image.RGBA, bx, by int, clr color.RGBA) {
	for dy := 0; dy < blockPx; dy++ {
		for dx := 0; dx < blockPx; dx++ {
			x := bx*blockPx + dx
			y := by*blockPx + dy
			if x < artW && y < artH {
				img.SetRGBA(x, y, clr)
			}
		}
	}
}

func levelColor(lvl *game.Level, i int) color.RGBA {
	if i < len(lvl.Colors) {
		if c, ok := game.ParseColor(lvl.Colors[i]); ok {
			return c
		}
	}
	return pixelGrey
}

// generatePlanetImage draws the level as a blocky disc on a starry
// background: its first colour as the body, its second as a band through
// the lower half and a ring belt when the level has rings.
func generatePlanetImage(lvl *game.Level) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, artW, artH))
	for by := 0; by < blocksH; by++ {
		for bx := 0; bx < blocksW; bx++ {
			fillBlock(img, bx, by, pixelSpace)
		}
	}
	// A few stars, placed from the name so each planet differs.
	seed := 0
	for _, ch := range strings.ToLower(lvl.Name) {
		seed = seed*31 + int(ch)
	}
	if seed < 0 {
		seed = -seed
	}
	for i := 0; i < 6; i++ {
		fillBlock(img, (seed+i*7)%blocksW, (seed/3+i*5)%blocksH, pixelStar)
	}

	body, band := levelColor(lvl, 0), levelColor(lvl, 1)
	cx, cy, r := blocksW/2, blocksH/2, 5
	if lvl.Rings {
		r = 4
	}
	for by := 0; by < blocksH; by++ {
		for bx := 0; bx < blocksW; bx++ {
			dx, dy := bx-cx, by-cy
			if dx*dx+dy*dy > r*r {
				continue
			}
			clr := body
			if dy == 1 || dy == 2 {
				clr = band
			}
			fillBlock(img, bx, by, clr)
		}
	}
	if lvl.Rings {
		for bx := cx - r - 2; bx <= cx+r+2; bx++ {
			if bx < 0 || bx >= blocksW {
				continue
			}
			// Ring passes in front of the planet across its equator.
			fillBlock(img, bx, cy, pixelRing)
		}
	}
	return img
}
