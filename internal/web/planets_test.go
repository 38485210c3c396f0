package web

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"testing"
)

// minimalPNG returns a valid 1x1 PNG.
func minimalPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode minimal PNG: %v", err)
	}
	return buf.Bytes()
}

func TestHandlePlanet_Generated(t *testing.T) {
	srv := testServer(t)
	rec := do(t, srv, http.MethodGet, "/planets/2", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != artW || b.Dy() != artH {
		t.Errorf("Expected %dx%d, got %dx%d", artW, artH, b.Dx(), b.Dy())
	}
}

func TestHandlePlanet_StaticFileWins(t *testing.T) {
	srv := testServer(t)
	want := minimalPNG(t)
	writeAsset(t, srv.AssetsDir, "planets", "earth.png", want)

	rec := do(t, srv, http.MethodGet, "/planets/2", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !bytes.Equal(rec.Body.Bytes(), want) {
		t.Error("Expected the static PNG to be served")
	}
}

func TestHandlePlanet_UnknownLevel(t *testing.T) {
	srv := testServer(t)
	for _, path := range []string{"/planets/-1", "/planets/3", "/planets/mars"} {
		rec := do(t, srv, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", path, rec.Code)
		}
	}
}

func TestGeneratePlanetImage_UsesLevelColour(t *testing.T) {
	lvl := testLevel("Neptune")
	lvl.Colors = []string{"#ff0000"}
	img := generatePlanetImage(&lvl)
	// The disc is centred.
	got := color.RGBAModel.Convert(img.At(artW/2, artH/2)).(color.RGBA)
	if got.R < 0x80 || got.G > 0x80 {
		t.Errorf("Expected a red centre, got %+v", got)
	}
}
