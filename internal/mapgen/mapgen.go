// Package mapgen generates a printable PDF star chart of a session: every
// planet along the flight path, what has been explored, where the rocket is
// and how many stars were earned.
package mapgen

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"spaceexplorer/internal/game"

	"github.com/jung-kurt/gofpdf/v2"
)

const (
	pageW      = 842 // A4 landscape, points
	pageH      = 595
	margin     = 36
	planetSize = 48.0
	fontSize   = 9
	titleSize  = 20
	labelSize  = 8
)

// pathPoints places planets on the chart, in percent of the drawable area.
// The curve rises from the lower left, crests in the middle and comes back
// down so the tenth stop sits below the ninth.
var pathPoints = [][2]float64{
	{10, 80}, {18, 65}, {28, 52}, {39, 40}, {50, 35},
	{61, 40}, {72, 52}, {82, 65}, {90, 80}, {80, 92},
}

// Labels is the printed copy. Core PDF fonts only cover Latin-1, so callers
// pass copy in a Latin locale.
type Labels struct {
	Title       string
	Certificate string
	Summary     string
}

// Generate returns PDF bytes for the chart of p. Planet artwork is read from
// <assetsDir>/planets/<slug>.png when present and drawn as vector discs
// otherwise. A nil catalog yields nil bytes.
func Generate(c *game.Catalog, p game.Projection, labels Labels, assetsDir string) ([]byte, error) {
	if c == nil || c.Len() == 0 {
		return nil, nil
	}

	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Night sky
	pdf.SetFillColor(15, 23, 42)
	pdf.Rect(0, 0, pageW, pageH, "F")
	drawStarField(pdf, 90)
	drawWavyBorder(pdf)

	pdf.SetTextColor(165, 243, 252)
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(margin+12, margin+10)
	pdf.CellFormat(400, 22, tr(labels.Title), "", 0, "L", false, 0, "")
	if labels.Certificate != "" && p.Phase == game.PhaseEnd {
		pdf.SetFont("Helvetica", "I", 12)
		pdf.SetXY(margin+12, margin+34)
		pdf.CellFormat(400, 14, tr(labels.Certificate), "", 0, "L", false, 0, "")
	}
	if labels.Summary != "" {
		pdf.SetFont("Helvetica", "", fontSize)
		pdf.SetTextColor(203, 213, 225)
		pdf.SetXY(margin+12, margin+50)
		pdf.CellFormat(400, 10, tr(labels.Summary), "", 0, "L", false, 0, "")
	}
	drawStarTally(pdf, pageW-margin-150, margin+22, p.Stars)
	drawCompassRose(pdf, pageW-margin-48, pageH-margin-48)

	positions := layout(len(p.Levels))

	// Dashed flight path; explored legs are bright.
	pdf.SetLineWidth(2)
	pdf.SetDashPattern([]float64{8, 6}, 0)
	for i := 0; i < len(positions)-1; i++ {
		if p.Levels[i].Completed {
			pdf.SetDrawColor(34, 211, 238)
		} else {
			pdf.SetDrawColor(71, 85, 105)
		}
		pdf.Line(positions[i][0], positions[i][1], positions[i+1][0], positions[i+1][1])
	}
	pdf.SetDashPattern([]float64{}, 0)
	pdf.SetLineWidth(1)

	for i, v := range p.Levels {
		x, y := positions[i][0], positions[i][1]
		lvl := c.Level(i)
		if lvl == nil {
			continue
		}
		if !tryDrawPlanetImage(pdf, assetsDir, lvl, x, y, v.Locked) {
			drawPlanet(pdf, lvl, x, y, v.Locked)
		}
		switch {
		case v.Completed:
			drawCheck(pdf, x+planetSize/2-4, y-planetSize/2+4)
		case v.Locked:
			drawLock(pdf, x, y)
		}
		if v.Next && p.Phase != game.PhaseEnd {
			drawRocket(pdf, x, y-planetSize/2-16)
		}

		pdf.SetFont("Helvetica", "B", labelSize)
		pdf.SetTextColor(226, 232, 240)
		if v.Locked {
			pdf.SetTextColor(100, 116, 139)
		}
		pdf.SetXY(x-planetSize/2-10, y+planetSize/2+4)
		pdf.CellFormat(planetSize+20, 10, tr(strings.ToUpper(lvl.Name)), "", 0, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// layout maps n stops onto the page. Catalogs longer than pathPoints keep
// going along the bottom edge.
func layout(n int) [][2]float64 {
	left, top := float64(margin)+planetSize, float64(margin)+70
	w := float64(pageW) - 2*left
	h := float64(pageH) - top - float64(margin) - planetSize
	out := make([][2]float64, n)
	for i := range out {
		var px, py float64
		if i < len(pathPoints) {
			px, py = pathPoints[i][0], pathPoints[i][1]
		} else {
			px = 80 - float64(i-len(pathPoints)+1)*8
			py = 92
		}
		out[i] = [2]float64{left + px/100*w, top + py/100*h}
	}
	return out
}

// drawStarField scatters n background stars. Positions are a fixed function
// of the index so the chart is reproducible.
func drawStarField(pdf *gofpdf.Fpdf, n int) {
	pdf.SetFillColor(226, 232, 240)
	for i := 0; i < n; i++ {
		x := math.Mod(float64(i)*97.31, pageW-2*margin) + margin
		y := math.Mod(float64(i)*53.17+float64(i*i)*0.7, pageH-2*margin) + margin
		r := 0.4 + math.Mod(float64(i)*0.37, 1.0)
		pdf.Circle(x, y, r, "F")
	}
}

// drawWavyBorder draws a slightly wobbling frame around the chart.
func drawWavyBorder(pdf *gofpdf.Fpdf) {
	pts := wavyRectPoints(margin/2, margin/2, pageW-margin, pageH-margin, 16, 3)
	pdf.SetDrawColor(34, 211, 238)
	pdf.SetLineWidth(1.5)
	pdf.Polygon(pts, "D")
	pdf.SetLineWidth(1)
}

// wavyRectPoints returns polygon points for a rectangle with sinusoidal wobble on each side.
func wavyRectPoints(x, y, w, h float64, steps int, amp float64) []gofpdf.PointType {
	pts := make([]gofpdf.PointType, 0, steps*4+4)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + t*w + amp*math.Sin(float64(i)*0.7), Y: y + amp*math.Cos(float64(i)*0.5)})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + w + amp*math.Sin(float64(i)*0.6), Y: y + t*h + amp*math.Cos(float64(i)*0.4)})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + w - t*w + amp*math.Sin(float64(i)*0.8), Y: y + h + amp*math.Cos(float64(i)*0.3)})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + amp*math.Sin(float64(i)*0.5), Y: y + h - t*h + amp*math.Cos(float64(i)*0.6)})
	}
	return pts
}

// drawCompassRose draws an eight-point compass rose with N/S/E/W labels.
func drawCompassRose(pdf *gofpdf.Fpdf, cx, cy float64) {
	const rad = 20.0
	pdf.SetDrawColor(148, 163, 184)
	pdf.Circle(cx, cy, rad, "D")
	for i := 0; i < 8; i++ {
		angle := float64(i)*45.0*math.Pi/180 - math.Pi/2
		if i%2 == 0 {
			pdf.SetDrawColor(250, 204, 21)
			pdf.SetLineWidth(1.5)
		} else {
			pdf.SetDrawColor(148, 163, 184)
			pdf.SetLineWidth(1)
		}
		pdf.Line(cx, cy, cx+rad*math.Cos(angle), cy+rad*math.Sin(angle))
	}
	pdf.SetLineWidth(1)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetTextColor(203, 213, 225)
	for _, lab := range []struct {
		label  string
		dx, dy float64
	}{
		{"N", 0, -rad - 8}, {"S", 0, rad + 8}, {"E", rad + 7, 0}, {"W", -rad - 7, 0},
	} {
		pdf.SetXY(cx+lab.dx-4, cy+lab.dy-3)
		pdf.CellFormat(8, 6, lab.label, "", 0, "C", false, 0, "")
	}
}

// starPoints returns a five-point star polygon centred on (cx, cy).
func starPoints(cx, cy, outer float64) []gofpdf.PointType {
	inner := outer * 0.45
	pts := make([]gofpdf.PointType, 0, 10)
	for i := 0; i < 10; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := float64(i)*math.Pi/5 - math.Pi/2
		pts = append(pts, gofpdf.PointType{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
	return pts
}

// drawStarTally draws a gold star followed by the star count.
func drawStarTally(pdf *gofpdf.Fpdf, x, y float64, stars int) {
	pdf.SetFillColor(250, 204, 21)
	pdf.SetDrawColor(250, 204, 21)
	pdf.Polygon(starPoints(x, y, 12), "FD")
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(250, 250, 250)
	pdf.SetXY(x+18, y-9)
	pdf.CellFormat(120, 18, strconv.Itoa(stars), "", 0, "L", false, 0, "")
}

// rgb returns the catalog colour or slate grey.
func rgb(s string) (int, int, int) {
	c, ok := game.ParseColor(s)
	if !ok {
		return 148, 163, 184
	}
	return int(c.R), int(c.G), int(c.B)
}

// drawPlanet paints the level as a disc in its first colour with a lighter
// band in its second, plus rings where the level has them.
func drawPlanet(pdf *gofpdf.Fpdf, lvl *game.Level, x, y float64, locked bool) {
	r := planetSize / 2
	base, band := "", ""
	if len(lvl.Colors) > 0 {
		base = lvl.Colors[0]
	}
	if len(lvl.Colors) > 1 {
		band = lvl.Colors[1]
	}
	cr, cg, cb := rgb(base)
	if locked {
		cr, cg, cb = 71, 85, 105
	}
	pdf.SetFillColor(cr, cg, cb)
	pdf.SetDrawColor(15, 23, 42)
	pdf.Circle(x, y, r, "FD")
	if band != "" && !locked {
		br, bg, bb := rgb(band)
		pdf.SetFillColor(br, bg, bb)
		pdf.Ellipse(x, y+r*0.25, r*0.8, r*0.18, 0, "F")
	}
	if lvl.Rings {
		pdf.SetDrawColor(253, 230, 138)
		if locked {
			pdf.SetDrawColor(100, 116, 139)
		}
		pdf.SetLineWidth(2)
		pdf.Ellipse(x, y, r*1.5, r*0.35, -15, "D")
		pdf.SetLineWidth(1)
	}
}

// tryDrawPlanetImage embeds <assetsDir>/planets/<slug>.png. It reports false
// when there is no usable image.
func tryDrawPlanetImage(pdf *gofpdf.Fpdf, assetsDir string, lvl *game.Level, x, y float64, locked bool) bool {
	if assetsDir == "" || locked {
		return false
	}
	p := filepath.Join(assetsDir, "planets", lvl.Slug()+".png")
	b, err := os.ReadFile(filepath.Clean(p)) //nolint:gosec // slug is derived from the validated catalog
	if err != nil {
		return false
	}
	name := "planet_" + lvl.Slug()
	info := pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(b))
	if info == nil || !pdf.Ok() {
		pdf.ClearError()
		return false
	}
	pdf.ImageOptions(name, x-planetSize/2, y-planetSize/2, planetSize, planetSize, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return true
}

// drawCheck marks an explored planet with a green tick badge.
func drawCheck(pdf *gofpdf.Fpdf, x, y float64) {
	pdf.SetFillColor(34, 197, 94)
	pdf.SetDrawColor(15, 23, 42)
	pdf.Circle(x, y, 8, "FD")
	pdf.SetDrawColor(255, 255, 255)
	pdf.SetLineWidth(2)
	pdf.Line(x-4, y, x-1, y+3)
	pdf.Line(x-1, y+3, x+4, y-3)
	pdf.SetLineWidth(1)
}

// drawLock draws a small padlock over a locked planet.
func drawLock(pdf *gofpdf.Fpdf, x, y float64) {
	pdf.SetDrawColor(226, 232, 240)
	pdf.SetFillColor(226, 232, 240)
	pdf.SetLineWidth(2)
	pdf.Arc(x, y-3, 5, 6, 0, 180, 360, "D")
	pdf.SetLineWidth(1)
	pdf.Rect(x-7, y-3, 14, 11, "F")
}

// drawRocket draws the rocket hovering above a planet, nose up.
func drawRocket(pdf *gofpdf.Fpdf, x, y float64) {
	pdf.SetFillColor(248, 250, 252)
	pdf.SetDrawColor(15, 23, 42)
	pdf.Polygon([]gofpdf.PointType{
		{X: x, Y: y - 12}, {X: x + 5, Y: y - 3}, {X: x + 5, Y: y + 8}, {X: x - 5, Y: y + 8}, {X: x - 5, Y: y - 3},
	}, "FD")
	pdf.SetFillColor(239, 68, 68)
	pdf.Polygon([]gofpdf.PointType{{X: x - 5, Y: y + 2}, {X: x - 9, Y: y + 10}, {X: x - 5, Y: y + 8}}, "F")
	pdf.Polygon([]gofpdf.PointType{{X: x + 5, Y: y + 2}, {X: x + 9, Y: y + 10}, {X: x + 5, Y: y + 8}}, "F")
	pdf.SetFillColor(251, 146, 60)
	pdf.Polygon([]gofpdf.PointType{{X: x - 3, Y: y + 8}, {X: x, Y: y + 15}, {X: x + 3, Y: y + 8}}, "F")
	pdf.SetFillColor(56, 189, 248)
	pdf.Circle(x, y-2, 2.5, "F")
}
