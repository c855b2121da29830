// Command genfavicon generates PNG favicon files for Artist Explorer.
// The mark is a white vinyl-record glyph on a teal rounded-rect background.
// Run from the repository root: go run ./tools/genfavicon
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/vector"
)

const (
	viewboxSz = 32.0
	cornerR   = 6.0

	// Record geometry in viewbox units, centered at 16,16.
	discR   = 10.5
	labelR  = 4.0
	holeR   = 1.2
	grooveR = 7.5

	// Circle-from-cubics constant.
	kappa = 0.5522847498
)

var bgColor = color.NRGBA{79, 195, 161, 255} // #4FC3A1

func main() {
	outDir := filepath.Join("web", "static", "img")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create dir: %v\n", err)
		os.Exit(1)
	}

	targets := []struct {
		name string
		size int
	}{
		{"favicon-16x16.png", 16},
		{"favicon-32x32.png", 32},
		{"apple-touch-icon.png", 180},
		{"android-chrome-192x192.png", 192},
		{"android-chrome-512x512.png", 512},
	}

	for _, t := range targets {
		img := renderIcon(t.size)
		p := filepath.Join(outDir, t.name)
		f, err := os.Create(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create %s: %v\n", p, err)
			os.Exit(1)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			fmt.Fprintf(os.Stderr, "encode %s: %v\n", p, err)
			os.Exit(1)
		}
		f.Close()
		fmt.Printf("generated %s (%dx%d)\n", p, t.size, t.size)
	}
}

func renderIcon(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	s := float64(size) / viewboxSz

	// Rounded rectangle background.
	half := float64(size) / 2.0
	cr := cornerR * s
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := roundedBoxSDF(float64(x)+0.5-half, float64(y)+0.5-half, half, half, cr)
			if d <= -0.5 {
				img.SetNRGBA(x, y, bgColor)
			} else if d < 0.5 {
				blend(img, x, y, bgColor, 0.5-d)
			}
		}
	}

	drawRecord(img, size)
	return img
}

// drawRecord rasterizes the vinyl glyph: a white disc with the label ring and
// spindle hole punched out, then a thin groove ring on top. Holes are cut by
// winding the inner contours opposite to the outer ones.
func drawRecord(img *image.NRGBA, size int) {
	s := float64(size) / viewboxSz
	cx, cy := 16.0*s, 16.0*s

	var r vector.Rasterizer
	r.Reset(size, size)
	circle(&r, cx, cy, discR*s, false)
	circle(&r, cx, cy, labelR*s, true)
	r.Draw(img, img.Bounds(), image.White, image.Point{})

	// Label disc with the spindle hole cut out, slightly inset so the white
	// disc reads as a ring around it at small sizes.
	r.Reset(size, size)
	circle(&r, cx, cy, (labelR-0.8)*s, false)
	circle(&r, cx, cy, holeR*s, true)
	r.Draw(img, img.Bounds(), image.White, image.Point{})

	// Groove ring.
	groove := 0.5 * s
	r.Reset(size, size)
	circle(&r, cx, cy, (grooveR+groove/2)*s, false)
	circle(&r, cx, cy, (grooveR-groove/2)*s, true)
	r.Draw(img, img.Bounds(), image.NewUniform(bgColor), image.Point{})
}

// circle appends a full circle to the rasterizer as four cubic segments.
// reverse winds it the opposite way, cutting a hole under nonzero winding.
func circle(r *vector.Rasterizer, cx, cy, radius float64, reverse bool) {
	k := radius * kappa
	type pt struct{ x, y float64 }
	var segs [][3]pt
	if !reverse {
		segs = [][3]pt{
			{{cx + radius, cy + k}, {cx + k, cy + radius}, {cx, cy + radius}},
			{{cx - k, cy + radius}, {cx - radius, cy + k}, {cx - radius, cy}},
			{{cx - radius, cy - k}, {cx - k, cy - radius}, {cx, cy - radius}},
			{{cx + k, cy - radius}, {cx + radius, cy - k}, {cx + radius, cy}},
		}
	} else {
		segs = [][3]pt{
			{{cx + radius, cy - k}, {cx + k, cy - radius}, {cx, cy - radius}},
			{{cx - k, cy - radius}, {cx - radius, cy - k}, {cx - radius, cy}},
			{{cx - radius, cy + k}, {cx - k, cy + radius}, {cx, cy + radius}},
			{{cx + k, cy + radius}, {cx + radius, cy + k}, {cx + radius, cy}},
		}
	}

	r.MoveTo(float32(cx+radius), float32(cy))
	for _, seg := range segs {
		r.CubeTo(
			float32(seg[0].x), float32(seg[0].y),
			float32(seg[1].x), float32(seg[1].y),
			float32(seg[2].x), float32(seg[2].y),
		)
	}
	r.ClosePath()
}

// roundedBoxSDF returns the signed distance from (px, py) to a rounded rect
// centered at the origin. Negative = inside, positive = outside.
func roundedBoxSDF(px, py, bx, by, r float64) float64 {
	qx := math.Abs(px) - bx + r
	qy := math.Abs(py) - by + r
	return math.Sqrt(math.Max(qx, 0)*math.Max(qx, 0)+math.Max(qy, 0)*math.Max(qy, 0)) +
		math.Min(math.Max(qx, qy), 0) - r
}

// blend alpha-composites color c at the given alpha over the existing pixel.
func blend(img *image.NRGBA, x, y int, c color.NRGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	alpha = math.Min(alpha, 1)

	dst := img.NRGBAAt(x, y)
	sa := float64(c.A) / 255.0 * alpha
	da := float64(dst.A) / 255.0
	oa := sa + da*(1-sa)
	if oa == 0 {
		return
	}

	img.SetNRGBA(x, y, color.NRGBA{
		R: uint8(math.Round((float64(c.R)*sa + float64(dst.R)*da*(1-sa)) / oa)),
		G: uint8(math.Round((float64(c.G)*sa + float64(dst.G)*da*(1-sa)) / oa)),
		B: uint8(math.Round((float64(c.B)*sa + float64(dst.B)*da*(1-sa)) / oa)),
		A: uint8(math.Round(oa * 255)),
	})
}
