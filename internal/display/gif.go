package display

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"math"
	"os"

	"outbreak/internal/sim"
)

// gifPalette indexes follow sim.HealthState, with the background last.
var gifPalette = color.Palette{
	rgba(sim.Palette.Susceptible),
	rgba(sim.Palette.Infected),
	rgba(sim.Palette.Recovered),
	rgba(sim.Palette.Dead),
	rgba(sim.Palette.Background),
}

const backgroundIndex = 4

func rgba(c sim.RGB) color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff} }

// GIF collects every Every-th frame and encodes them as one animation on
// Close. Frames are drawn at plane resolution.
type GIF struct {
	Every int
	// Delay between frames in 100ths of a second.
	Delay int

	w      io.Writer
	file   *os.File
	anim   gif.GIF
	seen   int
	closed bool
}

// NewGIF writes the animation to w on Close.
func NewGIF(w io.Writer, every, delay int) *GIF {
	if every < 1 {
		every = 1
	}
	return &GIF{Every: every, Delay: delay, w: w}
}

// CreateGIF creates path and returns a sink that writes to it.
func CreateGIF(path string, every, delay int) (*GIF, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create gif: %w", err)
	}
	g := NewGIF(f, every, delay)
	g.file = f
	return g, nil
}

func (g *GIF) Present(f sim.Frame) error {
	g.seen++
	if (g.seen-1)%g.Every != 0 {
		return nil
	}
	g.anim.Image = append(g.anim.Image, Rasterize(f))
	g.anim.Delay = append(g.anim.Delay, g.Delay)
	return nil
}

// Frames is the number of frames captured so far.
func (g *GIF) Frames() int { return len(g.anim.Image) }

// Close encodes the animation once. A run that captured nothing writes
// nothing.
func (g *GIF) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	var err error
	if len(g.anim.Image) > 0 {
		if e := gif.EncodeAll(g.w, &g.anim); e != nil {
			err = fmt.Errorf("encode gif: %w", e)
		}
	}
	if g.file != nil {
		if e := g.file.Close(); e != nil && err == nil {
			err = e
		}
		g.file = nil
	}
	return err
}

// Discard closes the file without encoding and removes it. It is a no-op
// once the GIF has been closed.
func (g *GIF) Discard() error {
	if g.closed {
		return nil
	}
	g.closed = true
	if g.file == nil {
		return nil
	}
	name := g.file.Name()
	err := g.file.Close()
	g.file = nil
	if e := os.Remove(name); e != nil && err == nil {
		err = e
	}
	return err
}

// Rasterize draws f as filled discs on the background colour.
func Rasterize(f sim.Frame) *image.Paletted {
	w := int(math.Ceil(f.Width))
	h := int(math.Ceil(f.Height))
	img := image.NewPaletted(image.Rect(0, 0, w, h), gifPalette)
	for i := range img.Pix {
		img.Pix[i] = backgroundIndex
	}
	for _, a := range f.Agents {
		disc(img, a.Pos.X, a.Pos.Y, a.Radius, uint8(a.State))
	}
	return img
}

func disc(img *image.Paletted, cx, cy, r float64, idx uint8) {
	b := img.Bounds()
	x0 := max(int(math.Floor(cx-r)), b.Min.X)
	x1 := min(int(math.Ceil(cx+r)), b.Max.X-1)
	y0 := max(int(math.Floor(cy-r)), b.Min.Y)
	y1 := min(int(math.Ceil(cy+r)), b.Max.Y-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r*r {
				img.SetColorIndex(x, y, idx)
			}
		}
	}
}
