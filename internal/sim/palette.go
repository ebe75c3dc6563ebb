package sim

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// Floats returns the colour as normalised channels for GPU upload.
func (c RGB) Floats() (r, g, b float32) {
	return float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0
}

var Palette = struct {
	Background  RGB
	Text        RGB
	Susceptible RGB
	Infected    RGB
	Recovered   RGB
	Dead        RGB
}{
	Background:  RGB{R: 255, G: 255, B: 255},
	Text:        RGB{R: 0, G: 0, B: 0},
	Susceptible: RGB{R: 0, G: 100, B: 255},
	Infected:    RGB{R: 50, G: 150, B: 50},
	Recovered:   RGB{R: 130, G: 0, B: 130},
	Dead:        RGB{R: 190, G: 175, B: 50},
}

// Color returns the display colour for agents in state s.
func (s HealthState) Color() RGB {
	switch s {
	case Infected:
		return Palette.Infected
	case Recovered:
		return Palette.Recovered
	case Dead:
		return Palette.Dead
	default:
		return Palette.Susceptible
	}
}
