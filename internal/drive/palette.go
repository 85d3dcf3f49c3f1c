package drive

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// Floats returns the colour as 0..1 components for GL uniforms.
func (c RGB) Floats() (r, g, b float32) {
	return float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0
}

// Sky is a vertical gradient, Top at y=0 and Bottom at the viewport floor.
type Sky struct {
	Top, Bottom RGB
}

var (
	DaySky   = Sky{Top: RGB{R: 135, G: 206, B: 235}, Bottom: RGB{R: 224, G: 247, B: 250}}
	NightSky = Sky{Top: RGB{R: 35, G: 41, B: 70}, Bottom: RGB{R: 24, G: 29, B: 47}}
)

var Palette = struct {
	RoadPlaceholder RGB
	CarPlaceholder  RGB
	Text            RGB
	TextStroke      RGB
	Error           RGB
	Button          RGB
	ButtonMuted     RGB
	Star            RGB
}{
	RoadPlaceholder: RGB{R: 136, G: 136, B: 136},
	CarPlaceholder:  RGB{R: 231, G: 76, B: 60},
	Text:            RGB{R: 255, G: 255, B: 255},
	TextStroke:      RGB{R: 34, G: 34, B: 34},
	Error:           RGB{R: 255, G: 96, B: 96},
	Button:          RGB{R: 255, G: 255, B: 255},
	ButtonMuted:     RGB{R: 170, G: 170, B: 170},
	Star:            RGB{R: 255, G: 255, B: 255},
}
