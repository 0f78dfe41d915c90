package rain

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/vi-rain/parameter"
	"github.com/lixenwraith/vi-rain/terminal"
)

// CellColor converts a hue in degrees and an HSL lightness in [0,1] to RGB
func CellColor(hue, lightness float64) terminal.RGB {
	r, g, b := colorful.Hsl(hue, parameter.Saturation, lightness).Clamped().RGB255()
	return terminal.RGB{R: r, G: g, B: b}
}
