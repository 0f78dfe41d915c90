package rain

import (
	"math"

	"github.com/lixenwraith/vi-rain/parameter"
	"github.com/lixenwraith/vi-rain/vmath"
)

// Streak is one falling column of glyphs
type Streak struct {
	X      int
	Y      float64 // Leading edge, exclusive
	Length int
	Speed  float64
	Seed   uint64
}

// NewStreak creates a streak above the screen in a random column
// width must be positive
func NewStreak(src Source, width int) Streak {
	return Streak{
		X:      src.Intn(width),
		Y:      0,
		Length: src.IntRange(parameter.StreakLengthMin, parameter.StreakLengthMax),
		Speed:  src.FloatRange(parameter.StreakSpeedMin, parameter.StreakSpeedMax),
		Seed:   vmath.SplitMix64(src.Uint64()), // Mixed so glyphs do not replay the spawn stream
	}
}

// Advance moves the streak down by its speed
func (s *Streak) Advance() {
	s.Y += s.Speed
}

// InBounds reports whether any part of the streak can still appear on a width x height screen
func (s Streak) InBounds(width, height int) bool {
	return s.X < width && s.Y-float64(s.Length) < float64(height)
}

// Brightness returns the HSL lightness at tail distance p (0 is the tail)
func (s Streak) Brightness(p int) float64 {
	fraction := float64(p+1) / float64(s.Length)
	return parameter.BrightnessFloor +
		fraction*parameter.BrightnessGain*(s.Speed/parameter.StreakSpeedMax)*parameter.BrightnessSpeedWeight
}

// Glyph returns the character at tail distance p
func (s Streak) Glyph(p int) rune {
	var rng vmath.FastRand
	rng.Seed(s.Seed)
	var r rune
	for i := 0; i <= p; i++ {
		r = nextGlyph(&rng)
	}
	return r
}

func nextGlyph(rng *vmath.FastRand) rune {
	return rune(parameter.Glyphs[rng.Intn(len(parameter.Glyphs))])
}

// Render paints the visible rows of the streak and returns the number of cells drawn
// Drawing stops at the first surface error
func (s Streak) Render(surf Surface, height int, hue float64) (int, error) {
	top := int(math.Floor(s.Y)) - s.Length

	var rng vmath.FastRand
	rng.Seed(s.Seed)

	cells := 0
	for p := 0; p < s.Length; p++ {
		// Rows above the screen still consume their draw
		glyph := nextGlyph(&rng)
		y := top + p
		if y < 0 {
			continue
		}
		if y >= height {
			break
		}

		if err := surf.MoveTo(s.X, y); err != nil {
			return cells, err
		}
		if err := surf.SetForeground(CellColor(hue, s.Brightness(p))); err != nil {
			return cells, err
		}
		if err := surf.Put(glyph); err != nil {
			return cells, err
		}
		cells++
	}
	return cells, nil
}
