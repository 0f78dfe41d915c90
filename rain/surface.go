package rain

import (
	"github.com/lixenwraith/vi-rain/terminal"
)

// Surface is the paint target of a frame
// Commands issued inside SyncUpdate become visible together when it returns
type Surface interface {
	Clear() error
	MoveTo(x, y int) error
	SetForeground(c terminal.RGB) error
	Put(r rune) error

	// SyncUpdate runs fn as one atomic redraw; a commit failure takes precedence over fn's error
	SyncUpdate(fn func() error) error
}

// Source supplies the randomness for spawning, satisfied by *vmath.FastRand
type Source interface {
	Intn(n int) int
	IntRange(lo, hi int) int           // [lo, hi]
	FloatRange(lo, hi float64) float64 // [lo, hi)
	Uint64() uint64
}
