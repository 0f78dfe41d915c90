package engine

import "time"

// Stats summarizes a run
type Stats struct {
	Frames  uint64 // Timer ticks; one per painted frame
	Cells   uint64 // Cells drawn over the whole run
	Elapsed time.Duration
	Width   int // Final geometry
	Height  int
}

// FPS returns frames per second, zero for an empty run
func (s Stats) FPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

// CellsPerSecond returns the draw throughput, zero for an empty run
func (s Stats) CellsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Cells) / s.Elapsed.Seconds()
}
