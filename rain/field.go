package rain

import (
	"fmt"

	"github.com/lixenwraith/vi-rain/parameter"
)

// DrawError reports streaks that failed to paint during an otherwise committed frame
type DrawError struct {
	Failed int   // Streaks whose render returned an error
	Err    error // First failure
}

func (e *DrawError) Error() string {
	return fmt.Sprintf("%d streak(s) failed to draw: %v", e.Failed, e.Err)
}

func (e *DrawError) Unwrap() error {
	return e.Err
}

// Field is the set of live streaks
// Not safe for concurrent use; owned by the render loop
type Field struct {
	streaks []Streak
	hue     float64
	cells   uint64
}

// NewField creates an empty field using the default hue
func NewField() *Field {
	return &Field{
		streaks: make([]Streak, 0, parameter.InitialFieldCapacity),
		hue:     parameter.Hue,
	}
}

// Spawn adds one random streak
func (f *Field) Spawn(src Source, width int) {
	f.streaks = append(f.streaks, NewStreak(src, width))
}

// Add appends a prepared streak
func (f *Field) Add(s Streak) {
	f.streaks = append(f.streaks, s)
}

// SpawnBatch adds between 1 and max(1, width/SpawnColumns) streaks and returns how many
func (f *Field) SpawnBatch(src Source, width int) int {
	if width <= 0 {
		return 0
	}
	n := 1 + src.Intn(max(1, width/parameter.SpawnColumns))
	for range n {
		f.Spawn(src, width)
	}
	return n
}

// Update paints one frame then advances every streak and drops those that left the screen
//
// Clear and commit failures are returned unchanged. Streaks that fail to draw do not stop
// the frame; they are reported together as a *DrawError after a successful commit.
// The simulation steps exactly once regardless of the outcome.
func (f *Field) Update(s Surface, width, height int) error {
	var drawErr *DrawError

	err := s.SyncUpdate(func() error {
		if err := s.Clear(); err != nil {
			return err
		}
		for i := range f.streaks {
			st := &f.streaks[i]
			// Columns past a shrunken width are not drawn; the step below drops them
			if st.X >= width {
				continue
			}
			n, err := st.Render(s, height, f.hue)
			f.cells += uint64(n)
			if err != nil {
				if drawErr == nil {
					drawErr = &DrawError{Err: err}
				}
				drawErr.Failed++
			}
		}
		return nil
	})

	f.step(width, height)

	if err != nil {
		return err
	}
	if drawErr != nil {
		return drawErr
	}
	return nil
}

// step advances all streaks and compacts the survivors in place
func (f *Field) step(width, height int) {
	live := f.streaks[:0]
	for _, st := range f.streaks {
		st.Advance()
		if st.InBounds(width, height) {
			live = append(live, st)
		}
	}
	f.streaks = live
}

func (f *Field) Len() int {
	return len(f.streaks)
}

// Streaks returns a copy of the live streaks
func (f *Field) Streaks() []Streak {
	out := make([]Streak, len(f.streaks))
	copy(out, f.streaks)
	return out
}

// Cells returns the total number of cells drawn since creation
func (f *Field) Cells() uint64 {
	return f.cells
}

func (f *Field) SetHue(h float64) {
	f.hue = h
}

func (f *Field) Hue() float64 {
	return f.hue
}
