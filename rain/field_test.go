package rain

import (
	"errors"
	"testing"

	"github.com/lixenwraith/vi-rain/parameter"
	"github.com/lixenwraith/vi-rain/vmath"
)

func TestNewField(t *testing.T) {
	f := NewField()
	if f.Len() != 0 {
		t.Errorf("Expected empty field, got %d", f.Len())
	}
	if f.Hue() != parameter.Hue {
		t.Errorf("Expected default hue %f, got %f", parameter.Hue, f.Hue())
	}
	if f.Cells() != 0 {
		t.Errorf("Expected zero cells, got %d", f.Cells())
	}
}

func TestUpdateEmptyField(t *testing.T) {
	f := NewField()
	surf := &recordingSurface{}

	if err := f.Update(surf, 80, 24); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if surf.syncs != 1 {
		t.Errorf("Expected one synchronized update, got %d", surf.syncs)
	}
	if surf.clears != 1 {
		t.Errorf("Expected one clear, got %d", surf.clears)
	}
	if len(surf.cells) != 0 {
		t.Errorf("Expected no draws, got %d", len(surf.cells))
	}
}

func TestUpdateRemovesExpiredStreak(t *testing.T) {
	f := NewField()
	f.Add(Streak{X: 10, Y: 0, Length: 5, Speed: 1, Seed: 1})
	surf := &recordingSurface{}

	for i := 1; i <= 28; i++ {
		if err := f.Update(surf, 80, 24); err != nil {
			t.Fatalf("Update %d failed: %v", i, err)
		}
	}
	if f.Len() != 1 {
		t.Fatalf("Expected streak alive after 28 updates, got %d", f.Len())
	}
	if y := f.Streaks()[0].Y; y != 28 {
		t.Errorf("Expected Y=28, got %f", y)
	}

	for i := 29; i <= 30; i++ {
		if err := f.Update(surf, 80, 24); err != nil {
			t.Fatalf("Update %d failed: %v", i, err)
		}
	}
	if f.Len() != 0 {
		t.Errorf("Expected streak removed by 30 updates, got %d", f.Len())
	}
}

func TestUpdateRendersBeforeAdvance(t *testing.T) {
	f := NewField()
	f.Add(Streak{X: 3, Y: 5, Length: 4, Speed: 1, Seed: 8})
	surf := &recordingSurface{}

	if err := f.Update(surf, 80, 24); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	// Painted at Y=5 (rows 1..4), stored at Y=6
	if _, ok := surf.at(3, 1); !ok {
		t.Error("Expected tail at row 1")
	}
	if _, ok := surf.at(3, 5); ok {
		t.Error("Row 5 painted before the streak advanced")
	}
	if f.Streaks()[0].Y != 6 {
		t.Errorf("Expected Y=6 after update, got %f", f.Streaks()[0].Y)
	}
	if f.Cells() != 4 {
		t.Errorf("Expected 4 cells counted, got %d", f.Cells())
	}
}

func TestUpdateDropsColumnsPastWidth(t *testing.T) {
	f := NewField()
	f.Add(Streak{X: 70, Y: 10, Length: 5, Speed: 1, Seed: 1})
	f.Add(Streak{X: 20, Y: 10, Length: 5, Speed: 1, Seed: 2})
	surf := &recordingSurface{}

	// Terminal shrank to 40 columns
	if err := f.Update(surf, 40, 24); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	for _, c := range surf.cells {
		if c.x >= 40 {
			t.Errorf("Drew past width at column %d", c.x)
		}
	}
	if f.Len() != 1 || f.Streaks()[0].X != 20 {
		t.Errorf("Expected only column 20 to survive, got %+v", f.Streaks())
	}
}

func TestUpdatePartialDrawFailure(t *testing.T) {
	putErr := errors.New("column 5 broken")
	f := NewField()
	f.Add(Streak{X: 5, Y: 10, Length: 5, Speed: 1, Seed: 1})
	f.Add(Streak{X: 7, Y: 10, Length: 5, Speed: 1, Seed: 2})
	f.Add(Streak{X: 5, Y: 20, Length: 3, Speed: 1, Seed: 3})
	surf := &recordingSurface{putErr: func(x, y int) error {
		if x == 5 {
			return putErr
		}
		return nil
	}}

	err := f.Update(surf, 80, 24)

	var drawErr *DrawError
	if !errors.As(err, &drawErr) {
		t.Fatalf("Expected *DrawError, got %v", err)
	}
	if drawErr.Failed != 2 {
		t.Errorf("Expected 2 failed streaks, got %d", drawErr.Failed)
	}
	if !errors.Is(err, putErr) {
		t.Error("Expected DrawError to unwrap to the surface error")
	}
	if len(surf.cells) != 5 {
		t.Errorf("Expected the healthy streak fully drawn, got %d cells", len(surf.cells))
	}
	if f.Cells() != 5 {
		t.Errorf("Expected 5 cells counted, got %d", f.Cells())
	}

	for i, s := range f.Streaks() {
		if s.Y != 11 && s.Y != 21 {
			t.Errorf("Streak %d not advanced: Y=%f", i, s.Y)
		}
	}
	if f.Len() != 3 {
		t.Errorf("Expected all streaks retained, got %d", f.Len())
	}
}

func TestUpdateClearFailure(t *testing.T) {
	clearErr := errors.New("clear failed")
	f := NewField()
	f.Add(Streak{X: 1, Y: 10, Length: 5, Speed: 1, Seed: 1})
	f.Add(Streak{X: 2, Y: 28, Length: 5, Speed: 1, Seed: 2})
	surf := &recordingSurface{clearErr: clearErr}

	err := f.Update(surf, 80, 24)
	if !errors.Is(err, clearErr) {
		t.Fatalf("Expected clear error, got %v", err)
	}
	var drawErr *DrawError
	if errors.As(err, &drawErr) {
		t.Error("Clear failure must not be reported as a draw error")
	}
	if len(surf.cells) != 0 {
		t.Errorf("Expected no draws after clear failure, got %d", len(surf.cells))
	}
	// Still advanced and filtered
	if f.Len() != 1 || f.Streaks()[0].Y != 11 {
		t.Errorf("Expected one advanced survivor, got %+v", f.Streaks())
	}
}

func TestUpdateFlushFailureWins(t *testing.T) {
	flushErr := errors.New("write failed")
	f := NewField()
	f.Add(Streak{X: 5, Y: 10, Length: 5, Speed: 1, Seed: 1})
	surf := &recordingSurface{
		flushErr: flushErr,
		putErr:   func(x, y int) error { return errors.New("put failed") },
	}

	err := f.Update(surf, 80, 24)
	if !errors.Is(err, flushErr) {
		t.Fatalf("Expected flush error, got %v", err)
	}
	var drawErr *DrawError
	if errors.As(err, &drawErr) {
		t.Error("Flush failure must take precedence over draw errors")
	}
	if f.Streaks()[0].Y != 11 {
		t.Errorf("Expected streak advanced, got Y=%f", f.Streaks()[0].Y)
	}
}

func TestUpdateSteppedWhenSurfaceRefuses(t *testing.T) {
	closed := errors.New("closed")
	f := NewField()
	f.Add(Streak{X: 5, Y: 10, Length: 5, Speed: 1, Seed: 1})
	surf := &recordingSurface{syncErr: closed}

	if err := f.Update(surf, 80, 24); !errors.Is(err, closed) {
		t.Fatalf("Expected surface error, got %v", err)
	}
	if f.Streaks()[0].Y != 11 {
		t.Errorf("Expected exactly one advance, got Y=%f", f.Streaks()[0].Y)
	}
}

func TestSpawnBatch(t *testing.T) {
	tests := []struct {
		width   int
		wantMin int
		wantMax int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{29, 1, 1},
		{80, 1, 2},
		{300, 1, 10},
	}

	for _, tt := range tests {
		rng := vmath.NewFastRand(11)
		f := NewField()
		seen := make(map[int]bool)
		for i := 0; i < 200; i++ {
			before := f.Len()
			n := f.SpawnBatch(rng, tt.width)
			if n < tt.wantMin || n > tt.wantMax {
				t.Fatalf("Width %d: spawned %d, want [%d, %d]", tt.width, n, tt.wantMin, tt.wantMax)
			}
			if f.Len()-before != n {
				t.Fatalf("Width %d: reported %d but field grew by %d", tt.width, n, f.Len()-before)
			}
			seen[n] = true
		}
		if tt.wantMax > 0 && (!seen[tt.wantMin] || !seen[tt.wantMax]) {
			t.Errorf("Width %d: expected both %d and %d observed, got %v", tt.width, tt.wantMin, tt.wantMax, seen)
		}
	}
}

func TestStreaksReturnsCopy(t *testing.T) {
	f := NewField()
	f.Add(Streak{X: 1, Length: 3, Speed: 1})

	snapshot := f.Streaks()
	snapshot[0].X = 50

	if f.Streaks()[0].X != 1 {
		t.Error("Streaks exposed internal storage")
	}
}

func TestSetHue(t *testing.T) {
	f := NewField()
	f.SetHue(0)
	f.Add(Streak{X: 0, Y: 5, Length: 3, Speed: 1.5, Seed: 1})
	surf := &recordingSurface{}

	if err := f.Update(surf, 80, 24); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	for _, c := range surf.cells {
		if c.color.R < c.color.G {
			t.Errorf("Expected red hue, got %v", c.color)
		}
	}
}

func BenchmarkUpdate(b *testing.B) {
	rng := vmath.NewFastRand(1)
	f := NewField()
	surf := &recordingSurface{}
	for b.Loop() {
		f.SpawnBatch(rng, 200)
		_ = f.Update(surf, 200, 60)
	}
}
