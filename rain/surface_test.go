package rain

import (
	"github.com/lixenwraith/vi-rain/terminal"
)

// cell is one Put recorded with the cursor and color in effect
type cell struct {
	x, y  int
	color terminal.RGB
	r     rune
}

// recordingSurface captures paint commands and can inject failures
type recordingSurface struct {
	syncs  int
	clears int
	cells  []cell

	x, y  int
	color terminal.RGB

	clearErr error
	flushErr error
	syncErr  error                // Returned without running fn
	putErr   func(x, y int) error // Consulted on every Put
}

func (s *recordingSurface) Clear() error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.clears++
	s.cells = s.cells[:0]
	return nil
}

func (s *recordingSurface) MoveTo(x, y int) error {
	s.x, s.y = x, y
	return nil
}

func (s *recordingSurface) SetForeground(c terminal.RGB) error {
	s.color = c
	return nil
}

func (s *recordingSurface) Put(r rune) error {
	if s.putErr != nil {
		if err := s.putErr(s.x, s.y); err != nil {
			return err
		}
	}
	s.cells = append(s.cells, cell{x: s.x, y: s.y, color: s.color, r: r})
	s.x++
	return nil
}

func (s *recordingSurface) SyncUpdate(fn func() error) error {
	if s.syncErr != nil {
		return s.syncErr
	}
	s.syncs++
	err := fn()
	if s.flushErr != nil {
		return s.flushErr
	}
	return err
}

// at returns the cell recorded at (x, y)
func (s *recordingSurface) at(x, y int) (cell, bool) {
	for _, c := range s.cells {
		if c.x == x && c.y == y {
			return c, true
		}
	}
	return cell{}, false
}
