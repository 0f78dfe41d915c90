package terminal

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-rain/parameter"
)

// tcellTerm implements Terminal on a tcell.Screen
// tcell owns raw mode, the alternate screen and wrap handling; Show commits the frame
type tcellTerm struct {
	screen    tcell.Screen
	colorMode ColorMode

	// Paint state, owned by the render goroutine
	style tcell.Style
	x, y  int
	open  bool

	eventCh     chan Event
	syntheticCh chan Event
	stopCh      chan struct{}
	doneCh      chan struct{}

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewTcell creates a Terminal backed by tcell
func NewTcell(colorMode ...ColorMode) (Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcell screen: %w", err)
	}
	c := DetectColorMode()
	if len(colorMode) > 0 {
		c = colorMode[0]
	}
	return newTcellTerm(screen, c), nil
}

func newTcellTerm(screen tcell.Screen, c ColorMode) *tcellTerm {
	return &tcellTerm{
		screen:      screen,
		colorMode:   c,
		style:       tcell.StyleDefault,
		eventCh:     make(chan Event, parameter.EventQueueSize),
		syntheticCh: make(chan Event, 16),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

func (t *tcellTerm) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finalized {
		return ErrClosed
	}
	if t.initialized {
		return nil
	}

	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("tcell init: %w", err)
	}
	t.screen.HideCursor()
	t.screen.Clear()

	go t.pollLoop()

	t.initialized = true
	return nil
}

func (t *tcellTerm) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finalized {
		return
	}
	t.finalized = true

	if !t.initialized {
		return
	}
	close(t.stopCh)
	// Fini makes PollEvent return nil, ending pollLoop
	t.screen.Fini()
	select {
	case <-t.doneCh:
	case <-time.After(200 * time.Millisecond):
	}
}

// pollLoop converts tcell events until the screen is finalized
func (t *tcellTerm) pollLoop() {
	defer close(t.doneCh)

	defer func() {
		HandleCrash("TCELL POLL", recover())
	}()

	for {
		tev := t.screen.PollEvent()
		if tev == nil {
			return
		}
		ev, ok := convertTcellEvent(tev)
		if !ok {
			continue
		}
		select {
		case t.eventCh <- ev:
		case <-t.stopCh:
			return
		}
	}
}

// convertTcellEvent maps the tcell events the loop cares about
func convertTcellEvent(tev tcell.Event) (Event, bool) {
	switch ev := tev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		return Event{Type: EventResize, Width: w, Height: h}, true
	case *tcell.EventKey:
		out := Event{Type: EventKey, Modifiers: convertTcellMod(ev.Modifiers())}
		switch ev.Key() {
		case tcell.KeyRune:
			out.Key = KeyRune
			out.Rune = ev.Rune()
			// Some tcell versions report control chords as a rune with ModCtrl
			if out.Modifiers&ModCtrl != 0 && (out.Rune == 'c' || out.Rune == 'C') {
				out = Event{Type: EventKey, Key: KeyCtrlC, Modifiers: out.Modifiers &^ ModCtrl}
			}
		case tcell.KeyEscape:
			out.Key = KeyEscape
		case tcell.KeyCtrlC:
			out.Key = KeyCtrlC
			out.Modifiers &^= ModCtrl
		case tcell.KeyEnter:
			out.Key = KeyEnter
		case tcell.KeyTab:
			out.Key = KeyTab
		case tcell.KeyUp:
			out.Key = KeyUp
		case tcell.KeyDown:
			out.Key = KeyDown
		case tcell.KeyLeft:
			out.Key = KeyLeft
		case tcell.KeyRight:
			out.Key = KeyRight
		default:
			return Event{}, false
		}
		return out, true
	}
	return Event{}, false
}

func convertTcellMod(m tcell.ModMask) Modifier {
	var mod Modifier
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if m&tcell.ModAlt != 0 {
		mod |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	return mod
}

func (t *tcellTerm) Size() (int, int) {
	return t.screen.Size()
}

func (t *tcellTerm) ColorMode() ColorMode {
	return t.colorMode
}

func (t *tcellTerm) Clear() error {
	if !t.open {
		return ErrNoFrame
	}
	t.screen.Clear()
	return nil
}

func (t *tcellTerm) MoveTo(x, y int) error {
	if !t.open {
		return ErrNoFrame
	}
	t.x, t.y = x, y
	return nil
}

func (t *tcellTerm) SetForeground(c RGB) error {
	if !t.open {
		return ErrNoFrame
	}
	var color tcell.Color
	if t.colorMode == ColorModeTrueColor {
		color = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	} else {
		color = tcell.PaletteColor(int(RGBTo256(c)))
	}
	t.style = tcell.StyleDefault.Foreground(color)
	return nil
}

func (t *tcellTerm) Put(r rune) error {
	if !t.open {
		return ErrNoFrame
	}
	t.screen.SetContent(t.x, t.y, r, nil, t.style)
	t.x++
	return nil
}

// SyncUpdate runs fn against tcell's back buffer and commits it with a single Show
func (t *tcellTerm) SyncUpdate(fn func() error) error {
	t.mu.Lock()
	switch {
	case t.finalized:
		t.mu.Unlock()
		return ErrClosed
	case !t.initialized:
		t.mu.Unlock()
		return ErrNotInitialized
	}
	t.mu.Unlock()

	t.open = true
	err := fn()
	t.open = false

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.finalized {
		return ErrClosed
	}
	t.screen.Show()
	return err
}

func (t *tcellTerm) PollEvent(timeout time.Duration) (Event, bool) {
	select {
	case ev := <-t.syntheticCh:
		return ev, true
	default:
	}

	if timeout <= 0 {
		select {
		case ev := <-t.syntheticCh:
			return ev, true
		case ev := <-t.eventCh:
			return ev, true
		default:
			return Event{}, false
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-t.syntheticCh:
		return ev, true
	case ev := <-t.eventCh:
		return ev, true
	case <-timer.C:
		return Event{}, false
	}
}

func (t *tcellTerm) PostEvent(ev Event) {
	select {
	case t.syntheticCh <- ev:
	default:
	}
}
