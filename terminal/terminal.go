package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/lixenwraith/vi-rain/parameter"
)

var (
	// ErrNotInitialized is returned by paint commands before Init
	ErrNotInitialized = errors.New("terminal not initialized")

	// ErrClosed is returned by paint commands after Fini
	ErrClosed = errors.New("terminal closed")

	// ErrNoFrame is returned by paint commands issued outside SyncUpdate
	ErrNoFrame = errors.New("paint command outside synchronized update")
)

// Terminal provides low-level terminal access
type Terminal interface {
	// Init enters raw mode, alternate screen buffer, hides cursor, disables auto-wrap
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// ColorMode returns the color capability output is encoded for
	ColorMode() ColorMode

	// Clear erases the whole visible area
	Clear() error

	// MoveTo positions the cursor (0-indexed)
	MoveTo(x, y int) error

	// SetForeground sets the color of subsequent characters
	SetForeground(c RGB) error

	// Put writes one character at the cursor
	Put(r rune) error

	// SyncUpdate runs fn and commits every command it issued as one atomic redraw
	// A commit failure takes precedence over the error returned by fn
	SyncUpdate(fn func() error) error

	// PollEvent waits up to timeout for the next input or resize event
	// A non-positive timeout only returns an already pending event
	PollEvent(timeout time.Duration) (Event, bool)

	// PostEvent injects a synthetic event
	PostEvent(Event)
}

// ResizeEvent represents a terminal resize
type ResizeEvent struct {
	Width  int
	Height int
}

// termImpl implements Terminal using the Backend interface
type termImpl struct {
	backend Backend

	frame       *frameBuffer
	input       *inputReader
	resizeCh    chan ResizeEvent
	syntheticCh chan Event

	mu          sync.Mutex
	initialized bool
	finalized   bool

	// Mode flags; each toggle is idempotent and Fini reverts whichever are set
	raw          bool
	alternate    bool
	cursorHidden bool
	wrapDisabled bool
}

// New creates a new Terminal instance on stdin/stdout
func New(colorMode ...ColorMode) Terminal {
	c := DetectColorMode()
	if len(colorMode) > 0 {
		c = colorMode[0]
	}
	return newWithBackend(newBackend(), c)
}

func newWithBackend(b Backend, c ColorMode) *termImpl {
	return &termImpl{
		backend:     b,
		frame:       newFrameBuffer(c, parameter.OutputBufferSize),
		syntheticCh: make(chan Event, 16),
		resizeCh:    make(chan ResizeEvent, 1),
	}
}

// Init enters raw mode and sets up terminal
func (t *termImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finalized {
		return ErrClosed
	}
	if t.initialized {
		return nil
	}

	if err := t.makeRaw(); err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}

	t.input = newInputReader(t.backend)

	// Non-blocking send; a stale pending size is replaced by the latest
	t.backend.SetResizeHandler(func(w, h int) {
		ev := ResizeEvent{Width: w, Height: h}
		select {
		case t.resizeCh <- ev:
		default:
			select {
			case <-t.resizeCh:
			default:
			}
			select {
			case t.resizeCh <- ev:
			default:
			}
		}
	})

	var err error
	for _, step := range []func() error{t.enterAlternate, t.hideCursor, t.disableWrap} {
		if err = step(); err != nil {
			break
		}
	}
	if err == nil {
		err = t.writeRaw(csiClear)
	}
	if err != nil {
		t.restore()
		return fmt.Errorf("terminal setup: %w", err)
	}

	t.input.start()

	t.initialized = true
	return nil
}

// Fini restores terminal state
func (t *termImpl) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finalized {
		return
	}
	t.finalized = true

	if t.input != nil {
		t.input.stop()
	}
	t.restore()
}

// restore reverts every mode toggle that is set; errors are ignored (best-effort teardown)
func (t *termImpl) restore() {
	_ = t.showCursor()
	_ = t.leaveAlternate()
	// Re-enable Auto-Wrap AFTER exiting alt screen to ensure the main buffer has wrap enabled
	_ = t.enableWrap()
	_ = t.writeRaw(csiSGR0)
	t.makeCooked()
}

func (t *termImpl) makeRaw() error {
	if t.raw {
		return nil
	}
	if err := t.backend.Init(); err != nil {
		return err
	}
	t.raw = true
	return nil
}

func (t *termImpl) makeCooked() {
	if !t.raw {
		return
	}
	t.backend.Fini()
	t.raw = false
}

func (t *termImpl) enterAlternate() error {
	return t.toggle(&t.alternate, true, csiAltScreenEnter)
}

func (t *termImpl) leaveAlternate() error {
	return t.toggle(&t.alternate, false, csiAltScreenExit)
}

func (t *termImpl) hideCursor() error {
	return t.toggle(&t.cursorHidden, true, csiCursorHide)
}

func (t *termImpl) showCursor() error {
	return t.toggle(&t.cursorHidden, false, csiCursorShow)
}

func (t *termImpl) disableWrap() error {
	return t.toggle(&t.wrapDisabled, true, csiAutoWrapOff)
}

func (t *termImpl) enableWrap() error {
	return t.toggle(&t.wrapDisabled, false, csiAutoWrapOn)
}

// toggle writes seq only when flag changes; the flag is updated only on success
func (t *termImpl) toggle(flag *bool, want bool, seq []byte) error {
	if *flag == want {
		return nil
	}
	if err := t.writeRaw(seq); err != nil {
		return err
	}
	*flag = want
	return nil
}

// Size returns current terminal dimensions
func (t *termImpl) Size() (int, int) {
	return t.backend.Size()
}

// ColorMode returns the color capability output is encoded for
func (t *termImpl) ColorMode() ColorMode {
	return t.frame.colorMode
}

// paintable reports whether a paint command may be queued
// Only the render goroutine touches the frame buffer, so no lock is taken
func (t *termImpl) paintable() error {
	if !t.frame.open {
		return ErrNoFrame
	}
	return nil
}

func (t *termImpl) Clear() error {
	if err := t.paintable(); err != nil {
		return err
	}
	t.frame.clear()
	return nil
}

func (t *termImpl) MoveTo(x, y int) error {
	if err := t.paintable(); err != nil {
		return err
	}
	t.frame.moveTo(x, y)
	return nil
}

func (t *termImpl) SetForeground(c RGB) error {
	if err := t.paintable(); err != nil {
		return err
	}
	t.frame.setFg(c)
	return nil
}

func (t *termImpl) Put(r rune) error {
	if err := t.paintable(); err != nil {
		return err
	}
	t.frame.put(r)
	return nil
}

// SyncUpdate buffers everything fn paints and writes it in one backend write
// bracketed by DEC mode 2026, so no partially drawn frame is ever visible
func (t *termImpl) SyncUpdate(fn func() error) error {
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

	t.frame.begin()
	fnErr := fn()
	data := t.frame.end()

	t.mu.Lock()
	defer t.mu.Unlock()

	// Fini may have run while fn was painting; drop the frame rather than write past teardown
	if t.finalized {
		return ErrClosed
	}
	if err := t.backend.Write(data); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}
	return fnErr
}

// PollEvent waits up to timeout for the next event
func (t *termImpl) PollEvent(timeout time.Duration) (Event, bool) {
	// Synthetic events first
	select {
	case ev := <-t.syntheticCh:
		return ev, true
	default:
	}

	var inputCh <-chan Event
	if t.input != nil {
		inputCh = t.input.events()
	}

	if timeout <= 0 {
		select {
		case ev := <-t.syntheticCh:
			return ev, true
		case ev := <-inputCh:
			return ev, true
		case re := <-t.resizeCh:
			return Event{Type: EventResize, Width: re.Width, Height: re.Height}, true
		default:
			return Event{}, false
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-t.syntheticCh:
		return ev, true
	case ev := <-inputCh:
		return ev, true
	case re := <-t.resizeCh:
		return Event{Type: EventResize, Width: re.Width, Height: re.Height}, true
	case <-timer.C:
		return Event{}, false
	}
}

// PostEvent injects a synthetic event
func (t *termImpl) PostEvent(ev Event) {
	select {
	case t.syntheticCh <- ev:
	default:
		// Channel full, drop
	}
}

// writeRaw writes raw bytes to output
func (t *termImpl) writeRaw(data []byte) error {
	return t.backend.Write(data)
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiSyncEnd)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Attempt raw mode reset via termios - escape sequences alone don't restore it
	// This is best-effort; ignore errors in crash context
	resetTerminalMode()
}
