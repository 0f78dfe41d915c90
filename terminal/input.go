package terminal

import (
	"sync"
	"time"
	"unicode/utf8"

	"github.com/lixenwraith/vi-rain/parameter"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey EventType = iota
	EventResize
	EventError  // Read error
	EventClosed // Input closed
)

// Event represents a terminal input event
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier
	Width     int   // For EventResize
	Height    int   // For EventResize
	Err       error // For EventError
}

// IsQuit reports whether the event is one of the exit keys: Ctrl+C, Esc, q
func (ev Event) IsQuit() bool {
	if ev.Type != EventKey {
		return false
	}
	switch ev.Key {
	case KeyCtrlC:
		return true
	case KeyEscape:
		return ev.Modifiers&ModAlt == 0
	case KeyRune:
		return ev.Rune == 'q' && ev.Modifiers == ModNone
	}
	return false
}

// inputReader handles raw stdin parsing
type inputReader struct {
	backend Backend
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool

	// Persistent buffer for stream assembly; partial sequences wait here for the next read
	buf []byte
}

// newInputReader creates a new input reader
func newInputReader(backend Backend) *inputReader {
	return &inputReader{
		backend: backend,
		eventCh: make(chan Event, parameter.EventQueueSize),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		buf:     make([]byte, 0, 256),
	}
}

// start begins reading input in a goroutine
func (r *inputReader) start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.readLoop()
}

// stop signals the reader to stop
func (r *inputReader) stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	// Wait with timeout - don't block forever if read is stuck
	select {
	case <-r.doneCh:
	case <-time.After(200 * time.Millisecond):
	}
}

// events returns the event channel
func (r *inputReader) events() <-chan Event {
	return r.eventCh
}

// readLoop is the main input reading goroutine
func (r *inputReader) readLoop() {
	defer close(r.doneCh)

	defer func() {
		HandleCrash("INPUT READER", recover())
	}()

	for {
		data, err := r.backend.Read(r.stopCh)
		if err != nil {
			r.sendEvent(Event{Type: EventError, Err: err})
			return
		}

		if len(data) == 0 {
			// Poll timeout: a lone ESC still buffered is a real Escape key
			r.flushPendingEscape()
			select {
			case <-r.stopCh:
				r.sendEvent(Event{Type: EventClosed})
				return
			default:
				continue
			}
		}

		r.buf = append(r.buf, data...)
		consumed := r.parseInput(r.buf)

		// Compact buffer
		if consumed > 0 {
			if consumed >= len(r.buf) {
				r.buf = r.buf[:0]
			} else {
				copy(r.buf, r.buf[consumed:])
				r.buf = r.buf[:len(r.buf)-consumed]
			}
		}
	}
}

// flushPendingEscape emits a standalone ESC left in the buffer
func (r *inputReader) flushPendingEscape() {
	if len(r.buf) == 1 && r.buf[0] == 0x1b {
		r.sendEvent(Event{Type: EventKey, Key: KeyEscape})
		r.buf = r.buf[:0]
	}
}

// parseInput parses raw bytes into events and returns bytes consumed (stop on incomplete sequence)
func (r *inputReader) parseInput(data []byte) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		// Fast path: printable ASCII
		if b >= 0x20 && b < 0x7f {
			r.sendEvent(Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++
			continue
		}

		// Escape sequence
		if b == 0x1b {
			// Need at least 2 bytes to determine sequence type
			if i+1 >= n {
				return i
			}

			consumed, ev := r.parseEscape(data[i:])
			if consumed == 0 {
				return i
			}

			// Only emit if not a swallowed unknown sequence
			if ev.Key != KeyNone || ev.Type != EventKey {
				r.sendEvent(ev)
			}
			i += consumed
			continue
		}

		// Control characters
		if b < 0x20 {
			r.sendEvent(Event{Type: EventKey, Key: ctrlKeys[b]})
			i++
			continue
		}

		// DEL
		if b == 0x7f {
			r.sendEvent(Event{Type: EventKey, Key: KeyBackspace})
			i++
			continue
		}

		// UTF-8 multibyte
		if !utf8.FullRune(data[i:]) {
			return i
		}
		rn, size := utf8.DecodeRune(data[i:])
		if rn != utf8.RuneError || size > 1 {
			r.sendEvent(Event{Type: EventKey, Key: KeyRune, Rune: rn})
		}
		i += size
	}
	return i
}

// parseEscape attempts to parse an escape sequence, returns 0 on incomplete
func (r *inputReader) parseEscape(data []byte) (int, Event) {
	if len(data) < 2 {
		return 0, Event{}
	}

	// ESC ESC -> Alt+Escape
	if data[1] == 0x1b {
		return 2, Event{Type: EventKey, Key: KeyEscape, Modifiers: ModAlt}
	}

	if data[1] == '[' {
		return r.parseCSI(data)
	}
	if data[1] == 'O' {
		return r.parseSS3(data)
	}

	// Alt+Control character (ESC + 0x00-0x1F)
	if data[1] < 0x20 {
		return 2, Event{Type: EventKey, Key: ctrlKeys[data[1]], Modifiers: ModAlt}
	}

	// Alt+printable
	if data[1] < 0x7f {
		return 2, Event{Type: EventKey, Key: KeyRune, Rune: rune(data[1]), Modifiers: ModAlt}
	}

	// ESC followed by a non-ASCII byte: treat ESC as standalone
	return 1, Event{Type: EventKey, Key: KeyEscape}
}

// parseCSI parses CSI sequence without allocation
func (r *inputReader) parseCSI(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}

	maxScan := min(len(data), 32)
	end := 2
	for end < maxScan {
		b := data[end]
		end++
		if b >= 0x40 && b <= 0x7e {
			// Final byte
			if key, mod, ok := lookupCSI(data[2:end]); ok {
				return end, Event{Type: EventKey, Key: key, Modifiers: mod}
			}
			// Unknown but valid CSI syntax - consume and swallow
			return end, Event{Type: EventKey, Key: KeyNone}
		}
		if b < 0x20 || b > 0x7e {
			// Malformed; drop the introducer only
			return 2, Event{Type: EventKey, Key: KeyNone}
		}
	}

	if len(data) >= 32 {
		// Runaway sequence; discard what was scanned
		return maxScan, Event{Type: EventKey, Key: KeyNone}
	}
	return 0, Event{}
}

// parseSS3 parses SS3 sequence, returns length even for unknown sequences
func (r *inputReader) parseSS3(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}
	if key, ok := ss3Keys[data[2]]; ok {
		return 3, Event{Type: EventKey, Key: key}
	}
	return 3, Event{Type: EventKey, Key: KeyNone}
}

// sendEvent sends an event to the channel, non-blocking
func (r *inputReader) sendEvent(ev Event) {
	select {
	case r.eventCh <- ev:
	default:
		// Channel full, drop event
	}
}
