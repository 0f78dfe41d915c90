package terminal

import (
	"bytes"
)

// frameBuffer accumulates the commands of one frame so they reach the backend in a single write
// Not safe for concurrent use; owned by the render goroutine
type frameBuffer struct {
	buf       bytes.Buffer
	colorMode ColorMode

	// Style state for coalescing
	lastFg    RGB
	lastValid bool

	open bool
}

// newFrameBuffer creates a frame buffer with the given initial capacity
func newFrameBuffer(colorMode ColorMode, capacity int) *frameBuffer {
	f := &frameBuffer{colorMode: colorMode}
	f.buf.Grow(capacity)
	return f
}

// begin discards anything pending and opens a synchronized update
func (f *frameBuffer) begin() {
	f.buf.Reset()
	f.buf.Write(csiSyncBegin)
	f.lastValid = false
	f.open = true
}

// end closes the synchronized update and returns the frame bytes
// The slice is valid until the next begin
func (f *frameBuffer) end() []byte {
	f.buf.Write(csiSGR0)
	f.buf.Write(csiSyncEnd)
	f.open = false
	return f.buf.Bytes()
}

// clear erases the screen and homes the cursor
func (f *frameBuffer) clear() {
	f.buf.Write(csiSGR0)
	f.buf.Write(csiClear)
	f.lastValid = false
}

// moveTo positions the cursor (0-indexed)
func (f *frameBuffer) moveTo(x, y int) {
	writeCursorPos(&f.buf, x, y)
}

// setFg emits a foreground sequence only when the color changed
func (f *frameBuffer) setFg(c RGB) {
	if f.lastValid && c == f.lastFg {
		return
	}
	writeFg(&f.buf, c, f.colorMode)
	f.lastFg = c
	f.lastValid = true
}

// put writes one character at the cursor
func (f *frameBuffer) put(r rune) {
	if r < 0x80 {
		f.buf.WriteByte(byte(r))
	} else {
		f.buf.WriteRune(r)
	}
}
