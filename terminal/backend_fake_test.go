package terminal

import (
	"bytes"
	"sync"
	"time"
)

// fakeBackend records output and serves scripted input
type fakeBackend struct {
	mu       sync.Mutex
	writes   [][]byte
	initErr  error
	writeErr error
	inits    int
	finis    int
	width    int
	height   int
	resize   func(width, height int)
	readCh   chan []byte
}

func newFakeBackend(w, h int) *fakeBackend {
	return &fakeBackend{width: w, height: h, readCh: make(chan []byte, 16)}
}

func (b *fakeBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initErr != nil {
		return b.initErr
	}
	b.inits++
	return nil
}

func (b *fakeBackend) Fini() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.finis++
}

func (b *fakeBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *fakeBackend) Write(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.writeErr != nil {
		return b.writeErr
	}
	b.writes = append(b.writes, bytes.Clone(p))
	return nil
}

func (b *fakeBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	select {
	case d := <-b.readCh:
		return d, nil
	case <-stopCh:
		return nil, nil
	case <-time.After(5 * time.Millisecond):
		return nil, nil
	}
}

func (b *fakeBackend) SetResizeHandler(handler func(width, height int)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resize = handler
}

// fireResize simulates SIGWINCH
func (b *fakeBackend) fireResize(w, h int) {
	b.mu.Lock()
	b.width, b.height = w, h
	handler := b.resize
	b.mu.Unlock()
	if handler != nil {
		handler(w, h)
	}
}

func (b *fakeBackend) setWriteErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeErr = err
}

// output returns everything written so far, concatenated
func (b *fakeBackend) output() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(bytes.Join(b.writes, nil))
}

func (b *fakeBackend) writeCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.writes)
}

func (b *fakeBackend) lastWrite() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.writes) == 0 {
		return ""
	}
	return string(b.writes[len(b.writes)-1])
}
