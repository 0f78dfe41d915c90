//go:build !unix

package terminal

import "errors"

var errUnsupported = errors.New("native terminal backend requires a unix platform; use --backend tcell")

// unsupportedBackend fails Init so callers fall back to the tcell backend
type unsupportedBackend struct{}

func newBackend() Backend { return unsupportedBackend{} }

func (unsupportedBackend) Init() error { return errUnsupported }

func (unsupportedBackend) Fini() {}

func (unsupportedBackend) Size() (int, int) { return 0, 0 }

func (unsupportedBackend) Write(p []byte) error { return errUnsupported }

func (unsupportedBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	return nil, errUnsupported
}

func (unsupportedBackend) SetResizeHandler(func(width, height int)) {}

func resetTerminalMode() {}
