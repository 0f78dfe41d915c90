package terminal

// Backend abstracts platform-specific terminal operations.
// termImpl layers screen modes and frame output on top of it; tests substitute a fake.
type Backend interface {
	// Lifecycle
	// Init enters raw input mode; Fini restores the saved mode and stops the resize watcher.
	Init() error
	Fini()

	// Capabilities
	Size() (width, height int)

	// I/O
	// Write writes raw bytes to the terminal output.
	Write(p []byte) error

	// Read blocks until input is available, the stop channel is closed, or an error occurs.
	// A nil slice with nil error means a poll timeout.
	Read(stopCh <-chan struct{}) ([]byte, error)

	// Callbacks
	// SetResizeHandler registers a callback for terminal resize events.
	SetResizeHandler(handler func(width, height int))
}
