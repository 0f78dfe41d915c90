package parameter

import "time"

// Loop Timing
const (
	// FrameRate is the target frames per second in normal (throttled) mode
	FrameRate = 30

	// InputPollSlice caps a single input poll so resize and quit stay responsive within one frame
	InputPollSlice = 10 * time.Millisecond
)

// Terminal Fallbacks
const (
	// DefaultWidth is used when the terminal size cannot be queried
	DefaultWidth = 80

	// DefaultHeight is used when the terminal size cannot be queried
	DefaultHeight = 24

	// OutputBufferSize is the initial capacity of the per-frame command buffer (128KB)
	OutputBufferSize = 131072

	// EventQueueSize is the capacity of the input event channel
	EventQueueSize = 256
)

// Debug Logging
const (
	// LogDir holds the debug log, relative to the working directory
	LogDir = "logs"

	// LogFileName is the debug log file inside LogDir
	LogFileName = "vi-rain.log"

	// MaxLogSize rotates the debug log to a timestamped file once exceeded (10MB)
	MaxLogSize = 10 * 1024 * 1024
)
