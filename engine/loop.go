package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-rain/clock"
	"github.com/lixenwraith/vi-rain/parameter"
	"github.com/lixenwraith/vi-rain/rain"
	"github.com/lixenwraith/vi-rain/terminal"
	"github.com/lixenwraith/vi-rain/vmath"
)

// Display is the terminal the loop paints into and reads events from
type Display interface {
	rain.Surface
	Size() (width, height int)
	PollEvent(timeout time.Duration) (terminal.Event, bool)
}

// Config controls a Loop
type Config struct {
	// Bench disables frame throttling
	Bench bool

	// Seed for spawning; zero seeds from the wall clock
	Seed uint64

	// Logger receives lifecycle and draw failure messages; nil discards them
	Logger *log.Logger

	// TimeProvider drives the frame timer; nil uses the system clock
	TimeProvider clock.TimeProvider
}

// Loop drives the rain: paint, poll input within the frame budget, spawn, tick
// Every painted frame is counted by exactly one timer tick; bench mode skips instead of sleeping
// Run must be called once, from a single goroutine
type Loop struct {
	display  Display
	field    *rain.Field
	timer    *clock.Timer
	rng      *vmath.FastRand
	logger   *log.Logger
	provider clock.TimeProvider
	bench    bool

	width, height int
}

// NewLoop creates a loop painting into d
func NewLoop(d Display, cfg Config) *Loop {
	provider := cfg.TimeProvider
	if provider == nil {
		provider = clock.NewMonotonicTimeProvider()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	interval := clock.FramerateInterval(parameter.FrameRate)
	if cfg.Bench {
		interval = 0
	}

	return &Loop{
		display:  d,
		field:    rain.NewField(),
		timer:    clock.NewTimerWithProvider(interval, provider),
		rng:      vmath.NewFastRand(seed),
		logger:   logger,
		provider: provider,
		bench:    cfg.Bench,
	}
}

// Field exposes the simulated streaks
func (l *Loop) Field() *rain.Field {
	return l.field
}

// Run loops until a quit key, context cancellation or a frame-level paint failure
// Quit and cancellation return a nil error; Stats are valid on every path
func (l *Loop) Run(ctx context.Context) (Stats, error) {
	start := l.provider.Now()
	l.width, l.height = l.display.Size()
	l.logger.Info("rain started", "width", l.width, "height", l.height, "bench", l.bench,
		"interval", l.timer.Interval())

	for {
		if err := ctx.Err(); err != nil {
			l.logger.Info("rain stopped", "reason", context.Cause(ctx), "frames", l.timer.Ticks())
			return l.stats(start), nil
		}

		if err := l.field.Update(l.display, l.width, l.height); err != nil {
			var drawErr *rain.DrawError
			if !errors.As(err, &drawErr) {
				l.logger.Error("frame failed", "frame", l.timer.Ticks(), "err", err)
				return l.stats(start), fmt.Errorf("paint frame: %w", err)
			}
			l.logger.Warn("draw failed", "frame", l.timer.Ticks(), "streaks", drawErr.Failed, "err", drawErr.Err)
		}

		quit, err := l.pollInput()
		if err != nil {
			l.timer.Skip()
			return l.stats(start), err
		}
		if quit {
			// The painted frame still counts; no reason to wait out its budget
			l.timer.Skip()
			l.logger.Info("rain stopped", "reason", "quit key", "frames", l.timer.Ticks())
			return l.stats(start), nil
		}

		l.field.SpawnBatch(l.rng, l.width)
		if l.bench {
			l.timer.Skip()
		} else {
			l.timer.Tick()
		}
	}
}

// pollInput drains events for the rest of the frame budget, always polling at least once
func (l *Loop) pollInput() (bool, error) {
	for {
		left := l.timer.Left()
		ev, ok := l.display.PollEvent(min(left, parameter.InputPollSlice))
		if ok {
			quit, err := l.handleEvent(ev)
			if quit || err != nil {
				return quit, err
			}
			continue
		}
		if left <= 0 {
			return false, nil
		}
	}
}

func (l *Loop) handleEvent(ev terminal.Event) (bool, error) {
	switch ev.Type {
	case terminal.EventResize:
		if ev.Width != l.width || ev.Height != l.height {
			l.logger.Debug("resize", "width", ev.Width, "height", ev.Height)
		}
		l.width, l.height = ev.Width, ev.Height
	case terminal.EventKey:
		return ev.IsQuit(), nil
	case terminal.EventClosed:
		return true, nil
	case terminal.EventError:
		return false, fmt.Errorf("read input: %w", ev.Err)
	}
	return false, nil
}

func (l *Loop) stats(start time.Time) Stats {
	return Stats{
		Frames:  l.timer.Ticks(),
		Cells:   l.field.Cells(),
		Elapsed: l.provider.Now().Sub(start),
		Width:   l.width,
		Height:  l.height,
	}
}
