package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/lixenwraith/vi-rain/engine"
)

var (
	reportValue = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	reportDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// formatReport renders the bench summary printed after the terminal is restored
func formatReport(s engine.Stats) string {
	return fmt.Sprintf("%s frames in %s. %s fps, %s cells/s %s\n",
		reportValue.Render(humanize.Comma(int64(s.Frames))),
		reportValue.Render(s.Elapsed.Round(time.Millisecond).String()),
		reportValue.Render(humanize.CommafWithDigits(s.FPS(), 1)),
		reportValue.Render(humanize.Comma(int64(s.CellsPerSecond()))),
		reportDim.Render(fmt.Sprintf("at %dx%d", s.Width, s.Height)),
	)
}
