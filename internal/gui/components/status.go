package components

import (
	"fmt"
	"strings"

	"image-analyser/internal/profile"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	statsLabel  *widget.Label
}

func NewStatusBar() *StatusBar {
	statusLabel := widget.NewLabel("Ready")
	statsLabel := widget.NewLabel("")

	return &StatusBar{
		container:   container.NewBorder(nil, nil, statusLabel, statsLabel),
		statusLabel: statusLabel,
		statsLabel:  statsLabel,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) Status() string {
	return sb.statusLabel.Text
}

// SetProfileStats shows one summary per plotted series, in plot order.
func (sb *StatusBar) SetProfileStats(stats []profile.Summary) {
	sb.statsLabel.SetText(FormatProfileStats(stats))
}

func FormatProfileStats(stats []profile.Summary) string {
	parts := make([]string, 0, len(stats))
	for i, s := range stats {
		parts = append(parts, fmt.Sprintf("#%d min %.0f max %.0f mean %.1f sd %.1f",
			i+1, s.Min, s.Max, s.Mean, s.StdDev))
	}
	return strings.Join(parts, " | ")
}
