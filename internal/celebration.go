package internal

import (
	"github.com/sirupsen/logrus"
)

// CelebrationState exposes the state of the celebration display to the browser
type CelebrationState interface {
	Visible() bool
	Cycles() uint64
}

// LogPlayer is the celebrate.Player of the kiosk. The browser polls the display state and plays the clip itself, so
// showing and hiding only needs to be logged.
type LogPlayer struct {
	Logger *logrus.Entry
}

// Show implements celebrate.Player
func (p LogPlayer) Show() {
	p.Logger.Debug("Celebration shown")
}

// Hide implements celebrate.Player
func (p LogPlayer) Hide() {
	p.Logger.Debug("Celebration hidden")
}
