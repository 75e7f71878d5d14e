// Package display renders rate frames, either as plain text written
// once per cycle or as a live terminal table.
package display

import (
	"github.com/qtraffics/qifstat/rate"
)

const (
	// column widths follow the classic ifstat layout
	rateColumnWidth = 30
	minIfnameWidth  = 10

	headerInterface = "Interface"
	headerReceive   = "Receive"
	headerTransmit  = "Transmit"
)

type Renderer interface {
	// Render draws one frame. Frames arrive pre-sorted by interface
	// name, one call per tick.
	Render(samples []rate.Sample) error

	// Quit reports a user-initiated stop, nil when the renderer has
	// no input of its own.
	Quit() <-chan struct{}
}

func ifnameWidth(samples []rate.Sample) int {
	width := minIfnameWidth
	for _, s := range samples {
		if len(s.Name) > width {
			width = len(s.Name)
		}
	}
	return width
}
