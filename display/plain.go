package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/qtraffics/qifstat/ex"
	"github.com/qtraffics/qifstat/rate"
)

var _ Renderer = (*PlainRenderer)(nil)

// PlainRenderer writes one table per frame to a writer. The header is
// colored when the writer is a terminal so piped output stays clean.
type PlainRenderer struct {
	writer io.Writer
	color  bool

	frames int
}

func NewPlainRenderer(w io.Writer) *PlainRenderer {
	return &PlainRenderer{writer: w, color: writerIsTerminal(w)}
}

func (r *PlainRenderer) Render(samples []rate.Sample) error {
	var builder strings.Builder

	// a blank line between consecutive frames in watch mode
	if r.frames > 0 {
		builder.WriteByte('\n')
	}
	r.frames++

	nameWidth := ifnameWidth(samples)
	builder.WriteString(r.header(nameWidth))
	builder.WriteByte('\n')
	for _, sample := range samples {
		fmt.Fprintf(&builder, "%*s %*s %*s\n",
			nameWidth, sample.Name,
			rateColumnWidth, rate.FormatRate(sample.RxBytesPerSec),
			rateColumnWidth, rate.FormatRate(sample.TxBytesPerSec))
	}

	if _, err := io.WriteString(r.writer, builder.String()); err != nil {
		return ex.Cause(err, "render frame")
	}
	return nil
}

func (r *PlainRenderer) Quit() <-chan struct{} {
	return nil
}

func (r *PlainRenderer) header(nameWidth int) string {
	name := fmt.Sprintf("%*s", nameWidth, headerInterface)
	receive := center(headerReceive, rateColumnWidth)
	transmit := center(headerTransmit, rateColumnWidth)
	if r.color {
		return fmt.Sprintf("%s %s %s",
			aurora.Bold(name), aurora.Bold(receive), aurora.Bold(transmit))
	}
	return fmt.Sprintf("%s %s %s", name, receive, transmit)
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
