package display

import (
	"context"
	"fmt"
	"sync"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/qtraffics/qifstat/ex"
	"github.com/qtraffics/qifstat/rate"
	"github.com/qtraffics/qifstat/services"
)

var (
	_ Renderer           = (*LiveRenderer)(nil)
	_ services.LifeCycle = (*LiveRenderer)(nil)
)

// LiveRenderer redraws a full-screen termui table each tick. The user
// quits with q or Ctrl-C.
type LiveRenderer struct {
	mu     sync.Mutex
	table  *widgets.Table
	quit   chan struct{}
	closed chan struct{}
}

func NewLiveRenderer() *LiveRenderer {
	return &LiveRenderer{
		quit:   make(chan struct{}),
		closed: make(chan struct{}),
	}
}

func (r *LiveRenderer) Start(ctx context.Context) error {
	if err := ui.Init(); err != nil {
		return ex.Cause(err, "init terminal ui")
	}

	table := widgets.NewTable()
	table.Title = " qifstat "
	table.RowSeparator = false
	table.TextStyle = ui.NewStyle(ui.ColorWhite)
	table.BorderStyle.Fg = ui.ColorGreen

	width, height := ui.TerminalDimensions()
	table.SetRect(0, 0, width, height)

	r.table = table
	go r.pollEvents()
	return nil
}

func (r *LiveRenderer) pollEvents() {
	events := ui.PollEvents()
	for {
		select {
		case <-r.closed:
			return
		case e := <-events:
			switch e.Type {
			case ui.KeyboardEvent:
				if e.ID == "q" || e.ID == "<C-c>" {
					close(r.quit)
					return
				}
			case ui.ResizeEvent:
				payload := e.Payload.(ui.Resize)
				r.mu.Lock()
				r.table.SetRect(0, 0, payload.Width, payload.Height)
				ui.Clear()
				ui.Render(r.table)
				r.mu.Unlock()
			}
		}
	}
}

func (r *LiveRenderer) Render(samples []rate.Sample) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := [][]string{{headerInterface, headerReceive, headerTransmit}}
	for _, sample := range samples {
		rows = append(rows, []string{
			sample.Name,
			rate.FormatRate(sample.RxBytesPerSec),
			rate.FormatRate(sample.TxBytesPerSec),
		})
	}

	rxTotal, txTotal := rate.Total(samples)
	rows = append(rows, []string{
		fmt.Sprintf("interfaces: %d", len(samples)),
		"▼ " + rate.FormatRate(rxTotal),
		"▲ " + rate.FormatRate(txTotal),
	})

	r.table.Rows = rows
	ui.Render(r.table)
	return nil
}

func (r *LiveRenderer) Quit() <-chan struct{} {
	return r.quit
}

func (r *LiveRenderer) Close() error {
	select {
	case <-r.closed:
		return nil
	default:
		close(r.closed)
	}
	ui.Close()
	return nil
}
