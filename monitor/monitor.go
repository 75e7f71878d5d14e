// Package monitor owns the capture/compute/render cycle. The previous
// snapshot is explicit state threaded through each cycle, never a
// process-wide global.
package monitor

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/qtraffics/qifstat/display"
	"github.com/qtraffics/qifstat/enhancements/contextlib"
	"github.com/qtraffics/qifstat/ex"
	"github.com/qtraffics/qifstat/history"
	"github.com/qtraffics/qifstat/log"
	"github.com/qtraffics/qifstat/netdev"
	"github.com/qtraffics/qifstat/rate"
	"github.com/qtraffics/qifstat/registry"
	"github.com/qtraffics/qifstat/services"
	"github.com/qtraffics/qifstat/values"
)

const DefaultInterval = time.Second

var _ services.LifeCycle = (*Monitor)(nil)

type Options struct {
	Source      netdev.Source
	Renderer    display.Renderer
	HistoryPath string
	Interval    time.Duration
	Logger      log.Logger
}

type Monitor struct {
	source      netdev.Source
	renderer    display.Renderer
	historyPath string
	interval    time.Duration
	logger      log.Logger

	previous *netdev.Snapshot
}

func New(opts Options) *Monitor {
	return &Monitor{
		source:      values.UseDefaultNil(opts.Source, netdev.Source(netdev.NewProcSource(""))),
		renderer:    values.UseDefaultNil(opts.Renderer, display.Renderer(display.NewPlainRenderer(os.Stdout))),
		historyPath: opts.HistoryPath,
		interval:    values.UseDefault(opts.Interval, DefaultInterval),
		logger:      values.UseDefaultNil(opts.Logger, log.GetDefaultLogger()),
	}
}

func (m *Monitor) Start(ctx context.Context) error {
	if lc, ok := m.renderer.(services.LifeCycle); ok {
		return services.Start(ctx, lc)
	}
	return nil
}

func (m *Monitor) Close() error {
	if lc, ok := m.renderer.(services.LifeCycle); ok {
		return services.Close(lc)
	}
	return nil
}

// RunOnce rates the current counters against the persisted history
// snapshot and rewrites it, the classic ifstat-style invocation.
// Without a usable history the frame shows all zeroes.
func (m *Monitor) RunOnce(ctx context.Context) error {
	ctx = registry.ContextWith(ctx, m.logger)

	var previous *netdev.Snapshot
	if history.Exists(m.historyPath) {
		loaded, err := history.Load(m.historyPath)
		if err != nil {
			return err
		}
		m.logger.Debug("loaded history snapshot",
			log.AttrPath(m.historyPath),
			slog.Int("interfaces", len(loaded.Devices)))
		previous = loaded
	}

	current, err := m.source.Capture(ctx)
	if err != nil {
		return ex.Cause(err, "capture")
	}

	if err := history.Store(m.historyPath, current); err != nil {
		return err
	}

	return m.renderer.Render(rate.Compute(previous, current))
}

// Watch runs the periodic loop: capture, compute against the previous
// in-memory snapshot, render, persist, wait for the next tick. Only
// the first capture is fatal; later failures skip the cycle.
func (m *Monitor) Watch(ctx context.Context) error {
	ctx = registry.ContextWith(ctx, m.logger)

	if err := m.cycle(ctx); err != nil {
		return ex.Cause(err, "first capture")
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-m.renderer.Quit():
			return nil
		case <-ticker.C:
			if contextlib.Done(ctx) {
				return nil
			}
			if err := m.cycle(ctx); err != nil {
				m.logger.Warn("cycle skipped", log.AttrError(err))
			}
		}
	}
}

func (m *Monitor) cycle(ctx context.Context) error {
	current, err := m.source.Capture(ctx)
	if err != nil {
		return err
	}

	if err := m.renderer.Render(rate.Compute(m.previous, current)); err != nil {
		return err
	}

	if m.historyPath != "" {
		if err := history.Store(m.historyPath, current); err != nil {
			m.logger.Warn("history update failed", log.AttrError(err))
		}
	}

	m.previous = current
	return nil
}
