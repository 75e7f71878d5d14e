package monitor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qtraffics/qifstat/history"
	"github.com/qtraffics/qifstat/log"
	"github.com/qtraffics/qifstat/netdev"
	"github.com/qtraffics/qifstat/rate"
)

type scriptedSource struct {
	snapshots []*netdev.Snapshot
	errs      []error
	calls     int
}

func (s *scriptedSource) Capture(ctx context.Context) (*netdev.Snapshot, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i >= len(s.snapshots) {
		i = len(s.snapshots) - 1
	}
	return s.snapshots[i], nil
}

type frameRecorder struct {
	frames    [][]rate.Sample
	quit      chan struct{}
	quitAfter int
}

func (r *frameRecorder) Render(samples []rate.Sample) error {
	if r.quit != nil {
		select {
		case <-r.quit:
			// a tick may still race the quit signal
			return errors.New("render after quit")
		default:
		}
	}
	r.frames = append(r.frames, samples)
	if r.quitAfter > 0 && len(r.frames) >= r.quitAfter {
		close(r.quit)
		r.quitAfter = 0
	}
	return nil
}

func (r *frameRecorder) Quit() <-chan struct{} {
	return r.quit
}

func snapshotAt(t time.Time, devices map[string]netdev.DeviceStats) *netdev.Snapshot {
	return &netdev.Snapshot{Time: t, Devices: devices}
}

func TestRunOnceFirstInvocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	base := time.Now()

	source := &scriptedSource{snapshots: []*netdev.Snapshot{
		snapshotAt(base, map[string]netdev.DeviceStats{
			"eth0": {RxBytes: 1000, TxBytes: 2000},
		}),
	}}
	recorder := &frameRecorder{}

	m := New(Options{
		Source:      source,
		Renderer:    recorder,
		HistoryPath: path,
		Logger:      log.NOP,
	})
	require.NoError(t, m.RunOnce(context.Background()))

	// no history yet: one all-zero frame, history file created
	require.Len(t, recorder.frames, 1)
	require.Len(t, recorder.frames[0], 1)
	assert.Equal(t, 0.0, recorder.frames[0][0].RxBytesPerSec)
	assert.True(t, history.Exists(path))
}

func TestRunOnceAgainstHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	base := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)

	require.NoError(t, history.Store(path, snapshotAt(base, map[string]netdev.DeviceStats{
		"eth0": {RxBytes: 1000, TxBytes: 2000},
	})))

	source := &scriptedSource{snapshots: []*netdev.Snapshot{
		snapshotAt(base.Add(time.Second), map[string]netdev.DeviceStats{
			"eth0": {RxBytes: 2024, TxBytes: 2000},
		}),
	}}
	recorder := &frameRecorder{}

	m := New(Options{
		Source:      source,
		Renderer:    recorder,
		HistoryPath: path,
		Logger:      log.NOP,
	})
	require.NoError(t, m.RunOnce(context.Background()))

	require.Len(t, recorder.frames, 1)
	sample := recorder.frames[0][0]
	assert.Equal(t, "eth0", sample.Name)
	assert.Equal(t, 1024.0, sample.RxBytesPerSec)
	assert.Equal(t, 0.0, sample.TxBytesPerSec)
	assert.Equal(t, "1.00 KiB/s (8.19 Kbit/s)", rate.FormatRate(sample.RxBytesPerSec))

	// history now holds the current snapshot
	stored, err := history.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(2024), stored.Devices["eth0"].RxBytes)
}

func TestRunOnceSourceUnavailable(t *testing.T) {
	source := &scriptedSource{errs: []error{netdev.ErrSourceUnavailable}}

	m := New(Options{
		Source:      source,
		Renderer:    &frameRecorder{},
		HistoryPath: filepath.Join(t.TempDir(), "history.json"),
		Logger:      log.NOP,
	})
	err := m.RunOnce(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, netdev.ErrSourceUnavailable))
}

func TestWatchComputesAgainstPreviousCycle(t *testing.T) {
	base := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)

	source := &scriptedSource{snapshots: []*netdev.Snapshot{
		snapshotAt(base, map[string]netdev.DeviceStats{
			"eth0": {RxBytes: 1000, TxBytes: 2000},
		}),
		snapshotAt(base.Add(time.Second), map[string]netdev.DeviceStats{
			"eth0": {RxBytes: 2024, TxBytes: 2000},
		}),
	}}
	recorder := &frameRecorder{quit: make(chan struct{}), quitAfter: 2}

	m := New(Options{
		Source:   source,
		Renderer: recorder,
		Interval: time.Millisecond,
		Logger:   log.NOP,
	})
	require.NoError(t, m.Watch(context.Background()))

	require.GreaterOrEqual(t, len(recorder.frames), 2)
	assert.Equal(t, 0.0, recorder.frames[0][0].RxBytesPerSec)
	assert.Equal(t, 1024.0, recorder.frames[1][0].RxBytesPerSec)
}

func TestWatchSkipsFailedCycle(t *testing.T) {
	base := time.Now()
	snapshot := snapshotAt(base, map[string]netdev.DeviceStats{"eth0": {}})

	source := &scriptedSource{
		snapshots: []*netdev.Snapshot{snapshot, snapshot, snapshot},
		errs:      []error{nil, errors.New("transient read failure"), nil},
	}
	recorder := &frameRecorder{quit: make(chan struct{}), quitAfter: 2}

	m := New(Options{
		Source:   source,
		Renderer: recorder,
		Interval: time.Millisecond,
		Logger:   log.NOP,
	})
	require.NoError(t, m.Watch(context.Background()))

	// the failed capture produced no frame and did not abort the loop
	assert.GreaterOrEqual(t, source.calls, 3)
	assert.Len(t, recorder.frames, 2)
}

func TestWatchFirstCaptureFatal(t *testing.T) {
	source := &scriptedSource{errs: []error{netdev.ErrSourceUnavailable}}
	recorder := &frameRecorder{quit: make(chan struct{})}

	m := New(Options{
		Source:   source,
		Renderer: recorder,
		Interval: time.Millisecond,
		Logger:   log.NOP,
	})
	err := m.Watch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, netdev.ErrSourceUnavailable))
}

func TestWatchStopsOnContext(t *testing.T) {
	base := time.Now()
	source := &scriptedSource{snapshots: []*netdev.Snapshot{
		snapshotAt(base, map[string]netdev.DeviceStats{"eth0": {}}),
	}}
	recorder := &frameRecorder{quit: make(chan struct{})}

	ctx, cancel := context.WithCancel(context.Background())
	m := New(Options{
		Source:   source,
		Renderer: recorder,
		Interval: time.Millisecond,
		Logger:   log.NOP,
	})

	done := make(chan error, 1)
	go func() { done <- m.Watch(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop on context cancellation")
	}
}
