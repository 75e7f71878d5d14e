package netdev

import (
	"context"
	"time"

	"github.com/qtraffics/qifstat/ex"
)

// ErrSourceUnavailable reports that the counter source cannot be
// opened or read at all, as opposed to single malformed entries.
var ErrSourceUnavailable = ex.New("netdev: source unavailable")

// DeviceStats holds the cumulative byte counters of one interface.
// Counters only grow while the interface exists, but drop back to
// zero when it is removed and recreated.
type DeviceStats struct {
	RxBytes uint64 `json:"rx"`
	TxBytes uint64 `json:"tx"`
}

// Snapshot is a point-in-time capture of every interface's counters.
// It is never mutated after Capture returns.
type Snapshot struct {
	Time    time.Time              `json:"timestamp"`
	Devices map[string]DeviceStats `json:"devices"`
}

type Source interface {
	Capture(ctx context.Context) (*Snapshot, error)
}

func sourceUnavailable(err error) error {
	return ex.Errors(ErrSourceUnavailable, err)
}
