package netdev

import (
	"context"
	"time"

	psnet "github.com/shirou/gopsutil/v4/net"

	"github.com/qtraffics/qifstat/enhancements/maplib"
)

var _ Source = (*PsutilSource)(nil)

// PsutilSource captures per-NIC counters through gopsutil, which
// works on the platforms /proc/net/dev does not exist on.
type PsutilSource struct{}

func NewPsutilSource() *PsutilSource {
	return &PsutilSource{}
}

func (s *PsutilSource) Capture(ctx context.Context) (*Snapshot, error) {
	counters, err := psnet.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, sourceUnavailable(err)
	}

	devices := maplib.FromSliceFunc(counters, func(_ int, stat psnet.IOCountersStat) string {
		return stat.Name
	})

	snapshot := &Snapshot{
		Time:    time.Now(),
		Devices: make(map[string]DeviceStats, len(devices)),
	}
	for name, stat := range devices {
		snapshot.Devices[name] = DeviceStats{
			RxBytes: stat.BytesRecv,
			TxBytes: stat.BytesSent,
		}
	}
	return snapshot, nil
}
