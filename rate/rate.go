// Package rate turns pairs of counter snapshots into per-interface
// throughput samples and formats them for display.
package rate

import (
	"github.com/qtraffics/qifstat/enhancements/maplib"
	"github.com/qtraffics/qifstat/netdev"
)

// Sample is the throughput of one interface over one cycle. It is
// recomputed every cycle and never persisted.
type Sample struct {
	Name          string
	RxBytesPerSec float64
	TxBytesPerSec float64
}

// Compute derives per-interface rates from two snapshots, ordered by
// interface name so consecutive frames stay visually stable.
//
// A rate is zero when the interface is new, when its counter went
// backwards (reset, hot-plug or 64-bit wrap), or when no wall-clock
// time elapsed between the snapshots. Rates are never negative.
func Compute(prev, cur *netdev.Snapshot) []Sample {
	if cur == nil {
		return nil
	}

	var elapsed float64
	if prev != nil {
		elapsed = cur.Time.Sub(prev.Time).Seconds()
	}

	samples := make([]Sample, 0, len(cur.Devices))
	for _, name := range maplib.SortedKeys(cur.Devices) {
		stat := cur.Devices[name]
		sample := Sample{Name: name}

		if prev != nil && elapsed > 0 {
			if prevStat, ok := prev.Devices[name]; ok {
				sample.RxBytesPerSec = counterRate(stat.RxBytes, prevStat.RxBytes, elapsed)
				sample.TxBytesPerSec = counterRate(stat.TxBytes, prevStat.TxBytes, elapsed)
			}
		}

		samples = append(samples, sample)
	}
	return samples
}

// Total sums the directional rates of a frame, for the live view's
// footer row.
func Total(samples []Sample) (rx, tx float64) {
	for _, s := range samples {
		rx += s.RxBytesPerSec
		tx += s.TxBytesPerSec
	}
	return rx, tx
}

func counterRate(cur, prev uint64, elapsed float64) float64 {
	if cur < prev {
		return 0
	}
	return float64(cur-prev) / elapsed
}
