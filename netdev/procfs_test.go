package netdev

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const procFixture = `Inter-|   Receive                                                |  Transmit
 face |bytes    packets errs drop fifo frame compressed multicast|bytes    packets errs drop fifo colls carrier compressed
    lo:  455870    1245    0    0    0     0          0         0   455870    1245    0    0    0     0       0          0
  eth0: 1000000    2000    0    0    0     0          0         0  2000000    1500    0    0    0     0       0          0
this line has no colon at all
  bad0: 12 34
 wlan0: 337161012  257902    0    0    0     0          0         0 17974060  130467    0    0    0     0       0          0
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "net_dev")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcSourceCapture(t *testing.T) {
	source := NewProcSource(writeFixture(t, procFixture))

	snapshot, err := source.Capture(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.False(t, snapshot.Time.IsZero())

	// malformed lines are skipped, valid ones survive
	require.Len(t, snapshot.Devices, 3)
	assert.Equal(t, DeviceStats{RxBytes: 455870, TxBytes: 455870}, snapshot.Devices["lo"])
	assert.Equal(t, DeviceStats{RxBytes: 1000000, TxBytes: 2000000}, snapshot.Devices["eth0"])
	assert.Equal(t, DeviceStats{RxBytes: 337161012, TxBytes: 17974060}, snapshot.Devices["wlan0"])
}

func TestProcSourceMissingFile(t *testing.T) {
	source := NewProcSource(filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := source.Capture(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
}

func TestParseProcLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want procRecord
		ok   bool
	}{
		{
			name: "regular line",
			line: "  eth0: 1024 10 0 0 0 0 0 0 2048 20 0 0 0 0 0 0",
			want: procRecord{name: "eth0", rx: 1024, tx: 2048},
			ok:   true,
		},
		{
			name: "counter glued to colon",
			line: "  eth0:18446744073709551615 10 0 0 0 0 0 0 7 20 0 0 0 0 0 0",
			want: procRecord{name: "eth0", rx: 18446744073709551615, tx: 7},
			ok:   true,
		},
		{
			name: "no colon",
			line: "eth0 1024 10 0 0 0 0 0 0 2048 20 0 0 0 0 0 0",
		},
		{
			name: "too few columns",
			line: "eth0: 1024 10 0 0",
		},
		{
			name: "too many columns",
			line: "eth0: 1024 10 0 0 0 0 0 0 2048 20 0 0 0 0 0 0 99",
		},
		{
			name: "non numeric rx",
			line: "eth0: x 10 0 0 0 0 0 0 2048 20 0 0 0 0 0 0",
		},
		{
			name: "empty name",
			line: " : 1024 10 0 0 0 0 0 0 2048 20 0 0 0 0 0 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProcLine(tt.line)
			if !tt.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
