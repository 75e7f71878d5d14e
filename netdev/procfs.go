package netdev

import (
	"bufio"
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/qtraffics/qifstat/ex"
	"github.com/qtraffics/qifstat/log"
	"github.com/qtraffics/qifstat/registry"
	"github.com/qtraffics/qifstat/values"
)

const DefaultProcPath = "/proc/net/dev"

// /proc/net/dev data lines carry 8 receive and 8 transmit counters,
// see man 5 proc.
const (
	procColumnCount = 16
	procRxBytesCol  = 0
	procTxBytesCol  = 8
	procHeaderLines = 2
)

var errMalformedLine = ex.New("netdev: malformed counter line")

type procRecord struct {
	name string
	rx   uint64
	tx   uint64
}

var _ Source = (*ProcSource)(nil)

// ProcSource reads interface counters from a /proc/net/dev style text
// table. Malformed lines are skipped, not fatal.
type ProcSource struct {
	path string
}

func NewProcSource(path string) *ProcSource {
	return &ProcSource{path: values.UseDefault(path, DefaultProcPath)}
}

func (s *ProcSource) Capture(ctx context.Context) (*Snapshot, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, sourceUnavailable(err)
	}
	defer file.Close()

	logger, ok := registry.ContextFrom[log.Logger](ctx)
	if !ok {
		logger = log.NOP
	}

	snapshot := &Snapshot{
		Time:    time.Now(),
		Devices: make(map[string]DeviceStats),
	}

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo <= procHeaderLines {
			continue
		}
		record, err := parseProcLine(scanner.Text())
		if err != nil {
			logger.Debug("skipping counter line",
				log.AttrPath(s.path),
				log.AttrError(err))
			continue
		}
		snapshot.Devices[record.name] = DeviceStats{
			RxBytes: record.rx,
			TxBytes: record.tx,
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, sourceUnavailable(err)
	}

	return snapshot, nil
}

// parseProcLine tokenizes one data line into a fixed-shape record.
// The interface name ends at the first colon; large counters may be
// glued to it without a space.
func parseProcLine(line string) (procRecord, error) {
	name, rest, found := strings.Cut(line, ":")
	if !found {
		return procRecord{}, errMalformedLine
	}
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, " \t") {
		return procRecord{}, errMalformedLine
	}

	columns := strings.Fields(rest)
	if len(columns) != procColumnCount {
		return procRecord{}, errMalformedLine
	}

	rx, err := strconv.ParseUint(columns[procRxBytesCol], 10, 64)
	if err != nil {
		return procRecord{}, ex.Cause(err, "rx bytes")
	}
	tx, err := strconv.ParseUint(columns[procTxBytesCol], 10, 64)
	if err != nil {
		return procRecord{}, ex.Cause(err, "tx bytes")
	}

	return procRecord{name: name, rx: rx, tx: tx}, nil
}
