// Package history persists the last snapshot across invocations so a
// one-shot run can rate against the previous one.
package history

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/qtraffics/qifstat/ex"
	"github.com/qtraffics/qifstat/netdev"
)

func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func Load(path string) (*netdev.Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ex.Cause(err, "open history "+path)
	}
	defer file.Close()

	var snapshot netdev.Snapshot
	if err := json.NewDecoder(bufio.NewReader(file)).Decode(&snapshot); err != nil {
		return nil, ex.Cause(err, "parse history "+path)
	}
	return &snapshot, nil
}

func Store(path string, snapshot *netdev.Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return ex.Cause(err, "create history "+path)
	}

	writer := bufio.NewWriter(file)
	if err := json.NewEncoder(writer).Encode(snapshot); err != nil {
		_ = file.Close()
		return ex.Cause(err, "serialize history")
	}
	if err := writer.Flush(); err != nil {
		_ = file.Close()
		return ex.Cause(err, "flush history")
	}
	return file.Close()
}
