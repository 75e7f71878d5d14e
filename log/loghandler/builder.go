package loghandler

import (
	"io"
	"log/slog"
	"os"

	"github.com/qtraffics/qifstat/ex"
	"github.com/qtraffics/qifstat/log"
)

type BuildOption struct {
	Disabled bool      `json:"disabled"`
	Output   string    `json:"output"`
	Level    log.Level `json:"level"`
	Time     bool      `json:"time"`

	OutputWriter io.Writer `json:"-"`
}

func New(opt BuildOption) (log.Handler, error) {
	if opt.Disabled {
		return slog.DiscardHandler, nil
	}

	var (
		file           = opt.OutputWriter
		levelFormatter = log.EqualLengthLevelFormatter
		err            error
	)
	if file == nil {
		switch opt.Output {
		case "stdout":
			file = os.Stdout
			levelFormatter = log.ColorLevelFormatter
		case "", "stderr":
			file = os.Stderr
			levelFormatter = log.ColorLevelFormatter
		default:
			file, err = os.OpenFile(opt.Output, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
			if err != nil {
				return nil, ex.Cause(err, "openfile")
			}
		}
	}

	return NewConsoleHandler(file, ConsoleHandlerOption{
		Level:          opt.Level,
		EnableTime:     opt.Time,
		TimeFormatter:  log.RFC3339TimeFormatter,
		LevelFormatter: levelFormatter,
	}), nil
}
