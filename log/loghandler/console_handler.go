package loghandler

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/qtraffics/qifstat/log"
	"github.com/qtraffics/qifstat/values"
)

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

var _ log.Handler = (*ConsoleHandler)(nil)

// ConsoleHandler renders records as single "LEVEL msg k=v ..." lines,
// one write per record so interleaved loggers stay line-atomic.
type ConsoleHandler struct {
	level       log.Level
	enableTime  bool
	timeFormat  func(t time.Time) string
	levelFormat func(l log.Level) string

	mu     *sync.Mutex
	writer io.Writer

	groupPrefix string
	preformat   []byte
}

type ConsoleHandlerOption struct {
	Level      log.Level
	EnableTime bool

	TimeFormatter  func(t time.Time) string
	LevelFormatter func(level log.Level) string
}

func NewConsoleHandler(w io.Writer, option ConsoleHandlerOption) log.Handler {
	if w == nil || w == io.Discard {
		return slog.DiscardHandler
	}
	option.TimeFormatter = values.UseDefaultNil(option.TimeFormatter, log.RFC3339TimeFormatter)
	option.LevelFormatter = values.UseDefaultNil(option.LevelFormatter, log.EqualLengthLevelFormatter)

	return &ConsoleHandler{
		level:       option.Level,
		enableTime:  option.EnableTime,
		timeFormat:  option.TimeFormatter,
		levelFormat: option.LevelFormatter,
		mu:          &sync.Mutex{},
		writer:      w,
	}
}

func (h *ConsoleHandler) clone() *ConsoleHandler {
	return &ConsoleHandler{
		level:       h.level,
		enableTime:  h.enableTime,
		timeFormat:  h.timeFormat,
		levelFormat: h.levelFormat,

		mu:          h.mu,
		writer:      h.writer,
		groupPrefix: h.groupPrefix,
		preformat:   slices.Clone(h.preformat),
	}
}

func (h *ConsoleHandler) Enabled(ctx context.Context, level log.Level) bool {
	return h.level <= level
}

func (h *ConsoleHandler) Handle(ctx context.Context, r slog.Record) error {
	buffer := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buffer.Reset()
		bufferPool.Put(buffer)
	}()

	if h.enableTime {
		if r.Time.IsZero() {
			r.Time = time.Now()
		}
		buffer.WriteString(h.timeFormat(r.Time))
		buffer.WriteByte(' ')
	}

	buffer.WriteString(h.levelFormat(r.Level))
	buffer.WriteByte(' ')
	buffer.WriteString(r.Message)

	if len(h.preformat) != 0 {
		buffer.WriteByte(' ')
		buffer.Write(h.preformat)
	}
	r.Attrs(func(attr slog.Attr) bool {
		h.appendAttr(buffer, attr, h.groupPrefix)
		return true
	})
	buffer.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buffer.Bytes())
	return err
}

func (h *ConsoleHandler) appendAttr(buffer *bytes.Buffer, attr slog.Attr, group string) {
	if attr.Key == "" {
		attr.Key = "!BADKEY"
	}

	value := attr.Value.Resolve()
	if value.Kind() == slog.KindGroup {
		for _, v := range value.Group() {
			v.Key = attr.Key + "." + v.Key
			h.appendAttr(buffer, v, group)
		}
		return
	}

	buffer.WriteByte(' ')
	if group != "" {
		buffer.WriteString(group)
		buffer.WriteByte('.')
	}
	buffer.WriteString(attr.Key)
	buffer.WriteByte('=')

	var valueStr string
	if value.Kind() == slog.KindTime {
		valueStr = h.timeFormat(value.Time())
	} else {
		valueStr = value.String()
	}
	if strings.Contains(valueStr, " ") {
		valueStr = "`" + valueStr + "`"
	}
	buffer.WriteString(valueStr)
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	h2 := h.clone()
	buffer := new(bytes.Buffer)
	if len(h2.preformat) != 0 {
		buffer.Write(h2.preformat)
	}
	for _, attr := range attrs {
		h2.appendAttr(buffer, attr, h2.groupPrefix)
	}
	h2.preformat = bytes.TrimLeft(buffer.Bytes(), " ")
	return h2
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	if h2.groupPrefix == "" {
		h2.groupPrefix = name
	} else {
		h2.groupPrefix = h2.groupPrefix + "." + name
	}
	return h2
}
