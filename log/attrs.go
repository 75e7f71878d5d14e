package log

import (
	"log/slog"
)

const (
	KeyError     = "error"
	KeyInterface = "interface"
	KeyPath      = "path"
)

var _ slog.LogValuer = (ValueFunc)(nil)

type ValueFunc func() slog.Value

func (v ValueFunc) LogValue() slog.Value {
	return v()
}

func AttrError(err error) slog.Attr {
	if err == nil {
		panic("log error on a nil error")
	}

	return slog.Any(KeyError, ValueFunc(func() slog.Value {
		return slog.StringValue(err.Error())
	}))
}

func AttrInterface(name string) slog.Attr {
	return slog.String(KeyInterface, name)
}

func AttrPath(path string) slog.Attr {
	return slog.String(KeyPath, path)
}
