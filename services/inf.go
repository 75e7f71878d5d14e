package services

import (
	"context"

	"github.com/qtraffics/qifstat/ex"
)

type LifeCycle interface {
	Start(ctx context.Context) error
	Close() error
}

type PreStarter interface {
	PreStart(ctx context.Context) error
}

type PostCloser interface {
	PostClose() error
}

// Start runs the start sequence for a LifeCycle implementer,
// calling PreStart first when implemented.
func Start(ctx context.Context, lf LifeCycle) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if pre, ok := lf.(PreStarter); ok {
		if err := pre.PreStart(ctx); err != nil {
			return ex.Cause(err, "PreStart")
		}
	}

	if err := lf.Start(ctx); err != nil {
		return ex.Cause(err, "Start")
	}

	return nil
}

// Close runs the close sequence, calling PostClose last when implemented.
func Close(lf LifeCycle) error {
	if err := lf.Close(); err != nil {
		return ex.Cause(err, "Close")
	}

	if post, ok := lf.(PostCloser); ok {
		if err := post.PostClose(); err != nil {
			return ex.Cause(err, "PostClose")
		}
	}

	return nil
}
