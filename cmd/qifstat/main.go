// Command qifstat shows per-interface network throughput from the
// kernel's byte counters, analogous to ifstat from iproute2.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qtraffics/qifstat/display"
	"github.com/qtraffics/qifstat/ex"
	"github.com/qtraffics/qifstat/log"
	"github.com/qtraffics/qifstat/log/loghandler"
	"github.com/qtraffics/qifstat/monitor"
	"github.com/qtraffics/qifstat/netdev"
	"github.com/qtraffics/qifstat/services"
)

const version = "0.1.0"

type options struct {
	historyFile string
	watch       bool
	interval    time.Duration
	source      string
	procPath    string
	plain       bool
	debug       bool
	version     bool
}

func newFlagSet(opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet("qifstat", flag.ExitOnError)
	fs.StringVar(&opts.historyFile, "f", "", "history file tracking the previous snapshot (required)")
	fs.StringVar(&opts.historyFile, "history-file", "", "alias of -f")
	fs.BoolVar(&opts.watch, "watch", false, "keep refreshing instead of printing once")
	fs.DurationVar(&opts.interval, "interval", monitor.DefaultInterval, "refresh interval in watch mode")
	fs.StringVar(&opts.source, "source", "procfs", "counter source: procfs or gopsutil")
	fs.StringVar(&opts.procPath, "proc", netdev.DefaultProcPath, "path of the procfs counter table")
	fs.BoolVar(&opts.plain, "plain", false, "plain text frames in watch mode instead of the live table")
	fs.BoolVar(&opts.debug, "debug", false, "verbose logging on stderr")
	fs.BoolVar(&opts.version, "V", false, "print version and exit")
	fs.BoolVar(&opts.version, "version", false, "alias of -V")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "qifstat shows network device speed from %s, see man 5 proc.\n\n", netdev.DefaultProcPath)
		fmt.Fprintf(fs.Output(), "Usage: qifstat -f <history-file> [flags]\n\n")
		fs.PrintDefaults()
	}
	return fs
}

func buildLogger(debug bool) log.Logger {
	level := log.LevelInfo
	if debug {
		level = log.LevelDebug
	}
	handler, err := loghandler.New(loghandler.BuildOption{
		Output: "stderr",
		Level:  level,
		Time:   debug,
	})
	ex.Must(err)

	logger := log.New(handler)
	log.SetDefaultLogger(logger)
	return logger
}

func main() {
	var opts options
	fs := newFlagSet(&opts)
	_ = fs.Parse(os.Args[1:])

	if opts.version {
		fmt.Printf("qifstat v%s\n", version)
		return
	}
	if opts.historyFile == "" {
		fmt.Fprintln(os.Stderr, "qifstat: the history file option -f is required")
		fs.Usage()
		os.Exit(2)
	}

	logger := buildLogger(opts.debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &opts, logger); err != nil {
		logger.Error("qifstat failed", log.AttrError(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options, logger log.Logger) error {
	source, err := buildSource(opts)
	if err != nil {
		return err
	}

	var renderer display.Renderer
	if opts.watch && !opts.plain {
		renderer = display.NewLiveRenderer()
	} else {
		renderer = display.NewPlainRenderer(os.Stdout)
	}

	m := monitor.New(monitor.Options{
		Source:      source,
		Renderer:    renderer,
		HistoryPath: opts.historyFile,
		Interval:    opts.interval,
		Logger:      logger,
	})

	if err := services.Start(ctx, m); err != nil {
		return err
	}

	if opts.watch {
		err = m.Watch(ctx)
	} else {
		err = m.RunOnce(ctx)
	}
	return ex.Errors(err, services.Close(m))
}

func buildSource(opts *options) (netdev.Source, error) {
	switch opts.source {
	case "procfs":
		return netdev.NewProcSource(opts.procPath), nil
	case "gopsutil":
		return netdev.NewPsutilSource(), nil
	default:
		return nil, ex.New("unknown counter source: ", opts.source)
	}
}
