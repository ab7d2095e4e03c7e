// Command wordfreq downloads a Project Gutenberg plain-text ebook, strips the
// Gutenberg header and footer, and prints the most frequent words.
//
// Usage:
//
//	wordfreq [-n 10] [-config wordfreq.yaml] [-refresh] <url>
//
// Flags may also follow the URL. Pipeline failures are reported on stdout and
// the command still exits 0; only usage errors exit non-zero.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/Adithya-Monish-Kumar-K/wordfreq/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/wordfreq/internal/analyzer"
	"github.com/Adithya-Monish-Kumar-K/wordfreq/internal/fetcher"
	"github.com/Adithya-Monish-Kumar-K/wordfreq/internal/report"
	"github.com/Adithya-Monish-Kumar-K/wordfreq/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/wordfreq/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/wordfreq/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/wordfreq/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/wordfreq/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/wordfreq/pkg/postgres"
	pkgredis "github.com/Adithya-Monish-Kumar-K/wordfreq/pkg/redis"
)

const (
	exitOK     = 0
	exitConfig = 1
	exitUsage  = 2
)

// errUsage means the problem and the usage text were already written.
var errUsage = errors.New("usage error")

type options struct {
	location   string
	top        int
	topSet     bool
	configPath string
	refresh    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return exitConfig
	}
	logger.Setup(stderr, cfg.Logging.Level, cfg.Logging.Format)
	if !opts.topSet {
		opts.top = cfg.Report.DefaultTop
	}

	runID := uuid.NewString()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.FromContext(ctx)
	log.Info("starting analysis", "url", opts.location, "top", opts.top)

	m := metrics.New()
	source, closeSource := buildSource(cfg, opts.refresh, m)
	defer closeSource()
	recorder, closeRecorder := buildRecorder(cfg)
	defer closeRecorder()

	a := analyzer.New(source, m)
	a.OnStage = func(s analyzer.Stage) { report.Progress(stdout, s) }

	start := time.Now()
	res, err := a.Run(ctx, opts.location, opts.top)
	var ev analytics.RunEvent
	if err != nil {
		report.WriteError(stdout, err)
		m.RunsTotal.WithLabelValues(string(apperrors.KindOf(err))).Inc()
		ev = analytics.FailedEvent(runID, opts.location, opts.top, time.Since(start), err)
	} else {
		if werr := report.Write(stdout, res); werr != nil {
			log.Error("failed to write report", "error", werr)
		}
		m.RunsTotal.WithLabelValues("success").Inc()
		m.LastSuccessfulRun.SetToCurrentTime()
		ev = analytics.SucceededEvent(runID, res)
	}
	m.LastRunTimestamp.SetToCurrentTime()

	if recorder.Len() > 0 {
		recorder.Record(context.WithoutCancel(ctx), ev)
	}
	if err := m.Export(cfg.Metrics); err != nil {
		log.Warn("metrics export failed", "error", err)
	}
	return exitOK
}

// parseArgs accepts flags on either side of the location.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("wordfreq", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.top, "n", 10, "number of top words to display")
	fs.StringVar(&opts.configPath, "config", "", "path to YAML config file")
	fs.BoolVar(&opts.refresh, "refresh", false, "ignore cached documents and fetch again")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: wordfreq [flags] <url>\n\nAnalyze word frequency in a Project Gutenberg text file from a URL.\n\nflags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, parseError(err)
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprintln(stderr, "wordfreq: missing required argument: url")
		fs.Usage()
		return opts, errUsage
	}
	opts.location = rest[0]
	if err := fs.Parse(rest[1:]); err != nil {
		return opts, parseError(err)
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "wordfreq: unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return opts, errUsage
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "n" {
			opts.topSet = true
		}
	})
	return opts, nil
}

// parseError keeps flag.ErrHelp distinguishable; the flag package has
// already printed everything else.
func parseError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return errUsage
}

// buildSource returns the network fetcher, fronted by the Redis document
// cache when enabled and reachable.
func buildSource(cfg *config.Config, refresh bool, m *metrics.Metrics) (analyzer.Source, func()) {
	f := fetcher.New(cfg.Fetch, m)
	if !cfg.Redis.Enabled {
		return f, func() {}
	}
	client, err := pkgredis.NewClient(cfg.Redis)
	if err != nil {
		slog.Warn("redis unavailable, document cache disabled", "addr", cfg.Redis.Addr, "error", err)
		return f, func() {}
	}
	slog.Debug("document cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL, "refresh", refresh)
	return fetcher.NewDocumentCache(f, client, cfg.Redis.CacheTTL, refresh, m), func() { client.Close() }
}

// buildRecorder wires the enabled run-event sinks.
func buildRecorder(cfg *config.Config) (*analytics.Recorder, func()) {
	var sinks []analytics.Sink
	var closers []func() error
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka)
		sinks = append(sinks, analytics.NewKafkaSink(producer))
		closers = append(closers, producer.Close)
	}
	if cfg.Postgres.Enabled {
		db, err := postgres.New(cfg.Postgres)
		if err != nil {
			slog.Warn("postgres unavailable, run ledger disabled", "host", cfg.Postgres.Host, "error", err)
		} else {
			sinks = append(sinks, analytics.NewStore(db))
			closers = append(closers, db.Close)
		}
	}
	return analytics.NewRecorder(5*time.Second, sinks...), func() {
		for _, c := range closers {
			if err := c(); err != nil {
				slog.Warn("closing run-event sink", "error", err)
			}
		}
	}
}
