package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/mbtgo/internal/builder"
	"github.com/specialistvlad/mbtgo/internal/coverage"
	"github.com/specialistvlad/mbtgo/internal/ctxlog"
	"github.com/specialistvlad/mbtgo/internal/export"
	"github.com/specialistvlad/mbtgo/internal/graphml"
	"github.com/specialistvlad/mbtgo/internal/model"
)

// DefaultPollInterval is how often the stop condition is checked while a
// coverage feed is connected.
const DefaultPollInterval = time.Second

// ErrStopConditionNotMet is returned when monitoring ends before the stop
// condition was fulfilled.
var ErrStopConditionNotMet = errors.New("stop condition not fulfilled")

// Run discovers, loads and merges the model files, writes the configured
// outputs and, when a coverage feed is configured, waits for the stop
// condition.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if err := a.merge(ctx); err != nil {
		return err
	}
	if err := a.writeOutputs(ctx); err != nil {
		return err
	}

	if a.stop != nil {
		a.logger.Info("Stop condition status.", "fulfilled", a.stop.IsFulfilled(), "fulfillment", a.stop.Fulfillment())
		if a.coverage != nil {
			if err := a.monitor(ctx); err != nil {
				return err
			}
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) merge(ctx context.Context) error {
	files, err := a.fs.FindFiles(ctx, a.cfg.ModelPath, a.cfg.Pattern)
	if err != nil {
		return fmt.Errorf("failed to discover model files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no model files matching %q found in %s", a.cfg.Pattern, a.cfg.ModelPath)
	}
	a.logger.Info("Model files found.", "count", len(files), "path", a.cfg.ModelPath)

	session, err := builder.NewSession()
	if err != nil {
		return err
	}
	loader := graphml.NewLoader(session.Allocator(), a.fs)
	graphs := make([]*model.Graph, 0, len(files))
	for _, f := range files {
		g, err := loader.LoadFile(ctx, f)
		if err != nil {
			return fmt.Errorf("failed to load model: %w", err)
		}
		graphs = append(graphs, g)
	}

	merged, err := session.Merge(ctx, graphs)
	if err != nil {
		a.logger.Error("Merge failed.", "error", err)
		return fmt.Errorf("failed to merge models: %w", err)
	}

	a.session = session
	a.files = files
	a.model = merged
	return nil
}

func (a *App) writeOutputs(ctx context.Context) error {
	if p := a.cfg.OutputPath; p != "" {
		var buf bytes.Buffer
		if err := graphml.Write(&buf, a.model); err != nil {
			return fmt.Errorf("failed to render merged model: %w", err)
		}
		if err := a.fs.Write(ctx, p, buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write merged model: %w", err)
		}
		a.logger.Info("Merged model written.", "file", p)
	}

	if p := a.cfg.SummaryPath; p != "" {
		summary, err := export.NewSummary(a.session.ID, a.files, a.model)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := export.WriteSummary(&buf, summary); err != nil {
			return err
		}
		if err := a.fs.Write(ctx, p, buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
		a.logger.Info("Summary written.", "file", p)
	}

	if p := a.cfg.JSONPath; p != "" {
		data, err := export.EncodeDocument(a.model)
		if err != nil {
			return err
		}
		if err := a.fs.Write(ctx, p, data); err != nil {
			return fmt.Errorf("failed to write model document: %w", err)
		}
		a.logger.Info("Model document written.", "file", p)
	}
	return nil
}

// monitor connects the coverage feed and blocks until the stop condition
// is fulfilled, the configured timeout expires, or ctx is done.
func (a *App) monitor(ctx context.Context) error {
	feed, err := coverage.NewSocketFeed(a.feedConfig(), a.tracker)
	if err != nil {
		return fmt.Errorf("invalid coverage feed: %w", err)
	}
	if err := feed.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect coverage feed: %w", err)
	}
	defer feed.Close()

	return a.awaitStop(ctx, a.coverage.PollInterval, a.coverage.Timeout)
}

// feedConfig maps the coverage settings onto the feed. The monitoring
// timeout is not a connect timeout.
func (a *App) feedConfig() coverage.FeedConfig {
	return coverage.FeedConfig{
		URL:                a.coverage.URL,
		Namespace:          a.coverage.Namespace,
		Event:              a.coverage.Event,
		InsecureSkipVerify: a.coverage.InsecureSkipVerify,
		Timeout:            a.coverage.ConnectTimeout,
	}
}

// awaitStop polls the stop condition every interval. A zero timeout waits
// until ctx is done.
func (a *App) awaitStop(ctx context.Context, interval, timeout time.Duration) error {
	logger := ctxlog.FromContext(ctx)
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := -1.0
	for {
		fulfillment := a.stop.Fulfillment()
		if fulfillment != last {
			logger.Info("Coverage progress.", "fulfillment", fulfillment, "covered", a.tracker.Len())
			last = fulfillment
		}
		if a.stop.IsFulfilled() {
			logger.Info("Stop condition fulfilled.")
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrStopConditionNotMet, ctx.Err())
		case <-deadline:
			return fmt.Errorf("%w after %s (fulfillment %.2f)", ErrStopConditionNotMet, timeout, a.stop.Fulfillment())
		case <-ticker.C:
		}
	}
}
