package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/mbtgo/internal/builder"
	"github.com/specialistvlad/mbtgo/internal/conditions"
	"github.com/specialistvlad/mbtgo/internal/config"
	"github.com/specialistvlad/mbtgo/internal/coverage"
	"github.com/specialistvlad/mbtgo/internal/ctxlog"
	"github.com/specialistvlad/mbtgo/internal/fsutil"
	"github.com/specialistvlad/mbtgo/internal/model"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	cfg      Config
	coverage *config.Coverage

	fs      *fsutil.FS
	tracker *coverage.Tracker
	stop    conditions.StopCondition

	session *builder.Session
	files   []string
	model   *model.Graph
}

// NewApp builds an App with its own isolated logger. When cfg names a run
// file it is loaded through loader and command-line values take precedence
// over it.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:    outW,
		logger:  logger,
		cfg:     *cfg,
		fs:      fsutil.New(),
		tracker: coverage.NewTracker(),
	}

	var runFile *config.Model
	if cfg.ConfigPath != "" {
		if loader == nil {
			return nil, errors.New("a run file was given but no configuration loader is available")
		}
		m, err := loader.Load(ctx, cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		runFile = m
		logger.Debug("Run file loaded.", "file", cfg.ConfigPath)
	}
	a.applyRunFile(runFile)

	if a.cfg.ModelPath == "" {
		return nil, errors.New("no model path given on the command line or in the run file")
	}
	if a.cfg.Pattern == "" {
		a.cfg.Pattern = fsutil.DefaultPattern
	}

	if runFile != nil && runFile.StopCondition != nil {
		stop, err := buildStopCondition(runFile.StopCondition, a.tracker)
		if err != nil {
			return nil, fmt.Errorf("invalid stop condition: %w", err)
		}
		a.stop = stop
		logger.Debug("Stop condition configured.", "condition", fmt.Sprint(stop))
	}
	return a, nil
}

// applyRunFile fills every empty command-line value from m.
func (a *App) applyRunFile(m *config.Model) {
	if m == nil {
		return
	}
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&a.cfg.ModelPath, m.Input.Path)
	fill(&a.cfg.Pattern, m.Input.Pattern)
	fill(&a.cfg.OutputPath, m.Output.GraphML)
	fill(&a.cfg.SummaryPath, m.Output.Summary)
	fill(&a.cfg.JSONPath, m.Output.JSON)
	a.coverage = m.Coverage
}

// buildStopCondition turns the configured tree into predicates over src.
func buildStopCondition(c *config.StopCondition, src conditions.RequirementSource) (conditions.StopCondition, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	switch c.Type {
	case config.StopReachedRequirement:
		rr, err := conditions.NewReachedRequirements(src, c.Requirements...)
		if err != nil {
			return nil, err
		}
		return rr, nil
	case config.StopCombinational:
		and := conditions.NewCombinational()
		for _, child := range c.Children {
			sc, err := buildStopCondition(child, src)
			if err != nil {
				return nil, err
			}
			and.Add(sc)
		}
		return and, nil
	}
	return nil, fmt.Errorf("unknown stop condition type %q", c.Type)
}

// Config returns the effective configuration after the run file was applied.
func (a *App) Config() Config {
	return a.cfg
}

// Model returns the merged model. It is nil until Run succeeded.
func (a *App) Model() *model.Graph {
	return a.model
}

// Files returns the model files that were merged.
func (a *App) Files() []string {
	return a.files
}

// Session returns the merge session of the last Run.
func (a *App) Session() *builder.Session {
	return a.session
}

// StopCondition returns the configured stop condition, or nil.
func (a *App) StopCondition() conditions.StopCondition {
	return a.stop
}

// Tracker returns the requirement coverage the stop condition observes.
func (a *App) Tracker() *coverage.Tracker {
	return a.tracker
}
