package hcl_adapter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/mbtgo/internal/config"
	"github.com/specialistvlad/mbtgo/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the run file at path. Relative model and output paths are
// resolved against the run file's directory.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx).With("file", path)
	logger.Debug("HCL loader started.")

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	model, err := l.translate(ctx, &root, path)
	if err != nil {
		return nil, err
	}

	logger.Debug("HCL loading complete.",
		"model_path", model.Input.Path,
		"has_stop_condition", model.StopCondition != nil,
		"has_coverage", model.Coverage != nil,
	)
	return model, nil
}

func (l *Loader) translate(ctx context.Context, root *fileRoot, path string) (*config.Model, error) {
	baseDir := filepath.Dir(path)
	model := &config.Model{}

	if root.Model != nil {
		model.Input = config.Input{
			Path:    resolve(baseDir, root.Model.Path),
			Pattern: root.Model.Pattern,
		}
	}
	if root.Output != nil {
		model.Output = config.Output{
			GraphML: resolve(baseDir, root.Output.GraphML),
			Summary: resolve(baseDir, root.Output.Summary),
			JSON:    resolve(baseDir, root.Output.JSON),
		}
	}

	var conds []*config.StopCondition
	for _, block := range root.StopConditions {
		cond, err := l.translateStopCondition(ctx, block, path)
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
	}
	switch len(conds) {
	case 0:
	case 1:
		model.StopCondition = conds[0]
	default:
		model.StopCondition = &config.StopCondition{Type: config.StopCombinational, Children: conds}
	}
	if model.StopCondition != nil {
		if err := model.StopCondition.Validate(); err != nil {
			return nil, fmt.Errorf("in file %s: %w", path, err)
		}
	}

	if root.Coverage != nil {
		cov, err := translateCoverage(root.Coverage, path)
		if err != nil {
			return nil, err
		}
		model.Coverage = cov
	}
	return model, nil
}

// translateStopCondition converts a stop_condition block and its nested
// blocks into the agnostic model.
func (l *Loader) translateStopCondition(ctx context.Context, b *stopConditionBlock, path string) (*config.StopCondition, error) {
	logger := ctxlog.FromContext(ctx).With("stop_condition", b.Type)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Translating HCL stop condition.")

	cond := &config.StopCondition{Type: b.Type}
	if isExprDefined(ctx, b.Requirements, "requirements") {
		reqs, err := evalStringList(b.Requirements)
		if err != nil {
			return nil, fmt.Errorf("invalid 'requirements' in stop_condition %q in file %s: %w", b.Type, path, err)
		}
		cond.Requirements = reqs
	}
	for _, child := range b.Children {
		c, err := l.translateStopCondition(ctx, child, path)
		if err != nil {
			return nil, err
		}
		cond.Children = append(cond.Children, c)
	}
	return cond, nil
}

func translateCoverage(b *coverageBlock, path string) (*config.Coverage, error) {
	connectTimeout, err := parseDuration(b.ConnectTimeout, "connect_timeout", path)
	if err != nil {
		return nil, err
	}
	timeout, err := parseDuration(b.Timeout, "timeout", path)
	if err != nil {
		return nil, err
	}
	poll, err := parseDuration(b.PollInterval, "poll_interval", path)
	if err != nil {
		return nil, err
	}
	return &config.Coverage{
		URL:                b.URL,
		Namespace:          b.Namespace,
		Event:              b.Event,
		InsecureSkipVerify: b.InsecureSkipVerify,
		ConnectTimeout:     connectTimeout,
		Timeout:            timeout,
		PollInterval:       poll,
	}, nil
}

func resolve(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
