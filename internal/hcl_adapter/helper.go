package hcl_adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/mbtgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// isExprDefined checks if an HCL expression was actually present in the
// source. gohcl fills omitted optional expression fields with zero-width
// placeholders, so a nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// evalStringList evaluates expr as either a comma-separated string or a
// list of strings. Entries are trimmed and empty ones dropped.
func evalStringList(expr hcl.Expression) ([]string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsKnown() {
		return nil, fmt.Errorf("value must be known")
	}

	var raw []string
	ty := val.Type()
	switch {
	case ty.Equals(cty.String):
		raw = strings.Split(val.AsString(), ",")
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			if elem.IsNull() || !elem.Type().Equals(cty.String) {
				return nil, fmt.Errorf("list elements must be strings, got %s", elem.Type().FriendlyName())
			}
			raw = append(raw, elem.AsString())
		}
	default:
		return nil, fmt.Errorf("expected a string or a list of strings, got %s", ty.FriendlyName())
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// parseDuration parses an optional duration attribute. An empty string
// yields zero.
func parseDuration(value, attr, file string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for '%s' in file %s: %w", attr, file, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration for '%s' in file %s", attr, file)
	}
	return d, nil
}
