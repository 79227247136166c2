// This file contains the gohcl decoding targets for a run file.

package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block of a run file.
type fileRoot struct {
	Model          *modelBlock           `hcl:"model,block"`
	Output         *outputBlock          `hcl:"output,block"`
	StopConditions []*stopConditionBlock `hcl:"stop_condition,block"`
	Coverage       *coverageBlock        `hcl:"coverage,block"`
	Remain         hcl.Body              `hcl:",remain"`
}

type modelBlock struct {
	Path    string `hcl:"path,optional"`
	Pattern string `hcl:"pattern,optional"`
}

type outputBlock struct {
	GraphML string `hcl:"graphml,optional"`
	Summary string `hcl:"summary,optional"`
	JSON    string `hcl:"json,optional"`
}

type stopConditionBlock struct {
	Type         string                `hcl:"type,label"`
	Requirements hcl.Expression        `hcl:"requirements,optional"`
	Children     []*stopConditionBlock `hcl:"stop_condition,block"`
}

type coverageBlock struct {
	URL                string `hcl:"url"`
	Namespace          string `hcl:"namespace,optional"`
	Event              string `hcl:"event,optional"`
	InsecureSkipVerify bool   `hcl:"insecure_skip_verify,optional"`
	ConnectTimeout     string `hcl:"connect_timeout,optional"`
	Timeout            string `hcl:"timeout,optional"`
	PollInterval       string `hcl:"poll_interval,optional"`
}
