package config

import (
	"fmt"
	"time"
)

// Stop condition kinds understood by the application.
const (
	StopReachedRequirement = "reached_requirement"
	StopCombinational      = "combinational"
)

// Model is the unified representation of a run file.
type Model struct {
	Input         Input
	Output        Output
	StopCondition *StopCondition
	Coverage      *Coverage
}

// Input locates the model files to merge.
type Input struct {
	Path    string
	Pattern string
}

// Output names the files the merged model is written to. Empty fields are
// skipped.
type Output struct {
	GraphML string
	Summary string
	JSON    string
}

// StopCondition is one node of the stop-condition tree.
type StopCondition struct {
	Type         string
	Requirements []string
	Children     []*StopCondition
}

// Validate checks the tree shape.
func (s *StopCondition) Validate() error {
	switch s.Type {
	case StopReachedRequirement:
		if len(s.Children) > 0 {
			return fmt.Errorf("stop condition %q does not accept nested conditions", s.Type)
		}
		if len(s.Requirements) == 0 {
			return fmt.Errorf("stop condition %q requires at least one requirement", s.Type)
		}
	case StopCombinational:
		if len(s.Requirements) > 0 {
			return fmt.Errorf("stop condition %q does not accept requirements", s.Type)
		}
		for _, child := range s.Children {
			if err := child.Validate(); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown stop condition type %q", s.Type)
	}
	return nil
}

// Coverage configures the socket.io feed reporting covered requirements.
type Coverage struct {
	URL                string
	Namespace          string
	Event              string
	InsecureSkipVerify bool
	// ConnectTimeout bounds the handshake; zero uses the feed default.
	ConnectTimeout time.Duration
	// Timeout bounds the wait for the stop condition; zero waits until cancelled.
	Timeout      time.Duration
	PollInterval time.Duration
}
