package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/mbtgo/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErrCode  int
		expectedConfig *app.Config
		expectOutput   string
	}{
		{
			name: "all flags",
			args: []string{
				"-model", "/models",
				"-pattern", "*.graphml",
				"-config", "run.hcl",
				"-output", "out.graphml",
				"-summary", "summary.yaml",
				"-json", "model.json",
				"--log-level=DEBUG",
				"--log-format=text",
			},
			expectedConfig: &app.Config{
				ModelPath:   "/models",
				Pattern:     "*.graphml",
				ConfigPath:  "run.hcl",
				OutputPath:  "out.graphml",
				SummaryPath: "summary.yaml",
				JSONPath:    "model.json",
				LogLevel:    "debug",
				LogFormat:   "text",
			},
		},
		{
			name: "shorthand flags and defaults",
			args: []string{"-m", "/short", "-o", "merged.graphml"},
			expectedConfig: &app.Config{
				ModelPath:  "/short",
				OutputPath: "merged.graphml",
				LogLevel:   "info",
				LogFormat:  "json",
			},
		},
		{
			name: "positional path",
			args: []string{"/positional"},
			expectedConfig: &app.Config{
				ModelPath: "/positional",
				LogLevel:  "info",
				LogFormat: "json",
			},
		},
		{
			name: "run file only",
			args: []string{"-config", "run.hcl"},
			expectedConfig: &app.Config{
				ConfigPath: "run.hcl",
				LogLevel:   "info",
				LogFormat:  "json",
			},
		},
		{
			name:         "help flag",
			args:         []string{"-h"},
			expectExit:   true,
			expectOutput: "Usage:",
		},
		{
			name:         "no arguments prints usage",
			args:         []string{},
			expectExit:   true,
			expectOutput: "MODEL_PATH",
		},
		{
			name:          "unknown flag",
			args:          []string{"-nope"},
			expectErrCode: 2,
		},
		{
			name:          "invalid log format",
			args:          []string{"-log-format", "xml", "/m"},
			expectErrCode: 2,
		},
		{
			name:          "invalid log level",
			args:          []string{"-log-level", "trace", "/m"},
			expectErrCode: 2,
		},
		{
			name:          "extra positional arguments",
			args:          []string{"/a", "/b"},
			expectErrCode: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			var out bytes.Buffer

			// --- Act ---
			cfg, shouldExit, err := Parse(tc.args, &out)

			// --- Assert ---
			if tc.expectErrCode != 0 {
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
				assert.Equal(t, tc.expectErrCode, exitErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectExit, shouldExit)
			if tc.expectOutput != "" {
				assert.Contains(t, out.String(), tc.expectOutput)
			}
			if diff := cmp.Diff(tc.expectedConfig, cfg); diff != "" {
				t.Errorf("Parse() config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
