package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/mbtgo/internal/builder"
	"github.com/specialistvlad/mbtgo/internal/ctxlog"
	"github.com/specialistvlad/mbtgo/internal/fsutil"
	"github.com/specialistvlad/mbtgo/internal/graphml"
	"github.com/specialistvlad/mbtgo/internal/model"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcome of a merge run.
type HarnessResult struct {
	Dir       string
	Files     []string
	Graphs    []*model.Graph
	LogOutput string
	Model     *model.Graph
	Session   *builder.Session
	Err       error
}

// WriteFiles writes files (relative name -> content) below a fresh temp dir
// and returns the dir.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return dir
}

// Context returns a context carrying a debug logger that writes to buf.
func Context(buf *SafeBuffer) context.Context {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger)
}

// RunMerge writes files to disk, loads them in path order through one session
// and merges them. Load errors are reported through Err like merge errors.
func RunMerge(t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()

	dir := WriteFiles(t, files)
	buf := &SafeBuffer{}
	ctx := Context(buf)
	fs := fsutil.New()

	paths, err := fs.FindFiles(ctx, dir, fsutil.DefaultPattern)
	require.NoError(t, err)

	session, err := builder.NewSession()
	require.NoError(t, err)

	result := &HarnessResult{Dir: dir, Files: paths, Session: session}
	loader := graphml.NewLoader(session.Allocator(), fs)
	var graphs []*model.Graph
	for _, p := range paths {
		g, err := loader.LoadFile(ctx, p)
		if err != nil {
			result.Err = err
			result.LogOutput = buf.String()
			return result
		}
		graphs = append(graphs, g)
	}

	result.Graphs = graphs
	result.Model, result.Err = session.Merge(ctx, graphs)
	result.LogOutput = buf.String()
	return result
}
