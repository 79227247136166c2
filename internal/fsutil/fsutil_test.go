package fsutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return root
}

func TestFindFiles(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := writeTree(t, map[string]string{
		"main.graphml":         "<graphml/>",
		"sub/login.graphml":    "<graphml/>",
		"sub/deep/x.graphml":   "<graphml/>",
		"notes.txt":            "ignored",
		"sub/login.graphml.bk": "ignored",
	})
	fs := New()

	// --- Act ---
	files, err := fs.FindFiles(context.Background(), root, "")

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, filepath.Join(root, "main.graphml"), files[0])
	assert.Equal(t, filepath.Join(root, "sub", "deep", "x.graphml"), files[1])
	assert.Equal(t, filepath.Join(root, "sub", "login.graphml"), files[2])
}

func TestFindFiles_CustomPattern(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"main.graphml":      "<graphml/>",
		"sub/login.graphml": "<graphml/>",
	})

	files, err := New().FindFiles(context.Background(), root, "sub/*.graphml")

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "sub", "login.graphml")}, files)
}

func TestFindFiles_SingleFile(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"only.graphml": "<graphml/>"})
	file := filepath.Join(root, "only.graphml")

	files, err := New().FindFiles(context.Background(), file, "")

	require.NoError(t, err)
	assert.Equal(t, []string{file}, files)
}

func TestFindFiles_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := New().FindFiles(context.Background(), t.TempDir(), "[")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file pattern")
}

func TestReadWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	target := filepath.Join(t.TempDir(), "out", "merged.graphml")
	fs := New()

	require.NoError(t, fs.Write(ctx, target, []byte("<graphml/>")))
	data, err := fs.Read(ctx, target)

	require.NoError(t, err)
	assert.Equal(t, "<graphml/>", string(data))
}
