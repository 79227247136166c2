package fsutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/specialistvlad/mbtgo/internal/ctxlog"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// DefaultPattern selects every GraphML file below a directory.
const DefaultPattern = "**/*.graphml"

// FS reads and writes files through an afs.Service.
type FS struct {
	service afs.Service
}

// New returns an FS backed by the default afs service.
func New() *FS {
	return &FS{service: afs.New()}
}

// FindFiles returns the files below root whose path relative to root matches
// the doublestar pattern, sorted so load order is stable. When root is a file
// it is returned as is, whatever the pattern.
func (f *FS) FindFiles(ctx context.Context, root, pattern string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid file pattern %q", pattern)
	}

	location := toURL(root)
	object, err := f.service.Object(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", root, err)
	}
	if !object.IsDir() {
		logger.Debug("Model path is a single file.", "path", root)
		return []string{root}, nil
	}

	var files []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		rel := path.Join(parent, info.Name())
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, err
		}
		if ok {
			files = append(files, fromURL(url.Join(baseURL, rel)))
		}
		return true, nil
	}
	if err := f.service.Walk(ctx, location, visitor); err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(files)
	logger.Debug("Discovered model files.", "root", root, "pattern", pattern, "count", len(files))
	return files, nil
}

// Read returns the content of the file at p.
func (f *FS) Read(ctx context.Context, p string) ([]byte, error) {
	data, err := f.service.DownloadWithURL(ctx, toURL(p))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, nil
}

// Write stores data at p, creating parent directories as needed.
func (f *FS) Write(ctx context.Context, p string, data []byte) error {
	if err := f.service.Upload(ctx, toURL(p), 0644, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", p, err)
	}
	ctxlog.FromContext(ctx).Debug("File written.", "path", p, "bytes", len(data))
	return nil
}

// toURL turns a local path into an absolute file URL. Anything that already
// carries a scheme is passed through.
func toURL(p string) string {
	if strings.Contains(p, "://") {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return "file://" + filepath.ToSlash(p)
}

func fromURL(u string) string {
	if strings.HasPrefix(u, "file://") {
		return filepath.FromSlash(url.Path(u))
	}
	return u
}
