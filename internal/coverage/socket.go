package coverage

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/specialistvlad/mbtgo/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	// DefaultEvent is the event name carrying covered requirement tags.
	DefaultEvent = "requirements"
	// DefaultConnectTimeout bounds the wait for the initial handshake.
	DefaultConnectTimeout = 15 * time.Second
)

// ErrFeedClosed is returned when Connect is called on a closed feed.
var ErrFeedClosed = errors.New("coverage feed is closed")

// FeedConfig describes the socket.io endpoint publishing coverage.
type FeedConfig struct {
	URL                string
	Namespace          string
	Event              string
	InsecureSkipVerify bool
	Timeout            time.Duration
}

// SocketFeed subscribes to a socket.io event and records every requirement
// tag it receives in a Tracker.
type SocketFeed struct {
	cfg     FeedConfig
	tracker *Tracker

	mu     sync.Mutex
	io     *socket.Socket
	closed bool
}

// NewSocketFeed validates cfg and returns an unconnected feed.
func NewSocketFeed(cfg FeedConfig, tracker *Tracker) (*SocketFeed, error) {
	if tracker == nil {
		return nil, fmt.Errorf("coverage tracker must not be nil")
	}
	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse coverage URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("coverage URL %q must be absolute", cfg.URL)
	}
	if cfg.Event == "" {
		cfg.Event = DefaultEvent
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConnectTimeout
	}
	return &SocketFeed{cfg: cfg, tracker: tracker}, nil
}

// Config returns the effective configuration.
func (f *SocketFeed) Config() FeedConfig {
	return f.cfg
}

// Connect dials the endpoint and blocks until the handshake succeeds,
// fails, times out, or ctx is cancelled.
func (f *SocketFeed) Connect(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrFeedClosed
	}
	f.mu.Unlock()

	logger := ctxlog.FromContext(ctx).With("component", "coverage_feed", "url", f.cfg.URL)
	logger.Info("Connecting to coverage feed...")

	parsedURL, err := url.Parse(f.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to parse coverage URL: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if f.cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(f.cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to coverage feed", "sid", io.Id())
		signalConnect(connectChan, nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		var err error = errors.New("unknown connect error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		logger.Debug("Coverage feed connect_error", "error", err)
		signalConnect(connectChan, err)
	})
	io.On(types.EventName(f.cfg.Event), func(data ...any) {
		added := f.handleEvent(data...)
		logger.Debug("Coverage event received.", "new_tags", added, "covered", f.tracker.Len())
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(f.cfg.Timeout):
		io.Disconnect()
		return fmt.Errorf("timed out after %s waiting for socket.io connection", f.cfg.Timeout)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		io.Disconnect()
		return ErrFeedClosed
	}
	f.io = io
	return nil
}

// Close disconnects the feed. It is safe to call more than once.
func (f *SocketFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	if f.io != nil {
		f.io.Disconnect()
		f.io = nil
	}
	return nil
}

// signalConnect reports the first handshake outcome. Later outcomes are
// dropped so a handler never blocks once Connect stopped listening.
func signalConnect(ch chan<- error, err error) bool {
	select {
	case ch <- err:
		return true
	default:
		return false
	}
}

// handleEvent records the tags carried by one event payload and returns
// how many were new.
func (f *SocketFeed) handleEvent(data ...any) int {
	added := 0
	for _, d := range data {
		added += f.tracker.Cover(extractTags(d)...)
	}
	return added
}

// extractTags accepts a comma-separated string, a list of strings, or an
// object with a "requirements" member holding either.
func extractTags(payload any) []string {
	switch v := payload.(type) {
	case string:
		return strings.Split(v, ",")
	case []string:
		return v
	case []any:
		var out []string
		for _, item := range v {
			out = append(out, extractTags(item)...)
		}
		return out
	case map[string]any:
		if reqs, ok := v["requirements"]; ok {
			return extractTags(reqs)
		}
	}
	return nil
}
