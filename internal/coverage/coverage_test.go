package coverage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/specialistvlad/mbtgo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_Cover(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tr := NewTracker()

	// --- Act ---
	first := tr.Cover("R2", " R1 ", "", "R2")
	second := tr.Cover("R1", "R3")

	// --- Assert ---
	assert.Equal(t, 2, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, []string{"R1", "R2", "R3"}, tr.CoveredRequirements())
	assert.Equal(t, 3, tr.Len())

	tr.Reset()
	assert.Empty(t, tr.CoveredRequirements())
}

func TestTracker_VisitElements(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	tr.VisitVertex(&model.Vertex{ReqTags: []string{"V1"}})
	tr.VisitEdge(&model.Edge{ReqTags: []string{"E1", "V1"}})
	tr.VisitVertex(nil)
	tr.VisitEdge(nil)

	assert.Equal(t, []string{"E1", "V1"}, tr.CoveredRequirements())
}

func TestTracker_ConcurrentCover(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Cover("A", "B", "C")
			_ = tr.CoveredRequirements()
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, tr.Len())
}

func TestSocketFeed_HandleEvent(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		payload []any
		want    []string
	}{
		{name: "comma string", payload: []any{"R1, R2"}, want: []string{"R1", "R2"}},
		{name: "list", payload: []any{[]any{"R1", "R3"}}, want: []string{"R1", "R3"}},
		{name: "object", payload: []any{map[string]any{"requirements": []any{"R4"}}}, want: []string{"R4"}},
		{name: "several args", payload: []any{"R1", []string{"R2"}}, want: []string{"R1", "R2"}},
		{name: "unknown shape", payload: []any{42, map[string]any{"other": "R1"}}, want: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tr := NewTracker()
			feed, err := NewSocketFeed(FeedConfig{URL: "http://localhost:3000/socket.io/"}, tr)
			require.NoError(t, err)

			feed.handleEvent(tc.payload...)

			assert.Equal(t, tc.want, tr.CoveredRequirements())
		})
	}
}

func TestNewSocketFeed_Defaults(t *testing.T) {
	t.Parallel()

	feed, err := NewSocketFeed(FeedConfig{URL: "ws://localhost:3000/socket.io/"}, NewTracker())
	require.NoError(t, err)

	cfg := feed.Config()
	assert.Equal(t, DefaultEvent, cfg.Event)
	assert.Equal(t, "/", cfg.Namespace)
	assert.Equal(t, DefaultConnectTimeout, cfg.Timeout)
}

func TestNewSocketFeed_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewSocketFeed(FeedConfig{URL: "localhost"}, NewTracker())
	assert.Error(t, err)

	_, err = NewSocketFeed(FeedConfig{URL: "http://localhost"}, nil)
	assert.Error(t, err)
}

func TestSocketFeed_ConnectAfterClose(t *testing.T) {
	t.Parallel()

	feed, err := NewSocketFeed(FeedConfig{URL: "http://localhost:1", Timeout: time.Second}, NewTracker())
	require.NoError(t, err)
	require.NoError(t, feed.Close())
	require.NoError(t, feed.Close())

	err = feed.Connect(context.Background())
	assert.ErrorIs(t, err, ErrFeedClosed)
}

func TestSignalConnect_DropsLaterOutcomes(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ch := make(chan error, 1)
	first := errors.New("refused")

	// --- Act ---
	done := make(chan [2]bool, 1)
	go func() {
		done <- [2]bool{signalConnect(ch, first), signalConnect(ch, nil)}
	}()

	// --- Assert ---
	select {
	case sent := <-done:
		assert.True(t, sent[0])
		assert.False(t, sent[1])
	case <-time.After(time.Second):
		t.Fatal("signalConnect blocked on a full channel")
	}
	assert.Equal(t, first, <-ch)
}
