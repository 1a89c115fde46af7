package sse

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/event"
	"github.com/osse101/QuickCooking_Go/internal/logger"
	"github.com/osse101/QuickCooking_Go/internal/testing/leaktest"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub()
	h.Start()
	t.Cleanup(h.Stop)
	return h
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case e, ok := <-c.EventChannel:
		require.True(t, ok, "channel closed")
		return e
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestHub_FiltersByTypeAndSession(t *testing.T) {
	h := startHub(t)
	all := h.Register(nil, "")
	loops := h.Register([]string{"loop.completed"}, "")
	sessionA := h.Register(nil, "a")
	waitClients(t, h, 3)

	h.Broadcast("stage.completed", "b", nil)
	h.Broadcast("loop.completed", "a", nil)

	assert.Equal(t, "stage.completed", receive(t, all).Type)
	assert.Equal(t, "loop.completed", receive(t, all).Type)
	assert.Equal(t, "loop.completed", receive(t, loops).Type)
	got := receive(t, sessionA)
	assert.Equal(t, "loop.completed", got.Type)
	assert.Equal(t, "a", got.SessionID)
	assert.Empty(t, loops.EventChannel)
	assert.Empty(t, sessionA.EventChannel)
}

func TestHub_UnregisterAndStop(t *testing.T) {
	defer leaktest.Check(t, 0)()

	h := NewHub()
	h.Start()
	c1 := h.Register(nil, "")
	c2 := h.Register(nil, "")
	waitClients(t, h, 2)

	h.Unregister(c1.ID)
	waitClients(t, h, 1)
	_, ok := <-c1.EventChannel
	assert.False(t, ok)

	h.Stop()
	h.Stop()
	_, ok = <-c2.EventChannel
	assert.False(t, ok)
	assert.Equal(t, 0, h.ClientCount())

	late := h.Register(nil, "")
	_, ok = <-late.EventChannel
	assert.False(t, ok)
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "1", Type: "loop.completed", Timestamp: 5})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(msg), "id: 1\nevent: loop.completed\ndata: {"))
	assert.True(t, strings.HasSuffix(string(msg), "}\n\n"))
}

func TestSubscriber_ForwardsBusEvents(t *testing.T) {
	h := startHub(t)
	bus := event.NewMemoryBus()
	NewSubscriber(h, bus).Subscribe()

	c := h.Register([]string{string(event.LoopCompleted)}, "s-1")
	waitClients(t, h, 1)

	ctx := logger.WithSessionID(context.Background(), "s-1")
	require.NoError(t, bus.Publish(ctx, event.WithSession(ctx, event.NewStageCompletedEvent(1, domain.StageSelection, domain.StagePreparation))))
	require.NoError(t, bus.Publish(ctx, event.WithSession(ctx, event.NewLoopCompletedEvent(1, []domain.IngredientID{"apple"}))))

	got := receive(t, c)
	assert.Equal(t, string(event.LoopCompleted), got.Type)
	assert.Equal(t, "s-1", got.SessionID)
	assert.IsType(t, event.LoopCompletedPayloadV1{}, got.Payload)
}

// readEvent reads one "id/event/data" block and returns the event line and data
func readEvent(t *testing.T, r *bufio.Reader) (string, Event) {
	t.Helper()
	var typ string
	var e Event
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			return typ, e
		case strings.HasPrefix(line, "event: "):
			typ = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &e))
		}
	}
}

func TestHandler_Streams(t *testing.T) {
	h := startHub(t)
	srv := httptest.NewServer(Handler(h))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?types=loop.completed,%20stage.completed&session=abc", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	body := bufio.NewReader(resp.Body)
	typ, connected := readEvent(t, body)
	assert.Equal(t, EventTypeConnected, typ)
	assert.Equal(t, "abc", connected.SessionID)

	waitClients(t, h, 1)
	h.Broadcast("loop.completed", "other", nil)
	h.Broadcast("action.rejected", "abc", nil)
	h.Broadcast("stage.completed", "abc", map[string]int{"loop": 2})

	typ, got := readEvent(t, body)
	assert.Equal(t, "stage.completed", typ)
	assert.Equal(t, "abc", got.SessionID)

	cancel()
	waitClients(t, h, 0)
}
