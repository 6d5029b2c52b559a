package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/flashpuzzle/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{"single line data", "word_found", `{"a":1}`, "event: word_found\ndata: {\"a\":1}\n\n"},
		{"multi-line data", "test", "line1\nline2", "event: test\ndata: line1\ndata: line2\n\n"},
		{"empty data", "ping", "", "event: ping\ndata: \n\n"},
		{"carriage returns", "test", "line1\r\nline2\r\n", "event: test\ndata: line1\ndata: line2\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(formatSSEMessage(tt.eventName, tt.data)))
		})
	}
}

func newHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub("session-1", testutil.NopLogger())
	go hub.Run()
	t.Cleanup(hub.Close)
	return hub
}

func TestHubRegisterAndBroadcast(t *testing.T) {
	hub := newHub(t)

	client := NewClient(hub)
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.BroadcastEvent("test-event", "test data")

	select {
	case msg := <-client.send:
		assert.Equal(t, "event: test-event\ndata: test data\n\n", string(msg))
	case <-time.After(time.Second):
		t.Fatal("client did not receive message")
	}
}

func TestHubBroadcastToMultipleClients(t *testing.T) {
	hub := newHub(t)

	clients := []*Client{NewClient(hub), NewClient(hub), NewClient(hub)}
	for _, c := range clients {
		hub.Register(c)
	}
	require.Eventually(t, func() bool { return hub.ClientCount() == 3 }, time.Second, 5*time.Millisecond)

	hub.BroadcastEvent("update", "data")

	for i, c := range clients {
		select {
		case msg := <-c.send:
			assert.Equal(t, "event: update\ndata: data\n\n", string(msg))
		case <-time.After(time.Second):
			t.Fatalf("client %d did not receive message", i)
		}
	}
}

func TestHubUnregister(t *testing.T) {
	hub := newHub(t)

	client := NewClient(hub)
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Unregister(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-client.send
	assert.False(t, ok, "send channel should be closed")
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	hub := NewHub("session-1", testutil.NopLogger())
	go hub.Run()

	client := NewClient(hub)
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Close()

	select {
	case _, ok := <-client.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("client was not disconnected")
	}

	// Unregistering after close must not block
	hub.Unregister(client)
}

func TestHubManager(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	assert.Nil(t, manager.GetHub("missing"))

	hub1 := manager.GetOrCreateHub("a")
	assert.Same(t, hub1, manager.GetOrCreateHub("a"))
	assert.Same(t, hub1, manager.GetHub("a"))
	assert.NotSame(t, hub1, manager.GetOrCreateHub("b"))
	assert.Equal(t, 2, manager.HubCount())

	manager.RemoveHub("a")
	assert.Nil(t, manager.GetHub("a"))
	manager.RemoveHub("missing")

	manager.RemoveHub("b")
	assert.Equal(t, 0, manager.HubCount())
}

func TestHubManagerCleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	manager.GetOrCreateHub("empty")
	active := manager.GetOrCreateHub("active")
	active.Register(NewClient(active))
	require.Eventually(t, func() bool { return active.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, manager.CleanupEmptyHubs())
	assert.Nil(t, manager.GetHub("empty"))
	assert.NotNil(t, manager.GetHub("active"))

	manager.RemoveHub("active")
}

func TestServeSSE(t *testing.T) {
	hub := newHub(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeSSE(w, r, hub)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEvent := func() string {
		var lines []string
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if line == "\n" {
				return strings.Join(lines, "")
			}
			lines = append(lines, line)
		}
	}

	assert.Equal(t, "event: connected\ndata: {\"status\":\"connected\"}\n", readEvent())

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	hub.BroadcastEvent("word_found", `{"word_index":0}`)
	assert.Equal(t, "event: word_found\ndata: {\"word_index\":0}\n", readEvent())
}

func TestHubManagerCloseAll(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	hub := manager.GetOrCreateHub("a")
	manager.GetOrCreateHub("b")

	client := NewClient(hub)
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	manager.CloseAll()
	assert.Equal(t, 0, manager.HubCount())

	select {
	case _, ok := <-client.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("client channel not closed")
	}
}
