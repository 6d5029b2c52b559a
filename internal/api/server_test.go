package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/flashpuzzle/internal/api"
	"github.com/mcoot/flashpuzzle/internal/testutil"
)

func TestServerLifecycle(t *testing.T) {
	ts := newTestServer(t)

	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	server := api.NewServer(ts.handler, cfg, testutil.NopLogger())

	shutdownHooked := make(chan struct{})
	server.OnShutdown(func() { close(shutdownHooked) })

	require.NoError(t, server.Listen())
	assert.NotEqual(t, "127.0.0.1:0", server.Addr())

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	resp, err := http.Get("http://" + server.Addr() + "/api/v1/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, server.Shutdown(context.Background()))
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	select {
	case <-shutdownHooked:
	case <-time.After(time.Second):
		t.Fatal("shutdown hook not run")
	}
}
