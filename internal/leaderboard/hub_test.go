package leaderboard

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubAttachAfterStopClosesConn(t *testing.T) {
	h := NewHub(log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	initial, err := encodeUpdate([]Entry{{Name: "late", Score: 1}})
	require.NoError(t, err)

	var upgrader websocket.Upgrader
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.attach(conn, initial)
	}))
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	// A subscriber queued on a stopped hub would receive the initial frame.
	for range 20 {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.NoError(t, err)

		conn.SetReadDeadline(time.Now().Add(2 * time.Second)) //nolint:errcheck
		_, _, err = conn.ReadMessage()
		conn.Close()

		require.Error(t, err, "no frame may reach a subscriber of a stopped hub")
		var netErr net.Error
		if errors.As(err, &netErr) {
			require.False(t, netErr.Timeout(), "connection should be closed, not left open")
		}
	}
	assert.Zero(t, h.ClientCount())
}
