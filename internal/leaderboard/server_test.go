package leaderboard

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/storage"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewLocal(store, config.DefaultSkyraidConfig().Leaderboard)
}

// newTestServer starts the routes and the hub; both stop with the test.
func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(newTestLocal(t), config.DefaultSkyraidConfig(), log.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	go s.Hub().Run(ctx)

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return s, srv
}

func postScore(t *testing.T, srv *httptest.Server, body string) (*http.Response, saveResponse) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/save-score", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out saveResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "Anonymous"},
		{"   ", "Anonymous"},
		{" ace ", "ace"},
		{"abcdefghijklmnopqrstuvwxyz", "abcdefghijklmnop"},
		{"ÄÖÜäöüßÄÖÜäöüßÄÖÜ", "ÄÖÜäöüßÄÖÜäöüßÄÖ"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in, DefaultName, DefaultMaxNameLen), "input %q", tt.in)
	}
	assert.Equal(t, "abc", NormalizeName("abc", DefaultName, 0))
}

func TestLocalBoard(t *testing.T) {
	b := newTestLocal(t)
	ctx := context.Background()

	scores, err := b.FetchTopScores(ctx)
	require.NoError(t, err)
	assert.Empty(t, scores)

	for i := range 12 {
		ok, err := b.SubmitScore(ctx, "p", (i+1)*10)
		require.NoError(t, err)
		require.True(t, ok)
	}
	_, err = b.SubmitScore(ctx, "", 5)
	require.NoError(t, err)

	scores, err = b.FetchTopScores(ctx)
	require.NoError(t, err)
	require.Len(t, scores, DefaultTopN)
	assert.Equal(t, 120, scores[0].Score)
	assert.Equal(t, 30, scores[9].Score)

	_, err = time.Parse(DateLayout, scores[0].Date)
	assert.NoError(t, err, "date %q", scores[0].Date)

	_, err = b.SubmitScore(ctx, "neg", -1)
	assert.Error(t, err)
}

func TestHighScoresEmptyIsArray(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/high-scores")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(body))
}

func TestSaveScore(t *testing.T) {
	_, srv := newTestServer(t)

	resp, out := postScore(t, srv, `{"name":"ace","score":150}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, out.Success)
	require.Len(t, out.Scores, 1)
	assert.Equal(t, "ace", out.Scores[0].Name)
	assert.Equal(t, 150, out.Scores[0].Score)

	_, out = postScore(t, srv, `{"score":300}`)
	require.Len(t, out.Scores, 2)
	assert.Equal(t, "Anonymous", out.Scores[0].Name, "missing name should default")

	_, out = postScore(t, srv, `{"name":"zero"}`)
	require.Len(t, out.Scores, 3)
	assert.Equal(t, 0, out.Scores[2].Score, "missing score should default to 0")
}

func TestSaveScoreRejectsBadInput(t *testing.T) {
	_, srv := newTestServer(t)

	resp, out := postScore(t, srv, `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, out.Success)
	assert.NotEmpty(t, out.Error)

	resp, out = postScore(t, srv, `{"name":"x","score":-5}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, out.Success)
}

func TestMethodNotAllowed(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/save-score")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestGameState(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/game-state")
	require.NoError(t, err)
	defer resp.Body.Close()

	var gs GameState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&gs))
	assert.Equal(t, PlayerTuning{X: 375, Y: 500, Speed: 5, Health: 100}, gs.Player)
	require.Len(t, gs.Enemies, 3)
	assert.Equal(t, EnemyTuning{Type: "tank", Speed: 1, Health: 50, Points: 25}, gs.Enemies[2])
	assert.Equal(t, 7.0, gs.Bullets.PlayerSpeed)
	require.Len(t, gs.Powerups, 3)
	assert.Equal(t, PowerupTuning{Type: "health", Effect: 25}, gs.Powerups[0])
}

func readUpdate(t *testing.T, conn *websocket.Conn) LiveUpdate {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second)) //nolint:errcheck
	kind, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.BinaryMessage, kind)

	var upd LiveUpdate
	require.NoError(t, msgpack.Unmarshal(data, &upd))
	return upd
}

func TestLiveFeed(t *testing.T) {
	s, srv := newTestServer(t)
	postScore(t, srv, `{"name":"first","score":10}`)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	upd := readUpdate(t, conn)
	require.Len(t, upd.Scores, 1, "initial frame carries the current board")
	assert.Equal(t, "first", upd.Scores[0].Name)

	require.Eventually(t, func() bool { return s.Hub().ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	postScore(t, srv, `{"name":"second","score":20}`)
	upd = readUpdate(t, conn)
	require.Len(t, upd.Scores, 2)
	assert.Equal(t, "second", upd.Scores[0].Name)
	assert.NotZero(t, upd.At)

	conn.Close()
	assert.Eventually(t, func() bool { return s.Hub().ClientCount() == 0 },
		time.Second, 10*time.Millisecond)
}

func TestLiveRejectsForeignOrigin(t *testing.T) {
	_, srv := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/live"
	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestServerRunShutdown(t *testing.T) {
	s := NewServer(newTestLocal(t), config.DefaultSkyraidConfig(), log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestServerAsBoardBroadcasts(t *testing.T) {
	s, srv := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	readUpdate(t, conn)
	require.Eventually(t, func() bool { return s.Hub().ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	ok, err := s.SubmitScore(context.Background(), "ssh-player", 77)
	require.NoError(t, err)
	assert.True(t, ok)

	upd := readUpdate(t, conn)
	require.Len(t, upd.Scores, 1)
	assert.Equal(t, "ssh-player", upd.Scores[0].Name)

	scores, err := s.FetchTopScores(context.Background())
	require.NoError(t, err)
	assert.Len(t, scores, 1)
}
