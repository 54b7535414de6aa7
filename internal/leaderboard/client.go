package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrSubmitRejected is returned when the server answers success=false.
var ErrSubmitRejected = errors.New("leaderboard: score rejected")

// Client talks to a remote leaderboard server.
type Client struct {
	baseURL string
	http    *http.Client
	dialer  *websocket.Dialer
}

// NewClient creates a client for the server at baseURL, e.g. "http://host:8080".
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		dialer:  &websocket.Dialer{HandshakeTimeout: timeout},
	}
}

// FetchTopScores returns the server's top scores.
func (c *Client) FetchTopScores(ctx context.Context) ([]Entry, error) {
	var scores []Entry
	if err := c.do(ctx, http.MethodGet, "/api/high-scores", nil, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

// SubmitScore posts a score.
func (c *Client) SubmitScore(ctx context.Context, name string, score int) (bool, error) {
	body, err := json.Marshal(map[string]any{"name": name, "score": score})
	if err != nil {
		return false, fmt.Errorf("leaderboard: encode request: %w", err)
	}

	var resp saveResponse
	if err := c.do(ctx, http.MethodPost, "/api/save-score", body, &resp); err != nil {
		return false, err
	}
	if !resp.Success {
		return false, ErrSubmitRejected
	}
	return true, nil
}

// FetchGameState returns the server's tuning table.
func (c *Client) FetchGameState(ctx context.Context) (GameState, error) {
	var gs GameState
	err := c.do(ctx, http.MethodGet, "/api/game-state", nil, &gs)
	return gs, err
}

// Watch subscribes to the live feed and calls fn for every update until ctx
// is canceled or the connection fails. A canceled ctx returns nil.
func (c *Client) Watch(ctx context.Context, fn func([]Entry)) error {
	wsURL := "ws" + strings.TrimPrefix(c.baseURL, "http") + "/api/live"
	conn, _, err := c.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("leaderboard: dial live feed: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		conn.WriteControl(websocket.CloseMessage, //nolint:errcheck
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		conn.Close()
	})
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("leaderboard: live feed: %w", err)
		}

		var upd LiveUpdate
		if err := msgpack.Unmarshal(data, &upd); err != nil {
			return fmt.Errorf("leaderboard: decode update: %w", err)
		}
		fn(upd.Scores)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("leaderboard: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("leaderboard: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("leaderboard: %s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("leaderboard: decode %s: %w", path, err)
	}
	return nil
}

var _ Board = (*Client)(nil)
