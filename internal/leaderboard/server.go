package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/skyraid/internal/config"
)

const (
	maxBodyBytes    = 4096
	shutdownTimeout = 5 * time.Second
)

// Server exposes a Board over HTTP.
//
//	GET  /api/high-scores  top scores as JSON
//	POST /api/save-score   {"name", "score"} -> {"success", "scores"}
//	GET  /api/game-state   tuning table
//	GET  /api/live         websocket, msgpack LiveUpdate frames
type Server struct {
	board    Board
	cfg      config.SkyraidConfig
	hub      *Hub
	log      *log.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a server for board. The hub is started by Run, or by
// the caller via Hub().Run when only Handler is used.
func NewServer(board Board, cfg config.SkyraidConfig, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		board: board,
		cfg:   cfg,
		hub:   NewHub(logger),
		log:   logger,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     sameOrigin,
	}
	return s
}

// Hub returns the live feed hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/high-scores", s.handleHighScores)
	mux.HandleFunc("POST /api/save-score", s.handleSaveScore)
	mux.HandleFunc("GET /api/game-state", s.handleGameState)
	mux.HandleFunc("GET /api/live", s.handleLive)
	return mux
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go s.hub.Run(hubCtx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting leaderboard server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Stopping leaderboard server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type saveRequest struct {
	Name  string `json:"name"`
	Score *int   `json:"score"`
}

type saveResponse struct {
	Success bool    `json:"success"`
	Scores  []Entry `json:"scores,omitempty"`
	Error   string  `json:"error,omitempty"`
}

func (s *Server) handleHighScores(w http.ResponseWriter, r *http.Request) {
	scores, err := s.board.FetchTopScores(r.Context())
	if err != nil {
		s.log.Error("fetch high scores", "err", err)
		writeJSON(w, http.StatusInternalServerError, saveResponse{Error: "cannot load scores"})
		return
	}
	if scores == nil {
		scores = []Entry{}
	}
	writeJSON(w, http.StatusOK, scores)
}

func (s *Server) handleSaveScore(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, saveResponse{Error: "invalid JSON body"})
		return
	}
	score := 0
	if req.Score != nil {
		score = *req.Score
	}
	if score < 0 {
		writeJSON(w, http.StatusBadRequest, saveResponse{Error: "score must not be negative"})
		return
	}

	scores, err := s.submit(r.Context(), req.Name, score)
	if err != nil {
		s.log.Error("save score", "name", req.Name, "score", score, "err", err)
		writeJSON(w, http.StatusInternalServerError, saveResponse{Error: "cannot save score"})
		return
	}
	writeJSON(w, http.StatusOK, saveResponse{Success: true, Scores: scores})
}

// FetchTopScores returns the served board's top scores.
func (s *Server) FetchTopScores(ctx context.Context) ([]Entry, error) {
	return s.board.FetchTopScores(ctx)
}

// SubmitScore records a score and pushes the new top list to live
// subscribers, so in-process players show up on the feed too.
func (s *Server) SubmitScore(ctx context.Context, name string, score int) (bool, error) {
	if _, err := s.submit(ctx, name, score); err != nil {
		return false, err
	}
	return true, nil
}

// submit saves a score, then broadcasts and returns the new top list.
func (s *Server) submit(ctx context.Context, name string, score int) ([]Entry, error) {
	ok, err := s.board.SubmitScore(ctx, name, score)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSubmitRejected
	}

	scores, err := s.board.FetchTopScores(ctx)
	if err != nil {
		return nil, err
	}
	if scores == nil {
		scores = []Entry{}
	}
	s.log.Info("Score saved", "name", name, "score", score)

	if err := s.hub.Broadcast(scores); err != nil {
		s.log.Warn("broadcast scores", "err", err)
	}
	return scores, nil
}

func (s *Server) handleGameState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, NewGameState(s.cfg))
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	scores, err := s.board.FetchTopScores(r.Context())
	if err != nil {
		s.log.Error("fetch high scores", "err", err)
		http.Error(w, "cannot load scores", http.StatusInternalServerError)
		return
	}
	initial, err := encodeUpdate(scores)
	if err != nil {
		http.Error(w, "cannot encode scores", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", "remote", r.RemoteAddr, "err", err)
		return
	}
	s.hub.attach(conn, initial)
}

// sameOrigin accepts requests without an Origin header and those whose
// Origin host matches the request host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

var _ Board = (*Server)(nil)
