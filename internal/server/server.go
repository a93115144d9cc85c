package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/cubebluff/internal/game"
	"github.com/lox/cubebluff/internal/room"
)

const pruneInterval = 10 * time.Minute

// Server exposes the room manager over HTTP and WebSocket.
type Server struct {
	config  *Config
	rooms   *room.Manager
	logger  *log.Logger
	httpSrv *http.Server
}

// NewServer creates a new server backed by the given room manager.
func NewServer(config *Config, rooms *room.Manager, logger *log.Logger) *Server {
	s := &Server{
		config: config,
		rooms:  rooms,
		logger: logger.WithPrefix("server"),
	}
	s.httpSrv = &http.Server{
		Addr:              config.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/rooms", s.handleCreateRoom)
	mux.HandleFunc("GET /api/rooms/{code}", s.handleGetRoom)
	mux.HandleFunc("POST /api/rooms/{code}/join", s.handleJoin)
	mux.HandleFunc("POST /api/rooms/{code}/start", s.handleStart)
	mux.HandleFunc("POST /api/rooms/{code}/restart", s.handleRestart)
	mux.HandleFunc("POST /api/rooms/{code}/settings", s.handleSettings)
	mux.HandleFunc("POST /api/rooms/{code}/roll", s.handleRoll)
	mux.HandleFunc("POST /api/rooms/{code}/claim", s.handleClaim)
	mux.HandleFunc("POST /api/rooms/{code}/bluff", s.handleBluff)
	mux.HandleFunc("POST /api/rooms/{code}/pass", s.handlePass)
	mux.HandleFunc("POST /api/rooms/{code}/vote", s.handleVote)
	mux.HandleFunc("POST /api/client", s.handleNewClient)
	mux.HandleFunc("GET /api/rooms/{code}/ws", s.handleWatch)
	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Start runs the HTTP server until the context is cancelled, then shuts
// down gracefully. An idle-room janitor runs alongside the listener.
func (s *Server) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting server", "addr", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		s.pruneLoop(ctx)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.rooms.PruneIdle(s.config.IdleTimeout()); n > 0 {
				s.logger.Info("Pruned idle rooms", "count", n)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Rooms: s.rooms.Count()})
}

func (s *Server) handleNewClient(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, clientIDResponse{ClientID: room.NewClientID()})
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if !decodeBody(w, r, &req) {
		return
	}
	clientID := req.ClientID
	if clientID == "" {
		clientID = room.NewClientID()
	}
	tokens := req.Tokens
	if tokens == 0 {
		tokens = s.config.Rooms.DefaultTokens
	}

	rm, err := s.rooms.Create(clientID, req.Nickname, room.Settings{StartingTokens: tokens})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("Room created", "code", rm.Code, "host", req.Nickname)
	writeJSON(w, http.StatusCreated, createRoomResponse{Code: rm.Code, ClientID: clientID})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	rm, err := s.rooms.Get(r.PathValue("code"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rm.Snapshot(r.URL.Query().Get("clientId")))
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	rm, ok := s.roomAndBody(w, r, &req)
	if !ok {
		return
	}
	if err := rm.Join(req.ClientID, req.Nickname); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rm.Snapshot(req.ClientID))
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	rm, ok := s.roomAndBody(w, r, &req)
	if !ok {
		return
	}
	if err := rm.Start(req.ClientID); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("Game started", "code", rm.Code)
	writeJSON(w, http.StatusOK, rm.Snapshot(req.ClientID))
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	rm, ok := s.roomAndBody(w, r, &req)
	if !ok {
		return
	}
	if err := rm.Restart(req.ClientID, req.Nickname); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rm.Snapshot(req.ClientID))
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	rm, ok := s.roomAndBody(w, r, &req)
	if !ok {
		return
	}
	if err := rm.UpdateSettings(req.ClientID, room.Settings{StartingTokens: req.Tokens}); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rm.Snapshot(req.ClientID))
}

func (s *Server) handleRoll(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	rm, ok := s.roomAndBody(w, r, &req)
	if !ok {
		return
	}
	roll, _, err := rm.Roll(req.ClientID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rollResponse{Roll: roll, Snapshot: rm.Snapshot(req.ClientID)})
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	rm, ok := s.roomAndBody(w, r, &req)
	if !ok {
		return
	}
	if _, err := rm.Claim(req.ClientID, req.Die1, req.Die2); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rm.Snapshot(req.ClientID))
}

func (s *Server) handleBluff(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	rm, ok := s.roomAndBody(w, r, &req)
	if !ok {
		return
	}
	revealed, _, err := rm.CallBluff(req.ClientID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bluffResponse{Revealed: revealed, Snapshot: rm.Snapshot(req.ClientID)})
}

func (s *Server) handlePass(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	rm, ok := s.roomAndBody(w, r, &req)
	if !ok {
		return
	}
	if _, err := rm.Pass(req.ClientID); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rm.Snapshot(req.ClientID))
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	rm, ok := s.roomAndBody(w, r, &req)
	if !ok {
		return
	}
	if _, err := rm.Vote(req.ClientID, req.Vote); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rm.Snapshot(req.ClientID))
}

// roomAndBody resolves the room from the path and decodes the request
// body in one step, writing the error response itself on failure.
func (s *Server) roomAndBody(w http.ResponseWriter, r *http.Request, dst any) (*room.Room, bool) {
	rm, err := s.rooms.Get(r.PathValue("code"))
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	if !decodeBody(w, r, dst) {
		return nil, false
	}
	return rm, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, room.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, room.ErrNotHost),
		errors.Is(err, room.ErrNotInRoom),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrOwnClaim):
		status = http.StatusForbidden
	case errors.Is(err, room.ErrRoomFull),
		errors.Is(err, room.ErrNameTaken),
		errors.Is(err, room.ErrGameStarted),
		errors.Is(err, game.ErrWrongPhase):
		status = http.StatusConflict
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && !isBrokenPipe(err) {
		log.Error("Failed to write response", "error", err)
	}
}

func isBrokenPipe(err error) bool {
	return strings.Contains(err.Error(), "broken pipe") ||
		strings.Contains(err.Error(), "connection reset")
}
