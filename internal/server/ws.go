package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/cubebluff/internal/room"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// How often watchers check the room for new state
	pollInterval = 250 * time.Millisecond
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// For development, allow all origins
		// In production, implement proper origin checking
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// handleWatch upgrades the request to a WebSocket and streams room
// snapshots to the client whenever the room state changes.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	rm, err := s.rooms.Get(r.PathValue("code"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	watcher := newWatcher(conn, rm, r.URL.Query().Get("clientId"), s.logger)
	watcher.Start()
}

// watcher streams snapshots of a single room to one WebSocket client.
// The viewer's client ID controls which roll values are revealed.
type watcher struct {
	conn      *websocket.Conn
	room      *room.Room
	clientID  string
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func newWatcher(conn *websocket.Conn, rm *room.Room, clientID string, logger *log.Logger) *watcher {
	ctx, cancel := context.WithCancel(context.Background())

	return &watcher{
		conn:     conn,
		room:     rm,
		clientID: clientID,
		logger:   logger.WithPrefix("watch"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins streaming. Blocks until the client disconnects.
func (w *watcher) Start() {
	go w.readPump()
	w.writePump()
}

func (w *watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.cancel()
		err = w.conn.Close()
	})
	return err
}

// readPump discards client messages; its job is keeping the pong
// deadline fresh and noticing when the peer goes away.
func (w *watcher) readPump() {
	defer func() { _ = w.Close() }()

	w.conn.SetReadLimit(512)
	_ = w.conn.SetReadDeadline(time.Now().Add(pongWait))
	w.conn.SetPongHandler(func(string) error {
		_ = w.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := w.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				w.logger.Debug("WebSocket error", "error", err)
			}
			return
		}
	}
}

// writePump polls the room version and pushes a fresh snapshot whenever
// it advances. The initial snapshot is sent immediately.
func (w *watcher) writePump() {
	poll := time.NewTicker(pollInterval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		poll.Stop()
		ping.Stop()
		_ = w.Close()
	}()

	var sent uint64
	if !w.push(&sent) {
		return
	}

	for {
		select {
		case <-poll.C:
			if w.room.Version() != sent {
				if !w.push(&sent) {
					return
				}
			}

		case <-ping.C:
			_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-w.ctx.Done():
			return
		}
	}
}

func (w *watcher) push(sent *uint64) bool {
	snap := w.room.Snapshot(w.clientID)
	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := w.conn.WriteJSON(snap); err != nil {
		w.logger.Debug("Failed to write snapshot", "error", err)
		return false
	}
	*sent = snap.Version
	return true
}
