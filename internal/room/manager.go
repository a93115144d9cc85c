// Package room holds the CRUD plumbing around the game core: rooms,
// lobbies, the client-to-slot identity mapping and the in-memory store
// the HTTP and WebSocket boundaries talk to.
package room

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	uuid "github.com/satori/go.uuid"

	"github.com/lox/cubebluff/internal/dice"
)

// codeAlphabet avoids the easily confused characters I, O, 0 and 1.
const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 6

	codeAttempts = 100
)

// Manager is the in-memory room store. Room lookups take the manager
// lock; everything per-room serializes on the room's own mutex.
type Manager struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	clock  quartz.Clock
	rng    *dice.Roller
	logger *log.Logger
}

// NewManager creates a room store. The seed drives room codes and every
// room's dice, which makes whole servers reproducible in tests.
func NewManager(clock quartz.Clock, logger *log.Logger, seed int64) *Manager {
	return &Manager{
		rooms:  make(map[string]*Room),
		clock:  clock,
		rng:    dice.New(seed),
		logger: logger.WithPrefix("rooms"),
	}
}

// NewClientID mints a stable identity for clients that arrive without
// one.
func NewClientID() string {
	return uuid.NewV4().String()
}

// Create opens a new room with the given host. Returns the room code.
func (m *Manager) Create(hostClientID, hostNickname string, settings Settings) (*Room, error) {
	hostNickname = strings.TrimSpace(hostNickname)
	if len(hostNickname) < 1 || len(hostNickname) > maxNicknameLen {
		return nil, ErrBadNickname
	}
	settings.StartingTokens = NormalizeTokens(settings.StartingTokens)

	m.mu.Lock()
	defer m.mu.Unlock()

	code, err := m.newCode()
	if err != nil {
		return nil, err
	}

	r := newRoom(code, hostClientID, hostNickname, settings, dice.New(m.rng.Int64()), m.clock, m.logger)
	m.rooms[code] = r
	m.logger.Info("room created", "code", code, "host", hostNickname, "tokens", settings.StartingTokens)
	return r, nil
}

// Get looks a room up by its code.
func (m *Manager) Get(code string) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rooms[normalizeCode(code)]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

// Count reports the number of live rooms.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// PruneIdle drops rooms that have seen no activity for longer than
// maxIdle and returns how many were removed.
func (m *Manager) PruneIdle(maxIdle time.Duration) int {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	pruned := 0
	for code, r := range m.rooms {
		r.mu.Lock()
		idle := now.Sub(r.lastActive)
		r.mu.Unlock()

		if idle > maxIdle {
			delete(m.rooms, code)
			pruned++
			m.logger.Info("pruned idle room", "code", code, "idle", idle)
		}
	}
	return pruned
}

// newCode draws codes until one is free. Caller holds the manager lock.
func (m *Manager) newCode() (string, error) {
	for attempt := 0; attempt < codeAttempts; attempt++ {
		buf := make([]byte, codeLength)
		for i := range buf {
			buf[i] = codeAlphabet[m.rng.IntN(len(codeAlphabet))]
		}
		code := string(buf)
		if _, taken := m.rooms[code]; !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not allocate a free room code after %d attempts", codeAttempts)
}

func normalizeCode(code string) string {
	return strings.ToUpper(code)
}
