package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"doubleklondike/internal/gameid"
	"doubleklondike/internal/randutil"
)

// ErrSessionLimit rejects creation once MaxSessions sessions are live
var ErrSessionLimit = errors.New("session limit reached")

// ManagerConfig bounds the manager's memory and drives the idle sweep
type ManagerConfig struct {
	// TTL is how long a session may sit untouched before the sweep
	// removes it.
	TTL time.Duration

	// SweepInterval is how often the reaper looks for idle sessions.
	SweepInterval time.Duration

	// MaxSessions caps live sessions; zero means unlimited.
	MaxSessions int
}

// DefaultManagerConfig returns the limits used when no config file
// overrides them
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		TTL:           time.Hour,
		SweepInterval: time.Minute,
		MaxSessions:   1000,
	}
}

// Manager is the registry of live sessions, keyed by session id
type Manager struct {
	logger zerolog.Logger
	clock  quartz.Clock
	config ManagerConfig

	mu       sync.RWMutex
	sessions map[string]*Session

	timerMu    sync.Mutex
	sweepTimer *quartz.Timer
}

// NewManager constructs an empty session manager
func NewManager(logger zerolog.Logger, clock quartz.Clock, config ManagerConfig) *Manager {
	return &Manager{
		logger:   logger.With().Str("component", "session_manager").Logger(),
		clock:    clock,
		config:   config,
		sessions: make(map[string]*Session),
	}
}

// Create deals a new game and registers a session for it. A nil seed
// means the caller has no preference; one is picked and recorded on the
// state so the game stays reproducible.
func (m *Manager) Create(seed *int64) (*Session, error) {
	chosen := int64(0)
	if seed != nil {
		chosen = *seed
	} else {
		chosen = randutil.NewSeed()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config.MaxSessions > 0 && len(m.sessions) >= m.config.MaxSessions {
		return nil, ErrSessionLimit
	}

	id := gameid.Generate()
	for m.sessions[id] != nil {
		id = gameid.Generate()
	}

	sess := NewSession(id, chosen, m.clock)
	m.sessions[id] = sess
	m.logger.Info().
		Str("session_id", id).
		Int64("seed", chosen).
		Int("live", len(m.sessions)).
		Msg("Session created")
	return sess, nil
}

// Get retrieves a session by id
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

// Remove deletes a session by id and reports whether it existed
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes every session idle longer than the TTL and returns how
// many were removed
func (m *Manager) Sweep() int {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, sess := range m.sessions {
		if now.Sub(sess.LastTouched()) <= m.config.TTL {
			continue
		}
		delete(m.sessions, id)
		removed++
		m.logger.Info().
			Str("session_id", id).
			Time("last_touched", sess.LastTouched()).
			Msg("Swept idle session")
	}
	return removed
}

// StartReaper arms the periodic sweep on the injected clock. The first
// timer is armed before StartReaper returns, so a mocked clock can step
// the reaper deterministically. Each sweep arms the next; arming stops
// once ctx is cancelled or StopReaper is called.
func (m *Manager) StartReaper(ctx context.Context) {
	m.armSweep(ctx)
}

// StopReaper cancels the pending sweep, if any
func (m *Manager) StopReaper() {
	m.timerMu.Lock()
	defer m.timerMu.Unlock()
	if m.sweepTimer != nil {
		m.sweepTimer.Stop()
		m.sweepTimer = nil
	}
}

func (m *Manager) armSweep(ctx context.Context) {
	m.timerMu.Lock()
	defer m.timerMu.Unlock()
	if ctx.Err() != nil {
		return
	}
	m.sweepTimer = m.clock.AfterFunc(m.config.SweepInterval, func() {
		if ctx.Err() != nil {
			return
		}
		if removed := m.Sweep(); removed > 0 {
			m.logger.Debug().Int("removed", removed).Msg("Reaper sweep complete")
		}
		m.armSweep(ctx)
	})
}
