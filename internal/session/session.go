// Package session holds live games on the server. A session owns one
// deal's snapshot history and serializes transitions to it; the engine
// itself stays pure and history-free.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/coder/quartz"

	"doubleklondike/internal/klondike"
)

// ErrNothingToUndo rejects an undo at the initial deal
var ErrNothingToUndo = errors.New("nothing to undo")

// Session is one live game: the snapshot history back to the initial
// deal, plus bookkeeping for the idle sweep. All operations serialize on
// an internal mutex, so a session is safe to share between connections.
type Session struct {
	id    string
	clock quartz.Clock

	mu      sync.Mutex
	history []klondike.GameState
	touched time.Time
	created time.Time
}

// NewSession deals a game from seed and wraps it in a fresh session
func NewSession(id string, seed int64, clock quartz.Clock) *Session {
	now := clock.Now()
	return &Session{
		id:      id,
		clock:   clock,
		history: []klondike.GameState{klondike.NewGame(seed)},
		touched: now,
		created: now,
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Seed returns the seed that reproduces this session's deal
func (s *Session) Seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history[0].Seed
}

// State returns the current snapshot
func (s *Session) State() klondike.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history[len(s.history)-1]
}

// Moves returns how many transitions have applied since the deal
func (s *Session) Moves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history) - 1
}

// Snapshot returns the current state and the move count as one
// consistent read, for callers assembling a view of the session.
func (s *Session) Snapshot() (klondike.GameState, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history[len(s.history)-1], len(s.history) - 1
}

// Won reports whether the current snapshot is a finished game
func (s *Session) Won() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history[len(s.history)-1].Won()
}

// LastTouched returns when the session last served any request
func (s *Session) LastTouched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

// CreatedAt returns when the session was dealt
func (s *Session) CreatedAt() time.Time {
	return s.created
}

// Move applies a card transfer to the current snapshot. The new snapshot
// joins the history only when the engine accepts; a rejected move returns
// the current state untouched and records nothing, so undo never replays
// a no-op.
func (s *Session) Move(src, dst klondike.PileRef, id klondike.CardID) (klondike.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = s.clock.Now()

	cur := s.history[len(s.history)-1]
	next, err := cur.Move(src, dst, id)
	if err != nil {
		return cur, err
	}
	s.history = append(s.history, next)
	return next, nil
}

// Draw advances the stock cycle: deal one card to the waste, or recycle
// the waste when the stock is out
func (s *Session) Draw() (klondike.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = s.clock.Now()

	cur := s.history[len(s.history)-1]
	next, err := cur.Draw()
	if err != nil {
		return cur, err
	}
	s.history = append(s.history, next)
	return next, nil
}

// AutoMove sends a card to whichever foundation accepts it, the
// double-click shortcut. Only the waste front card and tableau tops are
// eligible; anything else cannot legally reach a foundation directly.
func (s *Session) AutoMove(id klondike.CardID) (klondike.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = s.clock.Now()

	cur := s.history[len(s.history)-1]
	src, card, ok := locateTop(cur, id)
	if !ok {
		return cur, klondike.ErrCardNotFound
	}

	for i := range cur.Foundations {
		if !klondike.FoundationAccepts(card, cur.Foundations[i]) {
			continue
		}
		next, err := cur.Move(src, klondike.PileRef{Kind: klondike.PileFoundation, Index: i}, id)
		if err != nil {
			return cur, err
		}
		s.history = append(s.history, next)
		return next, nil
	}
	return cur, klondike.ErrFoundationRefused
}

// locateTop finds id among the cards a double-click can send home
func locateTop(s klondike.GameState, id klondike.CardID) (klondike.PileRef, klondike.Card, bool) {
	if len(s.Waste) > 0 && s.Waste[0].ID() == id {
		return klondike.PileRef{Kind: klondike.PileWaste}, s.Waste[0], true
	}
	for i, pile := range s.Tableau {
		if len(pile) == 0 {
			continue
		}
		if top := pile[len(pile)-1]; top.ID() == id {
			return klondike.PileRef{Kind: klondike.PileTableau, Index: i}, top, true
		}
	}
	return klondike.PileRef{}, klondike.Card{}, false
}

// Undo pops the most recent snapshot and returns the one beneath it. The
// initial deal cannot be undone.
func (s *Session) Undo() (klondike.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = s.clock.Now()

	if len(s.history) == 1 {
		return s.history[0], ErrNothingToUndo
	}
	s.history = s.history[:len(s.history)-1]
	return s.history[len(s.history)-1], nil
}

// Restart re-deals the same seed and clears the history
func (s *Session) Restart() klondike.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = s.clock.Now()

	fresh := klondike.NewGame(s.history[0].Seed)
	s.history = []klondike.GameState{fresh}
	return fresh
}
