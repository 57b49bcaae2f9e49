package server

import "sync/atomic"

// Stats counts what the server has done since it started. Counters are
// atomic so connection goroutines can record without coordination.
type Stats struct {
	gamesCreated  atomic.Uint64
	movesApplied  atomic.Uint64
	movesRejected atomic.Uint64
	draws         atomic.Uint64
	undos         atomic.Uint64
	wins          atomic.Uint64
}

// NewStats creates a zeroed counter set
func NewStats() *Stats {
	return &Stats{}
}

// RecordGame counts a session created
func (s *Stats) RecordGame() { s.gamesCreated.Add(1) }

// RecordMove counts an applied move or auto-move
func (s *Stats) RecordMove() { s.movesApplied.Add(1) }

// RecordRejection counts any transition the engine refused
func (s *Stats) RecordRejection() { s.movesRejected.Add(1) }

// RecordDraw counts an applied draw or recycle
func (s *Stats) RecordDraw() { s.draws.Add(1) }

// RecordUndo counts an applied undo
func (s *Stats) RecordUndo() { s.undos.Add(1) }

// RecordWin counts a transition that left a game won
func (s *Stats) RecordWin() { s.wins.Add(1) }

// StatsSnapshot is the JSON body served on /stats
type StatsSnapshot struct {
	ActiveSessions int    `json:"active_sessions"`
	GamesCreated   uint64 `json:"games_created"`
	MovesApplied   uint64 `json:"moves_applied"`
	MovesRejected  uint64 `json:"moves_rejected"`
	Draws          uint64 `json:"draws"`
	Undos          uint64 `json:"undos"`
	Wins           uint64 `json:"wins"`
}

// Snapshot captures the counters alongside the live session count
func (s *Stats) Snapshot(activeSessions int) StatsSnapshot {
	return StatsSnapshot{
		ActiveSessions: activeSessions,
		GamesCreated:   s.gamesCreated.Load(),
		MovesApplied:   s.movesApplied.Load(),
		MovesRejected:  s.movesRejected.Load(),
		Draws:          s.draws.Load(),
		Undos:          s.undos.Load(),
		Wins:           s.wins.Load(),
	}
}
