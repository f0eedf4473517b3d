package game

import "github.com/verte-zerg/kanamatch/internal/kana"

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	Phase      Phase
	PlayState  PlayState
	Resolution Resolution
	Board      Board
	Selection  []Position
	Score      int
	Matches    int
	// RemainingCount is the number of kana never introduced to the board.
	RemainingCount int
	UsedCount      int
	PendingCount   int
	TilesOnBoard   int
	ElapsedMs      int64
	ClockPaused    bool
	FadedTypes     TypeSet
	NeededTypes    TypeSet
	CharacterStats StatsTable
	Hint           []Position
	// AutoMatchLeft is how many tiles the auto-match still has to select.
	AutoMatchLeft int
}

// Snapshot returns the current state. Nothing in it aliases session memory.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:          s.phase,
		PlayState:      s.play,
		Board:          s.board,
		Selection:      append([]Position(nil), s.selection...),
		Score:          s.score,
		Matches:        s.matches,
		ElapsedMs:      s.clock.Elapsed(s.now()).Milliseconds(),
		ClockPaused:    s.clock.Paused(),
		CharacterStats: s.stats,
		Hint:           append([]Position(nil), s.hint...),
		AutoMatchLeft:  len(s.autoQueue),
		Resolution: Resolution{
			Kind:      s.resolution.Kind,
			Positions: append([]Position(nil), s.resolution.Positions...),
			Tiles:     append([]Tile(nil), s.resolution.Tiles...),
		},
	}
	snap.TilesOnBoard = snap.Board.Count()
	snap.FadedTypes = FadedTypes(&snap.Board, s.selection)
	snap.NeededTypes = NeededTypes(&snap.Board, s.selection)
	if s.life != nil {
		snap.RemainingCount = s.life.Pool().Remaining()
		snap.UsedCount = s.life.Pool().UsedCount()
		snap.PendingCount = s.life.PendingCount()
	} else {
		snap.RemainingCount = kana.Count
	}
	return snap
}

// IsSelected reports whether pos is in the selection.
func (s *Snapshot) IsSelected(pos Position) bool {
	return Selection(s.Selection).Contains(pos)
}

// IsFaded reports whether the tile at pos shares a type with the selection and is
// not itself selected.
func (s *Snapshot) IsFaded(pos Position) bool {
	tile, ok := s.Board.At(pos)
	if !ok || s.IsSelected(pos) {
		return false
	}
	return s.FadedTypes.Has(tile.Type)
}

// IsHinted reports whether pos is part of the current hint.
func (s *Snapshot) IsHinted(pos Position) bool {
	for _, p := range s.Hint {
		if p == pos {
			return true
		}
	}
	return false
}

// IsAnimating reports whether pos is named by the running animation.
func (s *Snapshot) IsAnimating(pos Position) bool {
	for _, p := range s.Resolution.Positions {
		if p == pos {
			return true
		}
	}
	return false
}
