// Package game implements the kana match-3 state machine.
//
// A Session is a synchronous reducer: the renderer feeds it events through Apply
// and redraws from Snapshot. Animations, the auto-match stagger and the stopwatch
// display are driven from outside with AnimationComplete, AutoMatchAdvance and
// Tick events, so every transition here is deterministic for a given seed and clock.
package game

import (
	"fmt"

	"github.com/verte-zerg/kanamatch/internal/kana"
)

// TileType is the written form shown on a tile.
type TileType int

const (
	Hiragana TileType = iota
	Katakana
	Romaji
)

// TileTypes lists every type in auto-match order.
var TileTypes = [3]TileType{Hiragana, Katakana, Romaji}

func (t TileType) String() string {
	switch t {
	case Hiragana:
		return "hiragana"
	case Katakana:
		return "katakana"
	case Romaji:
		return "romaji"
	default:
		return fmt.Sprintf("TileType(%d)", int(t))
	}
}

// Tile is one kana form sitting on the board.
type Tile struct {
	KanaIndex int
	Type      TileType
}

// Display returns the text drawn on the tile.
func (t Tile) Display() string {
	e, ok := kana.Lookup(t.KanaIndex)
	if !ok {
		return "?"
	}
	switch t.Type {
	case Hiragana:
		return e.Hiragana
	case Katakana:
		return e.Katakana
	default:
		return e.Romaji
	}
}

// Position addresses a board cell.
type Position struct {
	Row int
	Col int
}

// Valid reports whether the position lies on the board.
func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < Rows && p.Col >= 0 && p.Col < Cols
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// TypeSet is a small set of tile types.
type TypeSet uint8

// AllTypeSet contains every tile type.
const AllTypeSet TypeSet = 1<<Hiragana | 1<<Katakana | 1<<Romaji

// Has reports membership.
func (s TypeSet) Has(t TileType) bool {
	return s&(1<<uint(t)) != 0
}

// With returns the set plus t.
func (s TypeSet) With(t TileType) TypeSet {
	return s | 1<<uint(t)
}

// Len returns the number of types in the set.
func (s TypeSet) Len() int {
	n := 0
	for _, t := range TileTypes {
		if s.Has(t) {
			n++
		}
	}
	return n
}

// Types returns the members in hiragana, katakana, romaji order.
func (s TypeSet) Types() []TileType {
	out := make([]TileType, 0, 3)
	for _, t := range TileTypes {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}
