package game

import (
	"sort"

	"github.com/samber/lo"
)

const (
	Rows  = 6
	Cols  = 6
	Cells = Rows * Cols
)

type cell struct {
	tile   Tile
	filled bool
}

// Board is the 6x6 grid. It is a plain value: copying a Board copies every cell.
type Board struct {
	cells [Rows][Cols]cell
}

// AllPositions returns every cell position in row-major order.
func AllPositions() []Position {
	out := make([]Position, 0, Cells)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			out = append(out, Position{Row: r, Col: c})
		}
	}
	return out
}

// At returns the tile at pos and whether the cell is occupied.
func (b *Board) At(pos Position) (Tile, bool) {
	if !pos.Valid() {
		return Tile{}, false
	}
	c := b.cells[pos.Row][pos.Col]
	return c.tile, c.filled
}

func (b *Board) set(pos Position, t Tile) {
	b.cells[pos.Row][pos.Col] = cell{tile: t, filled: true}
}

func (b *Board) clear(pos Position) {
	b.cells[pos.Row][pos.Col] = cell{}
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	return len(b.Occupied())
}

// Occupied returns occupied positions in row-major order.
func (b *Board) Occupied() []Position {
	return lo.Filter(AllPositions(), func(p Position, _ int) bool {
		return b.cells[p.Row][p.Col].filled
	})
}

// Empty returns free positions in row-major order.
func (b *Board) Empty() []Position {
	return lo.Filter(AllPositions(), func(p Position, _ int) bool {
		return !b.cells[p.Row][p.Col].filled
	})
}

// Find locates the tile for a kana index and type.
func (b *Board) Find(kanaIndex int, t TileType) (Position, bool) {
	for _, p := range b.Occupied() {
		tile := b.cells[p.Row][p.Col].tile
		if tile.KanaIndex == kanaIndex && tile.Type == t {
			return p, true
		}
	}
	return Position{}, false
}

// TypesOf returns which types of a kana are on the board.
func (b *Board) TypesOf(kanaIndex int) TypeSet {
	var set TypeSet
	for _, p := range b.Occupied() {
		tile := b.cells[p.Row][p.Col].tile
		if tile.KanaIndex == kanaIndex {
			set = set.With(tile.Type)
		}
	}
	return set
}

// CompleteKana returns, in ascending order, the kana indices whose three types are
// all on the board.
func (b *Board) CompleteKana() []int {
	sets := map[int]TypeSet{}
	for _, p := range b.Occupied() {
		tile := b.cells[p.Row][p.Col].tile
		sets[tile.KanaIndex] = sets[tile.KanaIndex].With(tile.Type)
	}
	out := lo.Filter(lo.Keys(sets), func(k int, _ int) bool {
		return sets[k] == AllTypeSet
	})
	sort.Ints(out)
	return out
}

// KanaOnBoard returns the distinct kana indices present, ascending.
func (b *Board) KanaOnBoard() []int {
	out := lo.Uniq(lo.Map(b.Occupied(), func(p Position, _ int) int {
		return b.cells[p.Row][p.Col].tile.KanaIndex
	}))
	sort.Ints(out)
	return out
}
