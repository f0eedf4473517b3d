package game

import "github.com/verte-zerg/kanamatch/internal/kana"

// Lifecycle owns the kana pool and the pending partial sets, removes matched tiles
// and refills freed cells.
type Lifecycle struct {
	gen     *Generator
	pool    *KanaPool
	pending []Pending
}

// NewLifecycle returns a Lifecycle with a full pool.
func NewLifecycle(gen *Generator) *Lifecycle {
	return &Lifecycle{gen: gen, pool: NewKanaPool()}
}

// Deal builds the opening board.
func (l *Lifecycle) Deal() Board {
	return l.gen.InitialBoard(l.pool)
}

// Remove empties the given cells and returns the tiles that were there.
func (l *Lifecycle) Remove(b *Board, positions []Position) []Tile {
	removed := make([]Tile, 0, len(positions))
	for _, p := range positions {
		if tile, ok := b.At(p); ok {
			removed = append(removed, tile)
			b.clear(p)
		}
	}
	return removed
}

// Replenish places replacement tiles into empty cells in row-major order and returns
// how many were placed. Cells stay empty once the pool and pending sets run out.
func (l *Lifecycle) Replenish(b *Board) int {
	empty := b.Empty()
	if len(empty) == 0 {
		return 0
	}
	if l.pool.Remaining() == 0 && len(l.pending) == 0 {
		return 0
	}
	hasTriple := len(b.CompleteKana()) > 0
	tiles, pending := l.gen.ReplacementTiles(l.pool, l.pending, len(empty), hasTriple)
	l.pending = pending
	for i, t := range tiles {
		b.set(empty[i], t)
	}
	return len(tiles)
}

// Pool returns the kana pool.
func (l *Lifecycle) Pool() *KanaPool {
	return l.pool
}

// PendingCount returns how many kana are waiting for missing types.
func (l *Lifecycle) PendingCount() int {
	return len(l.pending)
}

// Exhausted reports whether every kana has been introduced and fully placed.
func (l *Lifecycle) Exhausted() bool {
	return l.pool.Remaining() == 0 && len(l.pending) == 0
}

// Finished reports whether the match count covers the whole catalog.
func Finished(matches int) bool {
	return matches >= kana.Count
}
