package game

import (
	"testing"
	"time"
)

type manualClock struct {
	t time.Time
}

func (c *manualClock) Now() time.Time {
	return c.t
}

func (c *manualClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestSession(t *testing.T, seed int64, partialRate float64) (*Session, *manualClock) {
	t.Helper()
	clk := &manualClock{t: time.Unix(1700000000, 0)}
	s := NewSession(Options{Seed: seed, PartialRate: partialRate, Now: clk.Now})
	if err := s.Apply(StartGame{}); err != nil {
		t.Fatalf("start game: %v", err)
	}
	return s, clk
}

func takeIndex(p *KanaPool, k int) {
	for i, v := range p.remaining {
		if v == k {
			p.take(i)
			return
		}
	}
}

// fixedBoard replaces the dealt board with full triples of the given kana, laid out
// row-major as hiragana, katakana, romaji per kana.
func fixedBoard(s *Session, indices ...int) {
	pool := NewKanaPool()
	var b Board
	all := AllPositions()
	i := 0
	for _, k := range indices {
		takeIndex(pool, k)
		for _, tt := range TileTypes {
			b.set(all[i], Tile{KanaIndex: k, Type: tt})
			i++
		}
	}
	s.board = b
	s.life.pool = pool
	s.life.pending = nil
}

func mustFind(t *testing.T, s *Session, k int, tt TileType) Position {
	t.Helper()
	p, ok := s.board.Find(k, tt)
	if !ok {
		t.Fatalf("kana %d %s not on board", k, tt)
	}
	return p
}

func selectAt(t *testing.T, s *Session, p Position) {
	t.Helper()
	if err := s.Apply(SelectTile{Row: p.Row, Col: p.Col}); err != nil {
		t.Fatalf("select %v: %v", p, err)
	}
}

func mustApply(t *testing.T, s *Session, ev Event) {
	t.Helper()
	if err := s.Apply(ev); err != nil {
		t.Fatalf("apply %T: %v", ev, err)
	}
}
