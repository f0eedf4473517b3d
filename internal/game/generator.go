package game

import (
	"math/rand"

	"github.com/verte-zerg/kanamatch/internal/kana"
)

// InitialKana is the number of complete kana sets dealt onto a fresh board.
const InitialKana = Cells / 3

// DefaultPartialRate is the chance that a newly introduced kana arrives as a partial set.
const DefaultPartialRate = 0.25

// Pending records the types of a surfaced kana that still have to be placed.
type Pending struct {
	KanaIndex int
	Missing   []TileType
}

// Generator deals the initial board and chooses replacement tiles.
type Generator struct {
	rnd         *rand.Rand
	partialRate float64
	weights     map[int]float64
}

// NewGenerator returns a Generator. Weights bias which kana are drawn from the pool;
// kana without a weight count as 1. A nil map draws uniformly.
func NewGenerator(rnd *rand.Rand, partialRate float64, weights map[int]float64) *Generator {
	if partialRate < 0 {
		partialRate = 0
	}
	if partialRate > 1 {
		partialRate = 1
	}
	return &Generator{rnd: rnd, partialRate: partialRate, weights: weights}
}

// InitialBoard draws twelve kana from the pool and deals their 36 tiles shuffled,
// row-major.
func (g *Generator) InitialBoard(pool *KanaPool) Board {
	tiles := make([]Tile, 0, Cells)
	for _, index := range g.draw(pool, InitialKana) {
		for _, t := range TileTypes {
			tiles = append(tiles, Tile{KanaIndex: index, Type: t})
		}
	}
	g.rnd.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})
	var b Board
	for i, p := range AllPositions() {
		if i >= len(tiles) {
			break
		}
		b.set(p, tiles[i])
	}
	return b
}

// ReplacementTiles picks up to free tiles for empty cells. Missing types of pending
// partial sets come first, then new kana from the pool. hasTriple reports whether the
// board already holds a complete, matchable triple.
//
// A new partial set is only dealt when nothing else is pending and a complete triple
// is on the board, so the board always keeps a legal match and at most one kana is
// ever waiting for its missing types.
func (g *Generator) ReplacementTiles(pool *KanaPool, pending []Pending, free int, hasTriple bool) ([]Tile, []Pending) {
	tiles := make([]Tile, 0, free)
	var stillPending []Pending

	for _, p := range pending {
		var missing []TileType
		for _, t := range p.Missing {
			if len(tiles) < free {
				tiles = append(tiles, Tile{KanaIndex: p.KanaIndex, Type: t})
				continue
			}
			missing = append(missing, t)
		}
		if len(missing) > 0 {
			stillPending = append(stillPending, Pending{KanaIndex: p.KanaIndex, Missing: missing})
		} else {
			hasTriple = true
		}
	}

	for len(tiles) < free && pool.Remaining() > 0 {
		room := free - len(tiles)
		canSplit := len(stillPending) == 0 && hasTriple
		partial := canSplit && (room < 3 || g.rnd.Float64() < g.partialRate)
		if room < 3 && !partial {
			break
		}
		index := g.draw(pool, 1)[0]
		types := TileTypes
		g.rnd.Shuffle(len(types), func(i, j int) {
			types[i], types[j] = types[j], types[i]
		})
		shown := len(types)
		if partial {
			shown = 1 + g.rnd.Intn(min(2, room))
			stillPending = append(stillPending, Pending{
				KanaIndex: index,
				Missing:   append([]TileType(nil), types[shown:]...),
			})
		} else {
			hasTriple = true
		}
		for _, t := range types[:shown] {
			tiles = append(tiles, Tile{KanaIndex: index, Type: t})
		}
	}
	return tiles, stillPending
}

// draw takes n kana from the remaining pool without replacement.
func (g *Generator) draw(pool *KanaPool, n int) []int {
	out := make([]int, 0, n)
	for len(out) < n && pool.Remaining() > 0 {
		out = append(out, pool.take(g.pick(pool.remaining)))
	}
	return out
}

// pick returns an index into remaining: uniform without weights, otherwise a
// cumulative-weight draw.
func (g *Generator) pick(remaining []int) int {
	if len(g.weights) == 0 {
		return g.rnd.Intn(len(remaining))
	}
	total := 0.0
	for _, k := range remaining {
		total += g.weight(k)
	}
	r := g.rnd.Float64() * total
	acc := 0.0
	for i, k := range remaining {
		acc += g.weight(k)
		if r < acc {
			return i
		}
	}
	return len(remaining) - 1
}

func (g *Generator) weight(index int) float64 {
	if w, ok := g.weights[index]; ok && w > 0 {
		return w
	}
	return 1
}

// Weights builds a draw-weight map giving each weak kana 1+factor.
func Weights(weak []int, factor float64) map[int]float64 {
	if len(weak) == 0 || factor <= 0 {
		return nil
	}
	out := make(map[int]float64, len(weak))
	for _, k := range weak {
		if k >= 0 && k < kana.Count {
			out[k] = 1 + factor
		}
	}
	return out
}
