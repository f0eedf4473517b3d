package game

import "github.com/verte-zerg/kanamatch/internal/kana"

// KanaPool splits the catalog into kana already introduced to the board and kana
// never introduced. Remaining only ever shrinks.
type KanaPool struct {
	used      [kana.Count]bool
	remaining []int
}

// NewKanaPool returns a pool with every kana remaining.
func NewKanaPool() *KanaPool {
	p := &KanaPool{remaining: make([]int, kana.Count)}
	for i := range p.remaining {
		p.remaining[i] = i
	}
	return p
}

// Remaining returns how many kana were never introduced.
func (p *KanaPool) Remaining() int {
	return len(p.remaining)
}

// UsedCount returns how many kana were introduced.
func (p *KanaPool) UsedCount() int {
	n := 0
	for _, u := range p.used {
		if u {
			n++
		}
	}
	return n
}

// IsUsed reports whether a kana was introduced.
func (p *KanaPool) IsUsed(index int) bool {
	if index < 0 || index >= kana.Count {
		return false
	}
	return p.used[index]
}

// RemainingIndices returns a copy of the remaining kana indices.
func (p *KanaPool) RemainingIndices() []int {
	out := make([]int, len(p.remaining))
	copy(out, p.remaining)
	return out
}

// take removes remaining[i] by swapping in the last element and marks it used.
func (p *KanaPool) take(i int) int {
	last := len(p.remaining) - 1
	index := p.remaining[i]
	p.remaining[i] = p.remaining[last]
	p.remaining = p.remaining[:last]
	p.used[index] = true
	return index
}
