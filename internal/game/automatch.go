package game

// AutoMatchSize is the tile count that triggers the auto-match sequence.
const AutoMatchSize = 3

// AutoMatchQueue returns the positions to auto-select, ordered hiragana, katakana,
// romaji. It returns false unless the board holds exactly one complete triple and
// nothing else.
func AutoMatchQueue(b *Board) ([]Position, bool) {
	occupied := b.Occupied()
	if len(occupied) != AutoMatchSize {
		return nil, false
	}
	first, _ := b.At(occupied[0])
	queue := make([]Position, 0, AutoMatchSize)
	for _, t := range TileTypes {
		p, ok := b.Find(first.KanaIndex, t)
		if !ok {
			return nil, false
		}
		queue = append(queue, p)
	}
	return queue, true
}
