package game

// FindHint returns the three positions of a kana whose every type is on the board
// and unselected, choosing the lowest kana index. The positions are ordered by type.
func FindHint(b *Board, sel Selection) ([]Position, bool) {
	for _, k := range b.CompleteKana() {
		out := make([]Position, 0, 3)
		for _, t := range TileTypes {
			p, _ := b.Find(k, t)
			if sel.Contains(p) {
				break
			}
			out = append(out, p)
		}
		if len(out) == 3 {
			return out, true
		}
	}
	return nil, false
}
