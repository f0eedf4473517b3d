package game

// Selection is the ordered list of chosen positions, at most one per tile type.
type Selection []Position

// Contains reports whether pos is selected.
func (s Selection) Contains(pos Position) bool {
	return s.indexOf(pos) >= 0
}

func (s Selection) indexOf(pos Position) int {
	for i, p := range s {
		if p == pos {
			return i
		}
	}
	return -1
}

// Toggle returns the selection after the player touches pos. A selected position is
// dropped; an empty cell or a second tile of an already chosen type is ignored;
// anything else is appended. The input slice is never modified.
func Toggle(b *Board, sel Selection, pos Position) Selection {
	if i := sel.indexOf(pos); i >= 0 {
		out := make(Selection, 0, len(sel)-1)
		out = append(out, sel[:i]...)
		return append(out, sel[i+1:]...)
	}
	tile, ok := b.At(pos)
	if !ok || len(sel) >= 3 {
		return sel
	}
	if FadedTypes(b, sel).Has(tile.Type) {
		return sel
	}
	out := make(Selection, 0, len(sel)+1)
	out = append(out, sel...)
	return append(out, pos)
}

// FadedTypes returns the types already represented in the selection. Other tiles of
// those types cannot be picked until the selection changes.
func FadedTypes(b *Board, sel Selection) TypeSet {
	var set TypeSet
	for _, p := range sel {
		if tile, ok := b.At(p); ok {
			set = set.With(tile.Type)
		}
	}
	return set
}

// NeededTypes returns the types still missing from a partial selection. It is empty
// when nothing or everything is selected.
func NeededTypes(b *Board, sel Selection) TypeSet {
	faded := FadedTypes(b, sel)
	if faded == 0 || faded == AllTypeSet {
		return 0
	}
	return AllTypeSet &^ faded
}
