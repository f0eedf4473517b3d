package game

// PointsPerMatch is the score awarded for each matched triple.
const PointsPerMatch = 100

// Outcome classifies a selection.
type Outcome int

const (
	// OutcomeOpen means fewer than two tiles are selected.
	OutcomeOpen Outcome = iota
	// OutcomeProgress means two tiles of the same kana are selected.
	OutcomeProgress
	// OutcomeMismatch means the newest tile does not belong with the others.
	OutcomeMismatch
	// OutcomeMatch means three tiles of one kana are selected.
	OutcomeMatch
)

func (o Outcome) String() string {
	switch o {
	case OutcomeProgress:
		return "progress"
	case OutcomeMismatch:
		return "mismatch"
	case OutcomeMatch:
		return "match"
	default:
		return "open"
	}
}

// Evaluation is the verdict on a selection.
type Evaluation struct {
	Outcome Outcome
	// KanaIndex is the kana of the first selected tile.
	KanaIndex int
	// Rejected is the newest position on a mismatch.
	Rejected     Position
	RejectedTile Tile
}

// Evaluate judges a selection. Only the newest tile is ever rejected: with two
// tiles the second one, with three the third one, since the first two were already
// accepted as a pair.
func Evaluate(b *Board, sel Selection) Evaluation {
	if len(sel) < 2 {
		return Evaluation{Outcome: OutcomeOpen}
	}
	first, _ := b.At(sel[0])
	newest := sel[len(sel)-1]
	last, _ := b.At(newest)
	for _, p := range sel[1:] {
		tile, _ := b.At(p)
		if tile.KanaIndex != first.KanaIndex {
			return Evaluation{
				Outcome:      OutcomeMismatch,
				KanaIndex:    first.KanaIndex,
				Rejected:     newest,
				RejectedTile: last,
			}
		}
	}
	if len(sel) == 3 {
		return Evaluation{Outcome: OutcomeMatch, KanaIndex: first.KanaIndex}
	}
	return Evaluation{Outcome: OutcomeProgress, KanaIndex: first.KanaIndex}
}
