package game

import "errors"

var (
	// ErrNoAnimation is returned for AnimationComplete when nothing is animating.
	ErrNoAnimation = errors.New("no animation in progress")
	// ErrNotAutoMatching is returned for AutoMatchAdvance outside an auto-match.
	ErrNotAutoMatching = errors.New("auto-match not running")
	// ErrUnknownEvent is returned for event types the session does not handle.
	ErrUnknownEvent = errors.New("unknown event")
)

// Event is an input to Session.Apply.
type Event interface {
	event()
}

// StartGame deals a new board, discarding any game in progress.
type StartGame struct{}

// SelectTile toggles the tile at Row, Col.
type SelectTile struct {
	Row int
	Col int
}

// RequestHint asks for a complete triple on the board.
type RequestHint struct{}

// AnimationComplete acknowledges the shake or removal named by the snapshot.
type AnimationComplete struct{}

// Tick is the renderer's periodic clock pulse.
type Tick struct{}

// AutoMatchAdvance selects the next tile of the auto-match sequence.
type AutoMatchAdvance struct{}

func (StartGame) event()         {}
func (SelectTile) event()        {}
func (RequestHint) event()       {}
func (AnimationComplete) event() {}
func (Tick) event()              {}
func (AutoMatchAdvance) event()  {}
