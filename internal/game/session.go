package game

import (
	"fmt"
	"math/rand"
	"time"
)

// Phase is the top-level lifecycle of a session.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseComplete:
		return "complete"
	default:
		return "menu"
	}
}

// PlayState refines PhasePlaying.
type PlayState int

const (
	WaitingFirstMove PlayState = iota
	Selecting
	Resolving
	AutoMatching
)

func (s PlayState) String() string {
	switch s {
	case Selecting:
		return "selecting"
	case Resolving:
		return "resolving"
	case AutoMatching:
		return "auto-matching"
	default:
		return "waiting"
	}
}

// ResolutionKind names the animation the renderer must finish.
type ResolutionKind int

const (
	ResolutionNone ResolutionKind = iota
	// ResolutionShake is a rejected tile.
	ResolutionShake
	// ResolutionRemoval is a matched triple leaving the board.
	ResolutionRemoval
)

func (k ResolutionKind) String() string {
	switch k {
	case ResolutionShake:
		return "shake"
	case ResolutionRemoval:
		return "removal"
	default:
		return "none"
	}
}

// Resolution describes the animation in progress.
type Resolution struct {
	Kind      ResolutionKind
	Positions []Position
	// Tiles are the tiles at Positions; for a removal they are already off the board.
	Tiles []Tile
}

// Options configures a Session.
type Options struct {
	// Seed drives every random choice; 0 seeds from the current time.
	Seed int64
	// PartialRate is the chance a new kana arrives as a partial set.
	PartialRate float64
	// Weights biases which kana are drawn; see NewGenerator.
	Weights map[int]float64
	// Now reads the current time; defaults to time.Now.
	Now func() time.Time
}

// Session is the game state machine. It must only be changed through Apply and is
// not safe for concurrent use.
type Session struct {
	now  func() time.Time
	rnd  *rand.Rand
	opts Options

	phase      Phase
	play       PlayState
	board      Board
	selection  Selection
	life       *Lifecycle
	clock      Clock
	stats      StatsTable
	score      int
	matches    int
	resolution Resolution
	hint       []Position
	autoQueue  []Position

	attemptStart time.Duration
}

// NewSession returns a session in PhaseMenu.
func NewSession(opts Options) *Session {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		now:  now,
		rnd:  rand.New(rand.NewSource(seed)),
		opts: opts,
	}
}

// Apply feeds one event through the state machine. Input that the current state
// does not accept is ignored and returns nil. An error means the event contradicts
// the session state; the state is left untouched.
func (s *Session) Apply(ev Event) error {
	switch e := ev.(type) {
	case StartGame:
		s.start()
		return nil
	case SelectTile:
		s.selectTile(Position{Row: e.Row, Col: e.Col})
		return nil
	case RequestHint:
		s.requestHint()
		return nil
	case AnimationComplete:
		return s.animationComplete()
	case AutoMatchAdvance:
		return s.autoMatchAdvance()
	case Tick:
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}
}

// Hint returns a complete unselected triple, if any, without changing state.
func (s *Session) Hint() ([]Position, bool) {
	if s.phase != PhasePlaying {
		return nil, false
	}
	return FindHint(&s.board, s.selection)
}

func (s *Session) start() {
	gen := NewGenerator(rand.New(rand.NewSource(s.rnd.Int63())), s.opts.PartialRate, s.opts.Weights)
	s.life = NewLifecycle(gen)
	s.board = s.life.Deal()
	s.phase = PhasePlaying
	s.play = WaitingFirstMove
	s.selection = nil
	s.clock = Clock{}
	s.stats = StatsTable{}
	s.score = 0
	s.matches = 0
	s.resolution = Resolution{}
	s.hint = nil
	s.autoQueue = nil
	s.attemptStart = 0
}

func (s *Session) acceptsSelection() bool {
	return s.phase == PhasePlaying && (s.play == WaitingFirstMove || s.play == Selecting)
}

func (s *Session) selectTile(pos Position) {
	if !s.acceptsSelection() {
		return
	}
	before := len(s.selection)
	next := Toggle(&s.board, s.selection, pos)
	if len(next) == before {
		return
	}
	now := s.now()
	s.hint = nil
	if s.play == WaitingFirstMove {
		s.clock.Start(now)
		s.play = Selecting
	}
	s.selection = next
	if len(next) < before {
		return
	}
	if before == 0 {
		s.attemptStart = s.clock.Elapsed(now)
	}
	s.resolve(false)
}

// resolve applies the evaluator's verdict on the current selection.
func (s *Session) resolve(auto bool) {
	ev := Evaluate(&s.board, s.selection)
	switch ev.Outcome {
	case OutcomeMismatch:
		s.selection = s.selection[:len(s.selection)-1]
		if !auto {
			s.stats[ev.RejectedTile.KanaIndex].Incorrect++
		}
		s.resolution = Resolution{
			Kind:      ResolutionShake,
			Positions: []Position{ev.Rejected},
			Tiles:     []Tile{ev.RejectedTile},
		}
		s.play = Resolving
	case OutcomeMatch:
		now := s.now()
		positions := append([]Position(nil), s.selection...)
		if !auto {
			st := &s.stats[ev.KanaIndex]
			st.Attempts++
			st.TotalResponseMs += (s.clock.Elapsed(now) - s.attemptStart).Milliseconds()
		}
		removed := s.life.Remove(&s.board, positions)
		s.score += PointsPerMatch
		s.matches++
		s.selection = nil
		s.resolution = Resolution{Kind: ResolutionRemoval, Positions: positions, Tiles: removed}
		s.play = Resolving
		if Finished(s.matches) {
			s.clock.Freeze(now)
			s.phase = PhaseComplete
		}
	}
}

func (s *Session) animationComplete() error {
	if s.phase == PhaseComplete && s.resolution.Kind != ResolutionNone {
		s.resolution = Resolution{}
		return nil
	}
	if s.phase != PhasePlaying || s.play != Resolving {
		return ErrNoAnimation
	}
	kind := s.resolution.Kind
	s.resolution = Resolution{}
	s.play = Selecting
	if kind != ResolutionRemoval {
		return nil
	}
	s.life.Replenish(&s.board)
	if s.board.Count() == AutoMatchSize {
		if queue, ok := AutoMatchQueue(&s.board); ok {
			s.autoQueue = queue
			s.play = AutoMatching
			s.clock.Pause(s.now())
		}
	}
	return nil
}

func (s *Session) autoMatchAdvance() error {
	if s.phase != PhasePlaying || s.play != AutoMatching || len(s.autoQueue) == 0 {
		return ErrNotAutoMatching
	}
	s.selection = append(s.selection, s.autoQueue[0])
	s.autoQueue = s.autoQueue[1:]
	if len(s.autoQueue) > 0 {
		return nil
	}
	s.resolve(true)
	if s.phase == PhasePlaying {
		s.clock.Resume(s.now())
	}
	return nil
}

func (s *Session) requestHint() {
	if !s.acceptsSelection() {
		s.hint = nil
		return
	}
	hint, ok := FindHint(&s.board, s.selection)
	if !ok {
		s.hint = nil
		return
	}
	s.hint = hint
}
