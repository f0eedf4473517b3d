package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/kanamatch/internal/game"
	"github.com/verte-zerg/kanamatch/internal/kana"
	"github.com/verte-zerg/kanamatch/internal/model"
	"github.com/verte-zerg/kanamatch/internal/store"
)

type fakeHistory struct {
	games []model.GameRecord
	kana  [][]model.KanaStats
	times store.Times
	weak  []model.KanaAggregate
}

func (f *fakeHistory) InsertSession(_ context.Context, g model.GameRecord, k []model.KanaStats) (string, error) {
	f.games = append(f.games, g)
	f.kana = append(f.kana, k)
	f.times = store.Times{Games: len(f.games), LastMs: g.DurationMs, BestMs: g.DurationMs}
	return "id", nil
}

func (f *fakeHistory) GameTimes(context.Context) (store.Times, error) {
	return f.times, nil
}

func (f *fakeHistory) GetWeakKana(context.Context, int) ([]model.KanaAggregate, error) {
	return f.weak, nil
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func send(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func TestMenuThenStart(t *testing.T) {
	m := NewModel(model.Config{Seed: 7}, &fakeHistory{})
	if m.snap.Phase != game.PhaseMenu {
		t.Fatalf("expected menu, got %s", m.snap.Phase)
	}
	if !strings.Contains(m.View(), "press enter to start") {
		t.Fatalf("menu view missing prompt:\n%s", m.View())
	}
	send(m, enterKey())
	if m.snap.Phase != game.PhasePlaying || m.snap.TilesOnBoard != game.Cells {
		t.Fatalf("expected dealt board, got %+v", m.snap.Phase)
	}
	if !strings.Contains(m.View(), "Matches 0/46") {
		t.Fatalf("playing view missing status:\n%s", m.View())
	}
}

func TestCursorMovesAndWraps(t *testing.T) {
	m := NewModel(model.Config{Seed: 7}, &fakeHistory{})
	send(m, enterKey())
	send(m, runeKey('k'))
	if m.cursor != (game.Position{Row: game.Rows - 1, Col: 0}) {
		t.Fatalf("expected wrap to bottom row, got %v", m.cursor)
	}
	send(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.cursor != (game.Position{Row: game.Rows - 1, Col: 1}) {
		t.Fatalf("unexpected cursor %v", m.cursor)
	}
}

func TestHintKey(t *testing.T) {
	m := NewModel(model.Config{Seed: 3}, &fakeHistory{})
	send(m, enterKey())
	send(m, runeKey('?'))
	if len(m.snap.Hint) != 3 {
		t.Fatalf("expected a hint, got %v", m.snap.Hint)
	}
	if !strings.Contains(m.View(), "hint shown") {
		t.Fatalf("expected hint status")
	}
}

func TestStaleTimersIgnored(t *testing.T) {
	m := NewModel(model.Config{Seed: 7}, &fakeHistory{})
	send(m, enterKey())
	old := m.gameID
	send(m, runeKey('n'))
	if m.gameID == old {
		t.Fatalf("expected a new game id")
	}
	if cmd := send(m, animationDoneMsg{game: old}); cmd != nil {
		t.Fatalf("stale animation should be dropped")
	}
	if cmd := send(m, autoAdvanceMsg{game: old}); cmd != nil {
		t.Fatalf("stale auto-match should be dropped")
	}
	if m.snap.Phase != game.PhasePlaying {
		t.Fatalf("new game should be running, got %s", m.snap.Phase)
	}
}

func TestFullGameIsSaved(t *testing.T) {
	history := &fakeHistory{}
	m := NewModel(model.Config{Seed: 11, PartialRate: 0.25}, history)
	send(m, enterKey())

	var cmd tea.Cmd
	for step := 0; m.snap.Phase != game.PhaseComplete || cmd != nil; step++ {
		if step > 5000 {
			t.Fatalf("game did not finish")
		}
		if cmd != nil {
			cmd = send(m, cmd())
			continue
		}
		hint, ok := m.session.Hint()
		if !ok {
			t.Fatalf("no move available in state %s", m.snap.PlayState)
		}
		for _, p := range hint {
			m.cursor = p
			cmd = send(m, enterKey())
		}
	}

	if len(history.games) != 1 {
		t.Fatalf("expected one saved game, got %d", len(history.games))
	}
	saved := history.games[0]
	if saved.Matches != kana.Count || saved.Score != kana.Count*game.PointsPerMatch {
		t.Fatalf("unexpected saved game %+v", saved)
	}
	if len(history.kana[0]) == 0 {
		t.Fatalf("expected kana stats")
	}
	if m.snap.Resolution.Kind != game.ResolutionNone {
		t.Fatalf("final animation should be acknowledged")
	}
	view := m.View()
	if !strings.Contains(view, "All kana matched!") || !strings.Contains(view, "Best ") {
		t.Fatalf("unexpected completion view:\n%s", view)
	}
}

func TestWeakFocusLoadsWeights(t *testing.T) {
	history := &fakeHistory{weak: []model.KanaAggregate{
		{KanaIndex: 5, Attempts: 1, Incorrect: 3},
		{KanaIndex: 8, Attempts: 2},
	}}
	m := NewModel(model.Config{Seed: 1, FocusWeak: true, WeakTop: 1, WeakFactor: 4}, history)
	if len(m.weights) != 1 || m.weights[5] != 5 {
		t.Fatalf("unexpected weights %v", m.weights)
	}

	m = NewModel(model.Config{Seed: 1, FocusWeak: true, WeakTop: 1, WeakFactor: 4}, &fakeHistory{})
	if m.weights != nil || !m.weakNoticePrinted {
		t.Fatalf("expected uniform draw with notice, got %v", m.weights)
	}
}

func TestRenderFooterTimes(t *testing.T) {
	m := NewModel(model.Config{Seed: 1}, &fakeHistory{times: store.Times{Games: 2, LastMs: 83400, BestMs: 61000}})
	out := m.renderFooter()
	for _, want := range []string{"Last 1:23.4", "Best 1:01.0", "hint"} {
		if !strings.Contains(out, want) {
			t.Fatalf("footer missing %q: %s", want, out)
		}
	}
}
