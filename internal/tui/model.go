// Package tui provides the Bubble Tea game interface. It drives a game.Session
// with events and renders its snapshots.
package tui

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/kanamatch/internal/game"
	"github.com/verte-zerg/kanamatch/internal/kana"
	"github.com/verte-zerg/kanamatch/internal/model"
	statsPkg "github.com/verte-zerg/kanamatch/internal/stats"
	"github.com/verte-zerg/kanamatch/internal/store"
)

// History stores finished games and feeds the footer and weak-kana focus.
type History interface {
	InsertSession(ctx context.Context, game model.GameRecord, kana []model.KanaStats) (string, error)
	GameTimes(ctx context.Context) (store.Times, error)
	GetWeakKana(ctx context.Context, window int) ([]model.KanaAggregate, error)
}

type tickMsg time.Time

// animationDoneMsg and autoAdvanceMsg carry the game they were scheduled for so
// timers left over from an abandoned game are dropped.
type animationDoneMsg struct{ game int }

type autoAdvanceMsg struct{ game int }

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	needStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model implements the Bubble Tea game UI.
type Model struct {
	config  model.Config
	history History
	now     func() time.Time
	seeds   *rand.Rand

	session   *game.Session
	snap      game.Snapshot
	gameID    int
	seed      int64
	startedAt time.Time
	saved     bool
	cursor    game.Position

	weights           map[int]float64
	weakNoticePrinted bool

	times store.Times

	keys keyMap
	help help.Model

	width  int
	height int
}

// NewModel constructs the game TUI model. A zero cfg.Seed seeds from the clock.
func NewModel(cfg model.Config, history History) *Model {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m := &Model{
		config:  cfg,
		history: history,
		now:     time.Now,
		seeds:   rand.New(rand.NewSource(seed)),
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	m.refreshWeights()
	m.loadFooterStats()
	m.newSession()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		m.apply(game.Tick{})
		return m, tickCmd()
	case animationDoneMsg:
		if msg.game != m.gameID {
			return m, nil
		}
		return m, m.apply(game.AnimationComplete{})
	case autoAdvanceMsg:
		if msg.game != m.gameID {
			return m, nil
		}
		return m, m.apply(game.AutoMatchAdvance{})
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.New):
		m.newSession()
		return m.apply(game.StartGame{})
	}
	switch m.snap.Phase {
	case game.PhaseMenu:
		if key.Matches(msg, m.keys.Select) {
			return m.apply(game.StartGame{})
		}
		return nil
	case game.PhaseComplete:
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = moveCursor(m.cursor, -1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = moveCursor(m.cursor, 1, 0)
	case key.Matches(msg, m.keys.Left):
		m.cursor = moveCursor(m.cursor, 0, -1)
	case key.Matches(msg, m.keys.Right):
		m.cursor = moveCursor(m.cursor, 0, 1)
	case key.Matches(msg, m.keys.Select):
		return m.apply(game.SelectTile{Row: m.cursor.Row, Col: m.cursor.Col})
	case key.Matches(msg, m.keys.Hint):
		return m.apply(game.RequestHint{})
	}
	return nil
}

// apply feeds ev to the session, refreshes the snapshot and schedules whatever the
// new state waits for.
func (m *Model) apply(ev game.Event) tea.Cmd {
	if err := m.session.Apply(ev); err != nil {
		log.Warn().Err(err).Str("event", fmt.Sprintf("%T", ev)).Str("state", m.snap.PlayState.String()).Msg("rejected transition")
		return nil
	}
	prev := m.snap
	m.snap = m.session.Snapshot()
	if prev.Phase == game.PhaseMenu && m.snap.Phase == game.PhasePlaying {
		m.startedAt = m.now()
		m.cursor = game.Position{}
	}
	if m.snap.Phase == game.PhaseComplete && !m.saved {
		m.finishGame()
	}
	if _, isTick := ev.(game.Tick); isTick {
		return nil
	}
	id := m.gameID
	switch {
	case m.snap.Resolution.Kind != game.ResolutionNone:
		return tea.Tick(m.config.ShakeDelay, func(time.Time) tea.Msg { return animationDoneMsg{game: id} })
	case m.snap.Phase == game.PhasePlaying && m.snap.PlayState == game.AutoMatching:
		return tea.Tick(m.config.AutoDelay, func(time.Time) tea.Msg { return autoAdvanceMsg{game: id} })
	}
	return nil
}

// newSession replaces the session with a fresh one in the menu phase.
func (m *Model) newSession() {
	m.gameID++
	m.seed = m.seeds.Int63()
	m.saved = false
	m.session = game.NewSession(game.Options{
		Seed:        m.seed,
		PartialRate: m.config.PartialRate,
		Weights:     m.weights,
		Now:         m.now,
	})
	m.snap = m.session.Snapshot()
}

func (m *Model) finishGame() {
	m.saved = true
	endedAt := m.now()
	record := model.GameRecord{
		StartedAt:   m.startedAt,
		EndedAt:     endedAt,
		Seed:        m.seed,
		PartialRate: m.config.PartialRate,
		FocusWeak:   len(m.weights) > 0,
		Score:       m.snap.Score,
		Matches:     m.snap.Matches,
		DurationMs:  m.snap.ElapsedMs,
	}
	kanaStats := make([]model.KanaStats, 0, kana.Count)
	for _, k := range m.snap.CharacterStats.Seen() {
		cs := m.snap.CharacterStats[k]
		kanaStats = append(kanaStats, model.KanaStats{
			KanaIndex:  k,
			Attempts:   cs.Attempts,
			Incorrect:  cs.Incorrect,
			ResponseMs: cs.TotalResponseMs,
		})
	}

	ctx := context.Background()
	id, err := m.history.InsertSession(ctx, record, kanaStats)
	if err != nil {
		log.Error().Err(err).Msg("failed to save game")
		return
	}
	log.Info().Str("game", id).Int64("duration_ms", record.DurationMs).Int64("seed", record.Seed).Msg("game saved")
	m.loadFooterStats()
	if m.config.FocusWeak {
		m.refreshWeights()
	}
}

func (m *Model) loadFooterStats() {
	times, err := m.history.GameTimes(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("failed to load game times")
		return
	}
	m.times = times
}

func (m *Model) refreshWeights() {
	if !m.config.FocusWeak {
		m.weights = nil
		return
	}
	aggs, err := m.history.GetWeakKana(context.Background(), m.config.WeakWindow)
	if err != nil {
		log.Error().Err(err).Msg("failed to load weak kana")
		return
	}
	weak := statsPkg.SelectWeakKana(aggs, m.config.WeakTop)
	if len(weak) == 0 {
		if !m.weakNoticePrinted {
			log.Info().Msg("no stats available for weak-kana focus yet; drawing uniformly")
			m.weakNoticePrinted = true
		}
		m.weights = nil
		return
	}
	log.Debug().Ints("kana", weak).Msg("weak-kana focus")
	m.weights = game.Weights(weak, m.config.WeakFactor)
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.snap.Phase {
	case game.PhaseMenu:
		body = m.renderMenu()
	case game.PhaseComplete:
		body = m.renderComplete()
	default:
		body = m.renderPlaying()
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height < 3 {
		return body + "\n\n" + footer
	}
	content := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body)
	return content + "\n" + lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
}

func (m *Model) renderMenu() string {
	lines := []string{
		titleStyle.Render("kanamatch"),
		"",
		"Match each kana with its other two forms:",
		"hiragana, katakana and romaji.",
		"",
		fmt.Sprintf("%d kana · %d×%d board", kana.Count, game.Rows, game.Cols),
		"",
		statusStyle.Render("press enter to start"),
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderPlaying() string {
	grid := renderGrid(&m.snap, m.cursor)
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("kanamatch"),
		"",
		grid,
		"",
		m.renderStatus(),
	)
}

func (m *Model) renderStatus() string {
	clock := statsPkg.FormatDuration(m.snap.ElapsedMs)
	if m.snap.ClockPaused {
		clock += " (paused)"
	}
	line := fmt.Sprintf("Score %d  Matches %d/%d  New kana %d  Time %s",
		m.snap.Score, m.snap.Matches, kana.Count, m.snap.RemainingCount, clock)
	state := ""
	switch {
	case m.snap.PlayState == game.AutoMatching:
		state = "auto-matching the last set…"
	case m.snap.NeededTypes.Len() > 0:
		names := make([]string, 0, 2)
		for _, t := range m.snap.NeededTypes.Types() {
			names = append(names, t.String())
		}
		state = "need " + needStyle.Render(strings.Join(names, " or "))
	case len(m.snap.Hint) > 0:
		state = "hint shown"
	}
	return statusStyle.Render(line) + "\n" + statusStyle.Render(state)
}

func (m *Model) renderComplete() string {
	acc := gameAccuracy(m.snap.CharacterStats)
	lines := []string{
		titleStyle.Render("All kana matched!"),
		"",
		fmt.Sprintf("Time      %s", statsPkg.FormatDuration(m.snap.ElapsedMs)),
		fmt.Sprintf("Score     %d", m.snap.Score),
		fmt.Sprintf("Accuracy  %.1f%%", acc*100),
	}
	if weak := weakestThisGame(m.snap.CharacterStats, 3); len(weak) > 0 {
		labels := make([]string, len(weak))
		for i, k := range weak {
			labels[i] = kana.MustLookup(k).Label()
		}
		lines = append(lines, fmt.Sprintf("Practice  %s", strings.Join(labels, "  ")))
	}
	lines = append(lines, "", statusStyle.Render("n new game · q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderFooter() string {
	segments := []string{m.help.View(m.keys)}
	if m.times.Games > 0 {
		segments = append(segments,
			fmt.Sprintf("Last %s", statsPkg.FormatDuration(m.times.LastMs)),
			fmt.Sprintf("Best %s", statsPkg.FormatDuration(m.times.BestMs)),
		)
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func gameAccuracy(table game.StatsTable) float64 {
	attempts, incorrect := 0, 0
	for _, cs := range table {
		attempts += cs.Attempts
		incorrect += cs.Incorrect
	}
	if attempts+incorrect == 0 {
		return 1
	}
	return float64(attempts) / float64(attempts+incorrect)
}

// weakestThisGame returns up to n kana that drew mistakes, weakest first.
func weakestThisGame(table game.StatsTable, n int) []int {
	aggs := make([]model.KanaAggregate, 0, len(table))
	for k, cs := range table {
		if cs.Incorrect == 0 {
			continue
		}
		aggs = append(aggs, model.KanaAggregate{
			KanaIndex:  k,
			Attempts:   cs.Attempts,
			Incorrect:  cs.Incorrect,
			ResponseMs: cs.TotalResponseMs,
		})
	}
	return statsPkg.SelectWeakKana(aggs, n)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
