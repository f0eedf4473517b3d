// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/kanamatch/internal/kana"
	"github.com/verte-zerg/kanamatch/internal/model"
	"github.com/verte-zerg/kanamatch/internal/stats"
)

const (
	tabOverview = iota
	tabKanaTable
	tabKanaCurves
)

const plotHeight = 6

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = activeNavStyle.
				Foreground(lipgloss.Color("#B0B0B0")).
				Bold(false).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	modalStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

type keyMap struct {
	Prev     key.Binding
	Next     key.Binding
	Narrower key.Binding
	Wider    key.Binding
	Edit     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev tab")),
		Next:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next tab")),
		Narrower: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "window")),
		Wider:    key.NewBinding(key.WithKeys("="), key.WithHelp("=", "window")),
		Edit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick kana")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Narrower, k.Wider, k.Edit, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Top, k.Bottom}}
}

// Model implements the Bubble Tea stats UI.
type Model struct {
	source stats.Source
	cfg    model.StatsConfig

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	kanaTable table.Model

	kanaInputMode  bool
	kanaInput      textinput.Model
	kanaInputError string

	keys keyMap
	help help.Model

	width  int
	height int
}

// NewModel constructs a stats UI model.
func NewModel(src stats.Source, cfg model.StatsConfig) *Model {
	m := &Model{
		source: src,
		cfg:    cfg,
		tabs:   []string{"Overview", "Kana Table", "Kana Curves"},
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.kanaTable = table.New(
		table.WithColumns(kanaColumns()),
		table.WithStyles(kanaTableStyles()),
		table.WithFocused(true),
	)
	m.kanaInput = textinput.New()
	m.kanaInput.Prompt = "Kana: "
	m.kanaInput.Placeholder = "ka shi ツ"
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.kanaInputMode {
			return m, m.updateKanaInput(msg)
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Prev):
		m.activeTab = (m.activeTab + len(m.tabs) - 1) % len(m.tabs)
		return tea.ClearScreen
	case key.Matches(msg, m.keys.Next):
		m.activeTab = (m.activeTab + 1) % len(m.tabs)
		return tea.ClearScreen
	case key.Matches(msg, m.keys.Wider):
		m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
		m.refreshReport()
		return nil
	case key.Matches(msg, m.keys.Narrower):
		m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
		m.refreshReport()
		return nil
	case key.Matches(msg, m.keys.Edit) && m.activeTab == tabKanaCurves:
		m.kanaInputMode = true
		m.kanaInputError = ""
		m.kanaInput.SetValue(curveKanaValue(m.report.CurveKana))
		return m.kanaInput.Focus()
	case key.Matches(msg, m.keys.Top):
		if m.activeTab == tabKanaTable {
			m.kanaTable.GotoTop()
		} else {
			m.viewports[m.activeTab].GotoTop()
		}
		return nil
	case key.Matches(msg, m.keys.Bottom):
		if m.activeTab == tabKanaTable {
			m.kanaTable.GotoBottom()
		} else {
			m.viewports[m.activeTab].GotoBottom()
		}
		return nil
	}
	var cmd tea.Cmd
	if m.activeTab == tabKanaTable {
		m.kanaTable, cmd = m.kanaTable.Update(msg)
		return cmd
	}
	m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
	return cmd
}

func (m *Model) updateKanaInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.kanaInputMode = false
		m.kanaInputError = ""
		return nil
	case tea.KeyEnter:
		chosen, err := kana.ParseList(m.kanaInput.Value())
		if err != nil {
			m.kanaInputError = err.Error()
			return nil
		}
		m.cfg.Kana = chosen
		if err := m.report.SelectCurveKana(context.Background(), m.source, chosen); err != nil {
			m.errMsg = err.Error()
		}
		m.kanaInputMode = false
		m.kanaInputError = ""
		m.renderTabContents()
		return nil
	}
	var cmd tea.Cmd
	m.kanaInput, cmd = m.kanaInput.Update(msg)
	return cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.kanaInputMode {
		return fitLines(m.renderKanaModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = lipgloss.Height(activeNavStyle.Render("X")) + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.kanaTable.SetWidth(m.width)
	m.kanaTable.SetHeight(bodyHeight)
	m.kanaInput.Width = max(10, modalInnerWidth(m.width)-lipgloss.Width(m.kanaInput.Prompt))
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.source, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load stats.")
		}
		return
	}
	m.errMsg = ""
	m.report = report
	m.kanaTable.SetRows(kanaRows(report.KanaAggsWindow))
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report.Sessions, m.cfg.CurveWindow, width))
	m.viewports[tabKanaCurves].SetContent(renderKanaCurves(m.report, m.cfg.CurveWindow, width))
}

func (m *Model) renderHeader() string {
	parts := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts[i] = activeNavStyle.Render(tab)
		} else {
			parts[i] = inactiveNavStyle.Render(tab)
		}
	}
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = fmt.Sprintf("%d", m.cfg.Last)
	}
	settings := fmt.Sprintf("Settings: since=%s  last=%s  window=%d", since, last, m.cfg.CurveWindow)
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...) + "\n" + headerStyle.Render(settings)
}

func (m *Model) renderBody() string {
	if m.activeTab != tabKanaTable {
		return m.viewports[m.activeTab].View()
	}
	switch {
	case len(m.report.Sessions) == 0:
		return "No games found."
	case len(m.report.KanaAggsWindow) == 0:
		return "No kana stats found."
	default:
		return m.kanaTable.View()
	}
}

func (m *Model) renderFooter() string {
	footer := m.help.View(m.keys)
	if m.errMsg != "" {
		footer += "\n" + errorStyle.Render(m.errMsg)
	}
	return footer
}

func (m *Model) renderKanaModal() string {
	body := []string{
		cardValueStyle.Render("Select Kana"),
		m.kanaInput.View(),
		headerStyle.Render("Hiragana, katakana or romaji, separated by spaces."),
		headerStyle.Render("Empty picks the most missed. Enter to apply / Esc to cancel"),
	}
	if m.kanaInputError != "" {
		body = append(body, errorStyle.Render(m.kanaInputError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func renderOverview(sessions []model.SessionAggregate, window, width int) string {
	if len(sessions) == 0 {
		return "No games found."
	}
	sum := stats.Summarize(sessions)
	cards := []string{
		metricCard("Games", fmt.Sprintf("%d", sum.Games)),
		metricCard("Avg Time", stats.FormatDuration(int64(sum.AvgMs))),
		metricCard("Best Time", stats.FormatDuration(sum.BestMs)),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", sum.AvgAccuracy*100)),
		metricCard("Mistakes", fmt.Sprintf("%d", sum.Mistakes)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		summary = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	var buf bytes.Buffer
	if err := stats.RenderCurvesWithSize(&buf, sessions, window, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render curves: %v", err)
	}
	return strings.TrimRight(summary+"\n\n"+buf.String(), "\n")
}

func metricCard(label, value string) string {
	return cardStyle.Render(cardTitleStyle.Render(label) + "\n" + cardValueStyle.Render(value))
}

func renderKanaCurves(r stats.Report, window, width int) string {
	if len(r.Sessions) == 0 {
		return "No games found."
	}
	if len(r.CurveKana) == 0 {
		return "No kana selected. Press Enter to pick kana."
	}
	labels := make([]string, 0, len(r.CurveKana))
	for _, k := range r.CurveKana {
		labels = append(labels, kana.MustLookup(k).Label())
	}
	header := headerStyle.Render("Kana: " + strings.Join(labels, ", "))
	var buf bytes.Buffer
	if err := stats.RenderKanaCurvesWithSize(&buf, r.Sessions, r.PerSession, r.CurveKana, window, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render kana curves: %v", err)
	}
	return strings.TrimRight(header+"\n"+buf.String(), "\n")
}

func kanaColumns() []table.Column {
	widths := []int{10, 9, 7, 8, 9}
	cols := make([]table.Column, len(stats.KanaHeaders))
	for i, title := range stats.KanaHeaders {
		cols[i] = table.Column{Title: title, Width: widths[i]}
	}
	return cols
}

func kanaRows(aggs []model.KanaAggregate) []table.Row {
	rows := stats.KanaRows(aggs)
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = r.Cells()
	}
	return out
}

func kanaTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#3A3A3A")).
		Bold(true)
	return styles
}

func curveKanaValue(indices []int) string {
	forms := make([]string, len(indices))
	for i, k := range indices {
		forms[i] = kana.MustLookup(k).Romaji
	}
	return strings.Join(forms, " ")
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	return (n/5 + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func modalWidth(width int) int {
	return max(40, min(width-4, 80))
}

func modalInnerWidth(width int) int {
	// 2 border + 4 padding
	return max(10, modalWidth(width)-6)
}

func padLine(line string, width int) string {
	if lineWidth := lipgloss.Width(line); lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}
