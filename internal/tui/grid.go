package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/kanamatch/internal/game"
)

// labelWidth is the widest tile label in terminal cells ("shi", "tsu").
const labelWidth = 4

var typeStyles = map[game.TileType]lipgloss.Style{
	game.Hiragana: lipgloss.NewStyle().Foreground(lipgloss.Color("#E88AA6")),
	game.Katakana: lipgloss.NewStyle().Foreground(lipgloss.Color("#6FB7D6")),
	game.Romaji:   lipgloss.NewStyle().Foreground(lipgloss.Color("#D9B45A")),
}

var (
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	fadedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7BD88F")).Underline(true)
	shakeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	removedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7BD88F")).Strikethrough(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// centerLabel pads s to width terminal cells, measuring kana as double width.
func centerLabel(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return runewidth.Truncate(s, width, "")
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// cellLabel returns the text and style for one cell. Tiles of a removal are
// already off the board, so they are looked up in the resolution.
func cellLabel(snap *game.Snapshot, pos game.Position) (string, lipgloss.Style) {
	if snap.Resolution.Kind == game.ResolutionRemoval {
		for i, p := range snap.Resolution.Positions {
			if p == pos && i < len(snap.Resolution.Tiles) {
				return snap.Resolution.Tiles[i].Display(), removedStyle
			}
		}
	}
	tile, ok := snap.Board.At(pos)
	if !ok {
		return "·", emptyStyle
	}
	switch {
	case snap.Resolution.Kind == game.ResolutionShake && snap.IsAnimating(pos):
		return tile.Display(), shakeStyle
	case snap.IsSelected(pos):
		return tile.Display(), typeStyles[tile.Type].Inherit(selectedStyle)
	case snap.IsHinted(pos):
		return tile.Display(), hintStyle
	case snap.IsFaded(pos):
		return tile.Display(), fadedStyle
	default:
		return tile.Display(), typeStyles[tile.Type]
	}
}

// renderCell draws one cell as "[label]" under the cursor and " label " elsewhere.
// A shaking tile is nudged one column right.
func renderCell(snap *game.Snapshot, pos, cursor game.Position) string {
	label, style := cellLabel(snap, pos)
	text := centerLabel(label, labelWidth)
	if snap.Resolution.Kind == game.ResolutionShake && snap.IsAnimating(pos) {
		text = centerLabel(" "+label, labelWidth)
	}
	left, right := " ", " "
	if pos == cursor {
		left, right = cursorStyle.Render("["), cursorStyle.Render("]")
	}
	return left + style.Render(text) + right
}

func renderGrid(snap *game.Snapshot, cursor game.Position) string {
	rows := make([]string, game.Rows)
	for r := range rows {
		var b strings.Builder
		for c := 0; c < game.Cols; c++ {
			b.WriteString(renderCell(snap, game.Position{Row: r, Col: c}, cursor))
		}
		rows[r] = b.String()
	}
	return strings.Join(rows, "\n")
}

// moveCursor steps the cursor, wrapping around the board edges.
func moveCursor(cursor game.Position, dRow, dCol int) game.Position {
	return game.Position{
		Row: (cursor.Row + dRow + game.Rows) % game.Rows,
		Col: (cursor.Col + dCol + game.Cols) % game.Cols,
	}
}
