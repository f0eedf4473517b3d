package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight   = 6
	minPlotWidth        = 10
	axisLabelWidth      = 8
	axisSeparator       = " │ "
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var barRunes = []rune(" ▁▂▃▄▅▆▇█")

var colorPalette = []string{
	"\x1b[36m", // cyan
	"\x1b[35m", // magenta
	"\x1b[33m", // yellow
	"\x1b[32m", // green
}

// PlotSeries renders one bar panel per series.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	return plotSeries(w, title, series, width, height, false)
}

// PlotSeriesWithColor renders the panels with optional forced color output.
func PlotSeriesWithColor(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	return plotSeries(w, title, series, width, height, forceColor)
}

func plotSeries(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	series = lo.Filter(series, func(s Series, _ int) bool { return len(s.Values) > 0 })
	if len(series) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	width = max(width, minPlotWidth)
	useColor := shouldUseColor(w, forceColor)

	var b strings.Builder
	if title != "" {
		b.WriteString(title + "\n")
	}
	for i, s := range series {
		values := resampleSeries(s.Values, width)
		lowest, highest := lo.Min(values), lo.Max(values)
		fmt.Fprintf(&b, "%s  min=%.2f max=%.2f last=%.2f\n", s.Name, lowest, highest, values[len(values)-1])
		for r, line := range barRows(values, lowest, highest, height) {
			label := ""
			switch r {
			case 0:
				label = fmt.Sprintf("%.1f", highest)
			case height - 1:
				label = fmt.Sprintf("%.1f", lowest)
			}
			if useColor {
				line = colorPalette[i%len(colorPalette)] + line + colorReset
			}
			fmt.Fprintf(&b, "%*s%s%s\n", axisLabelWidth, label, axisSeparator, line)
		}
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// barRows draws the values as vertical bars with eighth-block resolution, top row
// first. A flat series is drawn at half height.
func barRows(values []float64, lowest, highest float64, height int) []string {
	levels := height * 8
	filled := lo.Map(values, func(v float64, _ int) int {
		if highest-lowest < 1e-9 {
			return levels / 2
		}
		return max(1, int(math.Round((v-lowest)/(highest-lowest)*float64(levels))))
	})
	rows := make([]string, height)
	for r := range rows {
		base := (height - 1 - r) * 8
		line := make([]rune, len(filled))
		for x, f := range filled {
			line[x] = barRunes[max(0, min(f-base, 8))]
		}
		rows[r] = string(line)
	}
	return rows
}

// resampleSeries averages values into at most width buckets. Short series are
// returned unchanged.
func resampleSeries(values []float64, width int) []float64 {
	if len(values) <= width {
		return append([]float64(nil), values...)
	}
	out := make([]float64, width)
	for i := range out {
		start := i * len(values) / width
		end := max((i+1)*len(values)/width, start+1)
		out[i] = lo.Sum(values[start:end]) / float64(end-start)
	}
	return out
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	return max(totalWidth-axisLabelWidth-utf8.RuneCountInString(axisSeparator), minPlotWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
