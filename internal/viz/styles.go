package viz

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles is the set of text styles derived from a Theme.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Subtle  lipgloss.Style
	Warning lipgloss.Style
	Panel   lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		Label: lipgloss.NewStyle().
			Foreground(t.Muted),
		Value: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent),
		Subtle: lipgloss.NewStyle().
			Foreground(t.Muted).
			Italic(true),
		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Warning),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
	}
}

// KeyValue renders an aligned "label value" line.
func (s Styles) KeyValue(label string, value any) string {
	return s.Label.Render(fmt.Sprintf("%-12s", label)) + " " + s.Value.Render(fmt.Sprint(value))
}

// Hex formats c as #rrggbb, ignoring alpha.
func Hex(c color.RGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// Swatch renders text on a background of colour c.
func Swatch(c color.RGBA, text string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(Hex(c))).
		Render(text)
}

// HeatMap renders one swatch of cellWidth spaces per colour, one line per row.
func HeatMap(rows [][]color.RGBA, cellWidth int) string {
	if cellWidth < 1 {
		cellWidth = 1
	}
	cell := strings.Repeat(" ", cellWidth)

	lines := make([]string, len(rows))
	for j, row := range rows {
		var b strings.Builder
		for _, c := range row {
			b.WriteString(Swatch(c, cell))
		}
		lines[j] = b.String()
	}
	return strings.Join(lines, "\n")
}

// Sparkline renders values as block characters scaled to their range,
// resampled to at most width characters.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		idx := int((values[i*step] - lo) / span * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		b.WriteRune(chars[idx])
	}
	return b.String()
}

// Separator renders a muted rule of the given width.
func (s Styles) Separator(width int) string {
	if width < 8 {
		return s.Label.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return s.Label.Render(strings.Repeat("─", mid-2) + " ◆ " + strings.Repeat("─", width-mid-1))
}
