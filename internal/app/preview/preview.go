//go:generate mockgen -source=preview.go -destination=preview_mock.go -package=preview
package preview

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"lunatint/internal/app/color"
	"lunatint/internal/app/palette"
	"lunatint/internal/app/ramp"
	"lunatint/internal/config"
)

// contrastThreshold is the HSL lightness above which swatch labels switch to dark text
const contrastThreshold = 0.55

var (
	darkText  = lipgloss.Color("#000000")
	lightText = lipgloss.Color("#FFFFFF")
	nameColor = lipgloss.Color("#9E9E9E")
)

// Preview writes ramps to a terminal as colored swatches, or as a plain table when the
// writer is not a terminal
type Preview interface {
	Write(w io.Writer, entries []*palette.Entry) error
}

type preview struct {
	enabled    bool
	isTerminal func(w io.Writer) bool
}

// NewPreview creates a preview honoring preview.enabled
func NewPreview(cfg *config.Config) Preview {
	return &preview{
		enabled:    cfg.Preview.Enabled,
		isTerminal: isTerminal,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}

// Write renders entries to w; nothing is written when the preview is disabled
func (p *preview) Write(w io.Writer, entries []*palette.Entry) error {
	if !p.enabled || len(entries) == 0 {
		return nil
	}

	var out string
	if p.isTerminal(w) {
		out = renderSwatches(lipgloss.NewRenderer(w), entries)
	} else {
		out = renderTable(entries)
	}

	_, err := io.WriteString(w, out)

	return err
}

// renderSwatches draws one row per entry, one cell per step; the base step is bold and underlined
func renderSwatches(r *lipgloss.Renderer, entries []*palette.Entry) string {
	width := nameWidth(entries)
	label := r.NewStyle().Foreground(nameColor).Width(width + 1)

	rows := make([]string, 0, len(entries))

	for _, e := range entries {
		cells := []string{label.Render(e.Name)}

		for _, s := range ramp.Steps() {
			c := e.Ramp.At(s)

			style := r.NewStyle().
				Background(lipgloss.Color(opaque(c).Hex())).
				Foreground(textFor(c)).
				Padding(0, 1)

			if s == e.BaseStep {
				style = style.Bold(true).Underline(true)
			}

			cells = append(cells, style.Render(s.String()))
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

// renderTable writes "name  #hex ..." with the base step in brackets
func renderTable(entries []*palette.Entry) string {
	width := nameWidth(entries)

	var b strings.Builder

	for _, e := range entries {
		fmt.Fprintf(&b, "%-*s", width, e.Name)

		for _, s := range ramp.Steps() {
			hex := e.Ramp.At(s).Hex()
			if s == e.BaseStep {
				hex = "[" + hex + "]"
			}

			b.WriteString(" ")
			b.WriteString(hex)
		}

		b.WriteString("\n")
	}

	return b.String()
}

func nameWidth(entries []*palette.Entry) int {
	width := 0

	for _, e := range entries {
		if n := lipgloss.Width(e.Name); n > width {
			width = n
		}
	}

	return width
}

func opaque(c color.Color) color.Color {
	return color.New(c.R, c.G, c.B)
}

func textFor(c color.Color) lipgloss.Color {
	if c.Lightness() > contrastThreshold {
		return darkText
	}

	return lightText
}
