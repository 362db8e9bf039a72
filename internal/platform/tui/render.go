package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mygameindie/Zombiepet/internal/core"
	"github.com/Mygameindie/Zombiepet/internal/host"
)

const progressWidth = 20

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorBrown:         lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	core.ColorPink:          lipgloss.NewStyle().Foreground(lipgloss.Color("218")),
}

var (
	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))
	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	toolbarStyle = lipgloss.NewStyle().Background(lipgloss.Color("235"))
)

// hit is a clickable control's column span [x0, x1) on a row.
type hit struct {
	id     string
	x0, x1 int
	y      int
}

func hitAt(hits []hit, x, y int) (string, bool) {
	for _, h := range hits {
		if h.y == y && x >= h.x0 && x < h.x1 {
			return h.id, true
		}
	}
	return "", false
}

// controlText returns the plain text of a control as shown in the toolbar.
func controlText(c *host.Control) string {
	switch c.Kind {
	case host.Button:
		return " " + c.Text + " "
	case host.Input:
		return "[" + c.Text + "]"
	case host.Progress:
		filled := int(core.ClampF(c.Value, 0, 1) * progressWidth)
		return "[" + strings.Repeat("#", filled) + strings.Repeat("-", progressWidth-filled) + "]"
	default:
		return c.Text
	}
}

// renderToolbar lays out the non-anchored controls on one row starting at
// the document's scroll offset. The focused input is drawn by inputView.
func renderToolbar(doc *host.Document, width int, focused string, inputView string) (string, []hit) {
	var (
		b    strings.Builder
		hits []hit
		x    int
	)
	controls := doc.Controls()
	for _, c := range controls[min(doc.ScrollOffset(), len(controls)):] {
		if c.Hidden || c.Anchored {
			continue
		}
		text := controlText(c)
		style := labelStyle
		switch {
		case c.Kind == host.Input && c.ID == focused:
			text = inputView
			style = lipgloss.NewStyle()
		case c.Kind == host.Button && c.Active:
			style = activeStyle
		case c.Kind == host.Button || c.Kind == host.Input:
			style = buttonStyle
		}
		w := lipgloss.Width(text)
		if x+w > width {
			break
		}
		b.WriteString(style.Render(text))
		if c.Kind == host.Button || c.Kind == host.Input {
			hits = append(hits, hit{id: c.ID, x0: x, x1: x + w})
		}
		x += w
		if x < width {
			b.WriteByte(' ')
			x++
		}
	}
	return toolbarStyle.Width(width).MaxWidth(width).Render(b.String()), hits
}

// overlay copies the surface and draws the anchored controls on top. It
// returns the copy and the clickable spans in surface coordinates.
func overlay(doc *host.Document, src *core.Screen) (*core.Screen, []hit) {
	dst := core.NewScreen(src.Width(), src.Height())
	for y := range src.Height() {
		for x := range src.Width() {
			c := src.GetCell(x, y)
			dst.SetCell(x, y, c.Rune, c.Color)
		}
	}

	var hits []hit
	for _, c := range doc.Controls() {
		if c.Hidden || !c.Anchored {
			continue
		}
		text := c.Text
		color := core.ColorBrightWhite
		if c.Kind == host.Button {
			text = "[" + c.Text + "]"
			color = core.ColorBrightYellow
			hits = append(hits, hit{id: c.ID, x0: c.AtX, x1: c.AtX + len([]rune(text)), y: c.AtY})
		}
		dst.DrawTextColor(c.AtX, c.AtY, text, color)
	}
	return dst, hits
}

// renderStatus renders the status message on the left and help on the right.
func renderStatus(st *host.Status, helpView string, width int) string {
	style := statusStyle
	if st.IsError() {
		style = errorStyle
	}
	left := style.Render(st.Text())
	gap := width - lipgloss.Width(left) - lipgloss.Width(helpView)
	if gap < 1 {
		return lipgloss.NewStyle().MaxWidth(width).Render(left)
	}
	return left + strings.Repeat(" ", gap) + hintStyle.Render(helpView)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
