package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skyraid/internal/core"
)

// Layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the top scores sidebar
	sidebarWidth       = 28 // Sidebar width including its border
	statusRows         = 1  // Help or name prompt below the arena
)

var (
	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	sidebarTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))
)

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

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

func (m Model) showSidebar() bool {
	return m.board != nil && m.width >= minWidthForSidebar
}

func (m Model) gameWidth() int {
	if m.showSidebar() {
		return m.width - sidebarWidth
	}
	return m.width
}

func (m Model) gameHeight() int {
	return max(m.height-statusRows, 0)
}

// layout joins the arena with the sidebar and puts the status line below.
func (m Model) layout(arena string) string {
	if m.showSidebar() {
		arena = lipgloss.JoinHorizontal(lipgloss.Top, arena, m.renderSidebar())
	}
	return lipgloss.JoinVertical(lipgloss.Left, arena, m.renderStatus())
}

func (m Model) renderStatus() string {
	if m.prompting {
		return promptStyle.Render(fmt.Sprintf("Score %d! ", m.game.Score())) +
			m.prompt.View() + dimStyle.Render("  enter save  esc skip")
	}
	return dimStyle.Render("arrows/wasd move  space fire  p pause  r restart  esc title  q quit")
}

// renderSidebar draws the top scores panel.
func (m Model) renderSidebar() string {
	inner := sidebarWidth - 4 // border + padding
	var b strings.Builder
	b.WriteString(sidebarTitleStyle.Render("TOP SCORES"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", inner))
	b.WriteString("\n")

	if len(m.scores) == 0 {
		b.WriteString(dimStyle.Render("No scores yet"))
	}
	nameW := inner - 11
	for i, e := range m.scores {
		name := e.Name
		if r := []rune(name); len(r) > nameW {
			name = string(r[:nameW-1]) + "."
		}
		fmt.Fprintf(&b, "%2d. %-*s %6d", i+1, nameW, name, e.Score)
		if i < len(m.scores)-1 {
			b.WriteString("\n")
		}
	}
	if m.best > 0 {
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "Best run: %d", m.best)
	}
	if m.offline {
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("(leaderboard offline)"))
	}

	return sidebarStyle.
		Width(sidebarWidth - 2).
		Height(max(m.gameHeight()-2, 0)).
		Render(b.String())
}
