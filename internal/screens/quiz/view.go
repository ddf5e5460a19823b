package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/joncalder/dialmap/internal/progress"
	"github.com/joncalder/dialmap/internal/ui/theme"
)

const panelHeight = 7

func (s *QuizScreen) View(width, height int) string {
	if s.engine.Pending() == 0 && s.engine.Current() == nil {
		return renderAllMastered(width)
	}

	mapHeight := height - panelHeight
	if mapHeight < 5 {
		mapHeight = 5
	}

	var b strings.Builder
	b.WriteString(s.renderMap(width, mapHeight))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")
	b.WriteString(s.renderQuestion(width))
	b.WriteString("\n")

	answerLine := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + s.input.View())
	b.WriteString(answerLine)
	b.WriteString("\n")
	b.WriteString(s.renderFeedback(width))
	b.WriteString("\n")
	b.WriteString(s.renderStatusLine(width))

	return b.String()
}

// renderMap plots one marker per entry on the projected grid.
func (s *QuizScreen) renderMap(width, height int) string {
	gridW := width - 4
	if gridW < 10 {
		gridW = 10
	}

	cells := make([][]string, height)
	for y := range cells {
		cells[y] = make([]string, gridW)
		for x := range cells[y] {
			cells[y][x] = " "
		}
	}

	positions := s.grid.Positions(s.entries, gridW, height)
	showMastered := s.prog.ShowMastered()
	current := s.engine.Current()

	// Plain markers first so the special ones draw on top of shared cells.
	for i, e := range s.entries {
		hint := s.engine.Hint(e)
		if hint.Current {
			continue
		}
		pos := positions[e.Code]
		switch {
		case s.cursorOn && i == s.cursor:
			cells[pos[1]][pos[0]] = theme.MarkerCursor.Render("◎")
		case hint.Mastered:
			if showMastered {
				cells[pos[1]][pos[0]] = theme.MarkerMastered.Render("●")
			}
		case hint.Review:
			cells[pos[1]][pos[0]] = theme.MarkerReview.Render("●")
		default:
			cells[pos[1]][pos[0]] = theme.MarkerPending.Render("○")
		}
	}

	if current != nil {
		pos := positions[current.Code]
		marker := "◉"
		if s.animate {
			marker = "❉"
		}
		cells[pos[1]][pos[0]] = theme.MarkerCurrent.Render(marker)

		// Label the focused marker, but never with the answer.
		if s.prog.Direction() == progress.PlaceToCode {
			writeLabel(cells, pos[0]+2, pos[1], current.Place, gridW)
		}
	}

	if s.cursorOn && s.cursor < len(s.entries) {
		e := s.entries[s.cursor]
		if current == nil || current.Code != e.Code {
			pos := positions[e.Code]
			writeLabel(cells, pos[0]+2, pos[1], e.Place, gridW)
		}
	}

	lines := make([]string, height)
	for y := range cells {
		lines[y] = "  " + strings.Join(cells[y], "")
	}
	return strings.Join(lines, "\n")
}

// writeLabel drops a dim place label into the cell row, clipped to the grid.
func writeLabel(cells [][]string, x, y int, label string, gridW int) {
	for i, r := range label {
		cx := x + i
		if cx >= gridW {
			return
		}
		cells[y][cx] = theme.Hint.Render(string(r))
	}
}

func (s *QuizScreen) renderQuestion(width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)

	current := s.engine.Current()
	if current == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Pick a location with Ctrl+N/P and Enter, or Ctrl+S for a random one.")
	}

	if s.prog.Direction() == progress.PlaceToCode {
		return style.Render(fmt.Sprintf("What is the dialling code for %s?", current.Place))
	}
	return style.Render(fmt.Sprintf("Which place has the dialling code %s?", current.Code))
}

func (s *QuizScreen) renderFeedback(width int) string {
	if s.feedback == "" {
		return ""
	}
	color := theme.Error
	if s.feedbackGood {
		color = theme.Success
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(color).
		Bold(true).
		Render(s.feedback)
}

func (s *QuizScreen) renderStatusLine(width int) string {
	dir := "place → code"
	if s.prog.Direction() == progress.CodeToPlace {
		dir = "code → place"
	}
	auto := "off"
	if s.prog.AutoAdvance() {
		auto = "on"
	}
	shown := "shown"
	if !s.prog.ShowMastered() {
		shown = "hidden"
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Direction: %s   Auto-advance: %s   Mastered: %s   Left: %d",
			dir, auto, shown, s.engine.Pending()))
}

func renderAllMastered(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render("All codes mastered!"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Reset your progress from the home screen to play again."))
	return b.String()
}
