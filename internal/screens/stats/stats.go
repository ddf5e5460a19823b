package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/joncalder/dialmap/internal/progress"
	"github.com/joncalder/dialmap/internal/router"
	"github.com/joncalder/dialmap/internal/screen"
	"github.com/joncalder/dialmap/internal/store"
	"github.com/joncalder/dialmap/internal/ui/layout"
	"github.com/joncalder/dialmap/internal/ui/theme"
)

const recentLimit = 12

// StatsScreen shows the progress summary and the most recent answers.
type StatsScreen struct {
	prog    *progress.Tracker
	history store.HistoryRepo
	total   int

	recent []store.AnswerRecord
	err    error
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates the stats screen. History is read once on entry.
func New(prog *progress.Tracker, history store.HistoryRepo, total int) *StatsScreen {
	s := &StatsScreen{prog: prog, history: history, total: total}
	s.recent, s.err = history.Recent(context.Background(), recentLimit)
	return s
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc", "enter", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(s.renderSummary(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", maxInt(width-4, 0))))
	b.WriteString("\n")
	b.WriteString(s.renderRecent(width))

	return b.String()
}

func (s *StatsScreen) renderSummary(width int) string {
	mastered := s.prog.MasteredCount()
	pct := 0
	if s.total > 0 {
		pct = mastered * 100 / s.total
	}

	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	rows := []string{
		label.Render("Mastered    ") + value.Render(fmt.Sprintf("%d / %d  (%d%%)", mastered, s.total, pct)),
		label.Render("In review   ") + value.Render(fmt.Sprintf("%d", s.prog.ReviewCount())),
		label.Render("Mistakes    ") + value.Render(fmt.Sprintf("%d", s.prog.Mistakes())),
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(rows, "\n"))
}

func (s *StatsScreen) renderRecent(width int) string {
	title := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Recent answers")

	if s.err != nil {
		return title + "\n" + lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("History unavailable: "+s.err.Error())
	}

	if len(s.recent) == 0 {
		return title + "\n" + lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("No answers recorded yet.")
	}

	var rows []string
	for _, rec := range s.recent {
		rows = append(rows, renderAnswerRow(rec))
	}

	return title + "\n" + lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(rows, "\n"))
}

func renderAnswerRow(rec store.AnswerRecord) string {
	var mark string
	switch {
	case rec.Revealed:
		mark = lipgloss.NewStyle().Foreground(theme.Accent).Render("◌ revealed")
	case rec.Correct:
		mark = lipgloss.NewStyle().Foreground(theme.Success).Render("✓ correct ")
	default:
		mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✗ wrong   ")
	}

	given := rec.Given
	if given == "" {
		given = "-"
	}
	if len(given) > 18 {
		given = given[:17] + "…"
	}

	return fmt.Sprintf("%s  %s  %-18s  %s",
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(rec.At.Format("15:04")),
		lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("%-7s", rec.Code)),
		given,
		mark,
	)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
