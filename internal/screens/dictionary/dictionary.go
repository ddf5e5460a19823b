package dictionary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/joncalder/dialmap/internal/catalog"
	dict "github.com/joncalder/dialmap/internal/dictionary"
	"github.com/joncalder/dialmap/internal/progress"
	engine "github.com/joncalder/dialmap/internal/quiz"
	"github.com/joncalder/dialmap/internal/router"
	"github.com/joncalder/dialmap/internal/screen"
	quizscreen "github.com/joncalder/dialmap/internal/screens/quiz"
	"github.com/joncalder/dialmap/internal/ui/components"
	"github.com/joncalder/dialmap/internal/ui/layout"
	"github.com/joncalder/dialmap/internal/ui/theme"
)

// DictionaryScreen is the browsable, searchable code dictionary with the
// per-entry study tag. Cycling a tag and selecting an entry as the active
// quiz question are two independent actions on the same row.
type DictionaryScreen struct {
	tracker *dict.Tracker
	engine  *engine.Engine
	prog    *progress.Tracker
	entries []catalog.Entry

	filter       components.TextInput
	results      []catalog.Entry
	cursor       int
	scrollOffset int
	listFocused  bool
}

var _ screen.Screen = (*DictionaryScreen)(nil)
var _ screen.KeyHintProvider = (*DictionaryScreen)(nil)

// New creates the dictionary screen showing the full catalog.
func New(tracker *dict.Tracker, eng *engine.Engine, prog *progress.Tracker, entries []catalog.Entry) *DictionaryScreen {
	return &DictionaryScreen{
		tracker: tracker,
		engine:  eng,
		prog:    prog,
		entries: entries,
		filter:  components.NewTextInput("Search place or code...", 30),
		results: tracker.Filter(""),
	}
}

func (s *DictionaryScreen) Init() tea.Cmd {
	return s.filter.Init()
}

func (s *DictionaryScreen) Title() string {
	return "Dictionary"
}

func (s *DictionaryScreen) KeyHints() []layout.KeyHint {
	if s.listFocused {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Space", Description: "Cycle status"},
			{Key: "Enter", Description: "Quiz this entry"},
			{Key: "Tab", Description: "Search"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Type", Description: "Filter"},
		{Key: "Tab/↓", Description: "List"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DictionaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		return s, cmd
	}

	if s.listFocused {
		return s.handleListKey(kmsg)
	}
	return s.handleFilterKey(kmsg)
}

func (s *DictionaryScreen) handleFilterKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		if len(s.results) > 0 {
			s.listFocused = true
		}
		return s, nil
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(msg)

	// Recompute on every query change; nothing is cached.
	s.results = s.tracker.Filter(s.filter.Value())
	s.cursor = 0
	s.scrollOffset = 0
	return s, cmd
}

func (s *DictionaryScreen) handleListKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		} else {
			s.listFocused = false
		}
	case "down", "j":
		if s.cursor < len(s.results)-1 {
			s.cursor++
		}
	case "tab":
		s.listFocused = false
	case "space", " ":
		// Cycle the study tag only; this must not double as selecting
		// the entry as the active question.
		if s.cursor < len(s.results) {
			_, _ = s.tracker.CycleStatus(context.Background(), s.results[s.cursor].Code)
		}
	case "enter":
		if s.cursor < len(s.results) {
			entry := s.results[s.cursor]
			return s, func() tea.Msg {
				return router.PushScreenMsg{
					Screen: quizscreen.NewFocused(s.engine, s.prog, s.entries, entry),
				}
			}
		}
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *DictionaryScreen) View(width, height int) string {
	var b strings.Builder

	filterLabel := "Search: "
	if !s.listFocused {
		filterLabel = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(filterLabel)
	}
	b.WriteString("  " + filterLabel + s.filter.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", maxInt(width-4, 0))))
	b.WriteString("\n")

	listHeight := height - 3
	if listHeight < 1 {
		listHeight = 1
	}
	s.adjustScroll(listHeight)

	if len(s.results) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\nNo matching entries."))
		return b.String()
	}

	for i := s.scrollOffset; i < len(s.results) && i < s.scrollOffset+listHeight; i++ {
		b.WriteString(s.renderRow(s.results[i], i == s.cursor && s.listFocused, width))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *DictionaryScreen) renderRow(e catalog.Entry, selected bool, width int) string {
	status := s.tracker.StatusOf(e.Code)
	icon := statusIcon(status)

	var quizMark string
	hint := s.engine.Hint(e)
	switch {
	case hint.Mastered:
		quizMark = lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	case hint.Review:
		quizMark = lipgloss.NewStyle().Foreground(theme.Error).Render("!")
	default:
		quizMark = " "
	}

	nameWidth := width - 30
	if nameWidth < 10 {
		nameWidth = 10
	}
	name := e.Place
	if len(name) > nameWidth {
		name = name[:nameWidth-1] + "…"
	}

	cursor := "  "
	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		cursor = "▸ "
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}

	return fmt.Sprintf("  %s%s %s %s  %s %s",
		cursor,
		icon,
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(e.Code),
		quizMark,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(status.Label()),
	)
}

func (s *DictionaryScreen) adjustScroll(listHeight int) {
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+listHeight {
		s.scrollOffset = s.cursor - listHeight + 1
	}
}

func statusIcon(st progress.Status) string {
	switch st {
	case progress.StatusLearning:
		return lipgloss.NewStyle().Foreground(theme.Accent).Render("◐")
	case progress.StatusDone:
		return lipgloss.NewStyle().Foreground(theme.Success).Render("●")
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("○")
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
