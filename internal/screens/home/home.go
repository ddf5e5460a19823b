package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/joncalder/dialmap/internal/catalog"
	"github.com/joncalder/dialmap/internal/dictionary"
	"github.com/joncalder/dialmap/internal/progress"
	engine "github.com/joncalder/dialmap/internal/quiz"
	"github.com/joncalder/dialmap/internal/router"
	"github.com/joncalder/dialmap/internal/screen"
	dictscreen "github.com/joncalder/dialmap/internal/screens/dictionary"
	quizscreen "github.com/joncalder/dialmap/internal/screens/quiz"
	statsscreen "github.com/joncalder/dialmap/internal/screens/stats"
	"github.com/joncalder/dialmap/internal/store"
	"github.com/joncalder/dialmap/internal/ui/components"
	"github.com/joncalder/dialmap/internal/ui/layout"
	"github.com/joncalder/dialmap/internal/ui/theme"
)

// Deps carries the services the home menu hands off to the other screens.
type Deps struct {
	Entries    []catalog.Entry
	Progress   *progress.Tracker
	Engine     *engine.Engine
	Dictionary *dictionary.Tracker
	History    store.HistoryRepo
}

// HomeScreen is the entry menu.
type HomeScreen struct {
	deps         Deps
	menu         components.Menu
	confirmReset bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps Deps) *HomeScreen {
	s := &HomeScreen{deps: deps}
	s.menu = components.NewMenu([]components.MenuItem{
		{
			Label: "START QUIZ",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: quizscreen.New(deps.Engine, deps.Progress, deps.Entries),
					}
				}
			},
		},
		{
			Label: "DICTIONARY",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: dictscreen.New(deps.Dictionary, deps.Engine, deps.Progress, deps.Entries),
					}
				}
			},
		},
		{
			Label: "STATS",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: statsscreen.New(deps.Progress, deps.History, len(deps.Entries)),
					}
				}
			},
		},
		{
			Label: "RESET PROGRESS",
			Action: func() tea.Cmd {
				s.confirmReset = true
				return nil
			},
		},
		{
			Label:  "EXIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	})
	return s
}

func (s *HomeScreen) Init() tea.Cmd {
	return nil
}

func (s *HomeScreen) Title() string {
	return "Home"
}

func (s *HomeScreen) KeyHints() []layout.KeyHint {
	if s.confirmReset {
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.confirmReset {
		if kmsg, ok := msg.(tea.KeyMsg); ok {
			switch kmsg.String() {
			case "y", "Y":
				s.confirmReset = false
				// Quiz progress only; dictionary tags survive a reset.
				_, _ = s.deps.Engine.Reset(context.Background())
			case "n", "N", "esc":
				s.confirmReset = false
			}
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *HomeScreen) View(width, height int) string {
	if s.confirmReset {
		return s.renderResetConfirm(width, height)
	}

	logo := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(strings.Join([]string{
			"   ___  _      __                ",
			"  / _ \\(_)__ _/ /_ _  ___ ____   ",
			" / // / / _ `/ /  ' \\/ _ `/ _ \\  ",
			"/____/_/\\_,_/_/_/_/_/\\_,_/ .__/  ",
			"                        /_/      ",
		}, "\n"))

	tagline := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Learn the UK dialling codes, one place at a time.")

	tally := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Render(fmt.Sprintf("%d of %d codes mastered",
			s.deps.Progress.MasteredCount(), len(s.deps.Entries)))

	content := logo + "\n\n" + tagline + "\n" + tally + "\n\n" + s.menu.View()

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (s *HomeScreen) renderResetConfirm(width, height int) string {
	question := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Reset quiz progress?")

	detail := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Mastered codes, review list and mistake count will be cleared.\nDictionary statuses are kept.")

	keys := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Render("[Y] Reset    [N] Cancel")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 3).
		Align(lipgloss.Center).
		Render(question + "\n\n" + detail + "\n\n" + keys)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}
