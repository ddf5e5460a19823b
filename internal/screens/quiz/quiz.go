package quiz

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/joncalder/dialmap/internal/catalog"
	"github.com/joncalder/dialmap/internal/geomap"
	"github.com/joncalder/dialmap/internal/progress"
	engine "github.com/joncalder/dialmap/internal/quiz"
	"github.com/joncalder/dialmap/internal/router"
	"github.com/joncalder/dialmap/internal/screen"
	"github.com/joncalder/dialmap/internal/ui/components"
	"github.com/joncalder/dialmap/internal/ui/layout"
)

// autoAdvanceDelay is how long a correct answer lingers before the next
// question appears when auto-advance is on.
const autoAdvanceDelay = time.Second

// QuizScreen runs the map quiz: one marker per entry, a question panel,
// and an answer field.
type QuizScreen struct {
	engine  *engine.Engine
	prog    *progress.Tracker
	entries []catalog.Entry
	grid    *geomap.Grid
	input   components.TextInput

	cursor     int  // index into entries for keyboard map navigation
	cursorOn   bool // cursor marker visible
	animate    bool // last focus change wants a pan animation
	advanceSeq int  // auto-advance token; bumping it cancels pending timers

	feedback     string
	feedbackGood bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the quiz screen and draws the first question.
func New(eng *engine.Engine, prog *progress.Tracker, entries []catalog.Entry) *QuizScreen {
	s := &QuizScreen{
		engine:  eng,
		prog:    prog,
		entries: entries,
		grid:    geomap.NewGrid(entries),
		input:   components.NewTextInput("Type your answer...", 30),
	}
	if eng.Current() == nil {
		s.animate = eng.Next(context.Background()) != nil
	}
	return s
}

// NewFocused creates the quiz screen with entry preselected as the active
// question. Explicit selection requests no pan animation.
func NewFocused(eng *engine.Engine, prog *progress.Tracker, entries []catalog.Entry, entry catalog.Entry) *QuizScreen {
	s := New(eng, prog, entries)
	eng.Choose(entry)
	s.animate = false
	s.feedback = ""
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+R", Description: "Reveal"},
		{Key: "Ctrl+S", Description: "Skip"},
		{Key: "Ctrl+N/P", Description: "Move cursor"},
		{Key: "Tab", Description: "Direction"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		return s.handleAdvance(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *QuizScreen) handleAdvance(msg advanceMsg) (screen.Screen, tea.Cmd) {
	if msg.Seq != s.advanceSeq {
		// A skip, reveal, or manual selection got there first.
		return s, nil
	}
	s.nextQuestion()
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	ctx := context.Background()

	switch msg.String() {
	case "enter":
		return s.handleEnter(ctx)

	case "ctrl+r":
		s.invalidateAdvance()
		if text, ok := s.engine.Reveal(ctx); ok {
			s.feedback = fmt.Sprintf("Answer: %s", text)
			s.feedbackGood = false
		}
		return s, nil

	case "ctrl+s":
		s.invalidateAdvance()
		s.nextQuestion()
		return s, nil

	case "ctrl+n":
		s.moveCursor(1)
		return s, nil

	case "ctrl+p":
		s.moveCursor(-1)
		return s, nil

	case "tab":
		dir := progress.CodeToPlace
		if s.prog.Direction() == progress.CodeToPlace {
			dir = progress.PlaceToCode
		}
		_ = s.prog.SetDirection(ctx, dir)
		s.feedback = ""
		return s, nil

	case "ctrl+a":
		_ = s.prog.SetAutoAdvance(ctx, !s.prog.AutoAdvance())
		return s, nil

	case "ctrl+e":
		_ = s.prog.SetShowMastered(ctx, !s.prog.ShowMastered())
		return s, nil

	case "esc":
		s.invalidateAdvance()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// handleEnter submits the typed answer, or, with an empty field and the
// map cursor active, selects the entry under the cursor as the question.
func (s *QuizScreen) handleEnter(ctx context.Context) (screen.Screen, tea.Cmd) {
	if s.input.Value() == "" {
		if s.cursorOn && s.cursor < len(s.entries) {
			s.invalidateAdvance()
			s.engine.Choose(s.entries[s.cursor])
			s.animate = false
			s.feedback = ""
			s.input.Reset()
		}
		return s, nil
	}

	out := s.engine.Submit(ctx, s.input.Value())
	if !out.Evaluated {
		return s, nil
	}

	if out.Correct {
		s.input.Submit(true)
		s.feedbackGood = true
		if s.prog.AutoAdvance() {
			s.feedback = "Correct!"
			return s, s.scheduleAdvance()
		}
		s.feedback = "Correct! Pick your next location on the map."
		return s, nil
	}

	s.input.Submit(false)
	s.feedback = "Not quite, same question. Try again."
	s.feedbackGood = false
	return s, nil
}

// nextQuestion draws a fresh random question and resets the input.
func (s *QuizScreen) nextQuestion() {
	next := s.engine.Next(context.Background())
	s.animate = next != nil
	s.feedback = ""
	s.input.Reset()
}

// scheduleAdvance arms the one-shot auto-advance timer and returns its
// command. The token makes any previously armed timer stale.
func (s *QuizScreen) scheduleAdvance() tea.Cmd {
	s.advanceSeq++
	seq := s.advanceSeq
	return tea.Tick(autoAdvanceDelay, func(time.Time) tea.Msg {
		return advanceMsg{Seq: seq}
	})
}

// invalidateAdvance cancels any pending auto-advance.
func (s *QuizScreen) invalidateAdvance() {
	s.advanceSeq++
}

func (s *QuizScreen) moveCursor(delta int) {
	if len(s.entries) == 0 {
		return
	}
	if !s.cursorOn {
		s.cursorOn = true
		return
	}
	s.cursor = (s.cursor + delta + len(s.entries)) % len(s.entries)
}
