// Package start implements the run setup screen: question bank source,
// mode, and time limit.
package start

import (
	"fmt"
	"math/rand"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examdeck/internal/bank"
	"github.com/abhisek/examdeck/internal/exam"
	examscreen "github.com/abhisek/examdeck/internal/screens/exam"
	"github.com/abhisek/examdeck/internal/question"
	"github.com/abhisek/examdeck/internal/router"
	"github.com/abhisek/examdeck/internal/screen"
	"github.com/abhisek/examdeck/internal/store"
	"github.com/abhisek/examdeck/internal/ui/components"
	"github.com/abhisek/examdeck/internal/ui/layout"
)

// MaxTimeLimitMinutes bounds the time limit input. 0 means no limit: the
// clock counts up instead of down.
const MaxTimeLimitMinutes = 9999

type stage int

const (
	stageSource stage = iota
	stagePath
	stageMode
	stageTime
)

// bankLoadedMsg reports the outcome of loading a question source.
type bankLoadedMsg struct {
	Questions []question.Question
	Warnings  []string
	Source    string
	Err       error
}

// StartScreen implements screen.Screen for run setup.
type StartScreen struct {
	session *exam.Session
	runs    store.RunRepo

	stage      stage
	sourceMenu components.Menu
	modeMenu   components.Menu
	pathInput  components.TextInput
	timeInput  components.TextInput

	questions []question.Question
	source    string
	warnings  []string
	shuffle   bool
	mode      exam.Mode
	errMsg    string
}

var _ screen.Screen = (*StartScreen)(nil)
var _ screen.KeyHintProvider = (*StartScreen)(nil)

// New creates the setup screen over a shared session.
func New(session *exam.Session, runs store.RunRepo) *StartScreen {
	s := &StartScreen{
		session:   session,
		runs:      runs,
		shuffle:   false,
		pathInput: components.NewTextInput("path/to/bank.csv", false, 120),
		timeInput: components.NewTextInput("0", true, 4),
	}

	s.sourceMenu = components.NewMenu([]components.MenuItem{
		{
			Label:  "Built-in sample bank",
			Detail: fmt.Sprintf("%d questions", len(bank.Sample())),
			Action: func() tea.Cmd { return loadSampleCmd() },
		},
		{
			Label:  "Load CSV file",
			Action: func() tea.Cmd { return nil },
		},
		{
			Label:  "Import quiz JSON from clipboard",
			Action: func() tea.Cmd { return loadClipboardCmd() },
		},
	})

	s.modeMenu = components.NewMenu([]components.MenuItem{
		{Label: "Practice", Detail: "feedback after every question"},
		{Label: "Exam", Detail: "free navigation, score at the end"},
	})

	return s
}

func (s *StartScreen) Init() tea.Cmd {
	return nil
}

func (s *StartScreen) Title() string {
	return "Setup"
}

func (s *StartScreen) KeyHints() []layout.KeyHint {
	switch s.stage {
	case stagePath:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Load"},
			{Key: "Esc", Description: "Back"},
		}
	case stageMode:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose mode"},
			{Key: "Enter", Description: "Select"},
			{Key: "S", Description: "Toggle shuffle"},
			{Key: "Esc", Description: "Back"},
		}
	case stageTime:
		return []layout.KeyHint{
			{Key: "0-9", Description: "Minutes (0 = no limit)"},
			{Key: "Enter", Description: "Begin"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose source"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
}

func (s *StartScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bankLoadedMsg:
		return s.handleBankLoaded(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.stage == stagePath {
		var cmd tea.Cmd
		s.pathInput, cmd = s.pathInput.Update(msg)
		return s, cmd
	}
	if s.stage == stageTime {
		var cmd tea.Cmd
		s.timeInput, cmd = s.timeInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *StartScreen) handleBankLoaded(msg bankLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.errMsg = ""
	s.questions = msg.Questions
	s.warnings = msg.Warnings
	s.source = msg.Source
	s.stage = stageMode
	return s, nil
}

func (s *StartScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.stage {
	case stageSource:
		if key == "enter" && s.sourceMenu.Selected == 1 {
			s.errMsg = ""
			s.stage = stagePath
			return s, s.pathInput.Init()
		}
		var cmd tea.Cmd
		s.sourceMenu, cmd = s.sourceMenu.Update(msg)
		return s, cmd

	case stagePath:
		switch key {
		case "esc":
			s.stage = stageSource
			return s, nil
		case "enter":
			path := s.pathInput.Value()
			if path == "" {
				return s, nil
			}
			return s, loadFileCmd(path)
		}
		var cmd tea.Cmd
		s.pathInput, cmd = s.pathInput.Update(msg)
		return s, cmd

	case stageMode:
		switch key {
		case "esc":
			s.stage = stageSource
			return s, nil
		case "s", "S":
			s.shuffle = !s.shuffle
			return s, nil
		case "enter":
			if s.modeMenu.Selected == 1 {
				s.mode = exam.ModeExam
			} else {
				s.mode = exam.ModePractice
			}
			s.stage = stageTime
			return s, s.timeInput.Init()
		}
		var cmd tea.Cmd
		s.modeMenu, cmd = s.modeMenu.Update(msg)
		return s, cmd

	case stageTime:
		switch key {
		case "esc":
			s.stage = stageMode
			return s, nil
		case "enter":
			return s.begin()
		}
		var cmd tea.Cmd
		s.timeInput, cmd = s.timeInput.Update(msg)
		return s, cmd
	}

	return s, nil
}

// begin arms the session and hands over to the exam screen.
func (s *StartScreen) begin() (screen.Screen, tea.Cmd) {
	limit := 0
	if v, err := s.timeInput.NumericValue(); err == nil {
		limit = v
	}
	if limit < 0 {
		limit = 0
	}
	if limit > MaxTimeLimitMinutes {
		limit = MaxTimeLimitMinutes
	}

	qs := s.questions
	if s.shuffle {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		qs = question.ShuffleAll(qs, rng)
	}

	if err := s.session.LoadQuestions(qs); err != nil {
		s.errMsg = err.Error()
		s.stage = stageSource
		return s, nil
	}
	if err := s.session.Start(s.mode, limit); err != nil {
		s.errMsg = err.Error()
		s.stage = stageSource
		return s, nil
	}

	// Land back on the mode choice when the run ends.
	s.stage = stageMode

	ctrl := exam.NewController(s.session)
	next := examscreen.New(ctrl, s.runs)
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func loadSampleCmd() tea.Cmd {
	return func() tea.Msg {
		return bankLoadedMsg{Questions: bank.Sample(), Source: "sample bank"}
	}
}

func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		qs, err := bank.LoadFile(path)
		if err != nil {
			return bankLoadedMsg{Err: err}
		}
		return bankLoadedMsg{Questions: qs, Source: path}
	}
}

func loadClipboardCmd() tea.Cmd {
	return func() tea.Msg {
		qs, warnings, err := bank.FromClipboard()
		if err != nil {
			return bankLoadedMsg{Err: err, Warnings: warnings}
		}
		return bankLoadedMsg{Questions: qs, Warnings: warnings, Source: "clipboard"}
	}
}
