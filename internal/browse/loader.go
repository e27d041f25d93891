package browse

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/engine"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type matchDoneMsg struct {
	outcome engine.Outcome
}

type spinnerTickMsg struct{}

type loaderModel struct {
	label     string
	matchFn   func(ctx context.Context) engine.Outcome
	frame     int
	result    engine.Outcome
	cancelled bool
	done      bool
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.doMatch(), m.tick())
}

func (m loaderModel) doMatch() tea.Cmd {
	matchFn := m.matchFn
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		return matchDoneMsg{outcome: matchFn(ctx)}
	}
}

func (m loaderModel) tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case matchDoneMsg:
		m.result = msg.outcome
		m.done = true
		return m, tea.Quit
	case spinnerTickMsg:
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, m.tick()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	spinner := lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Render(spinnerFrames[m.frame])
	return fmt.Sprintf("%s Matching jobs for %s...\n", spinner, m.label)
}

// RunLoader shows a spinner while matchFn runs. It renders inline (no alt screen).
func RunLoader(label string, matchFn func(ctx context.Context) engine.Outcome) (engine.Outcome, error) {
	m := loaderModel{
		label:   label,
		matchFn: matchFn,
	}
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return engine.Outcome{}, err
	}
	final := result.(loaderModel)
	if final.cancelled {
		return engine.Outcome{}, fmt.Errorf("cancelled")
	}
	return final.result, nil
}
