package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/montlabs/mont-core/internal/chat"
)

// maxVisibleLines bounds the scrollback kept on screen.
const maxVisibleLines = 200

// turnMsg carries a completed turn back into the update loop.
type turnMsg struct {
	reply string
}

// Model is the bubbletea model for the chat screen.
type Model struct {
	ctx    context.Context
	engine *chat.Engine
	input  textinput.Model
	lines  []string
	userID string
	width  int
}

// NewModel builds the chat screen for one user.
func NewModel(ctx context.Context, engine *chat.Engine, userID string) Model {
	input := textinput.New()
	input.Placeholder = "Tell me about an expense, budget, or goal..."
	input.Focus()
	input.CharLimit = 1000

	return Model{
		ctx:    ctx,
		engine: engine,
		input:  input,
		userID: userID,
		lines: []string{
			TitleStyle.Render("MonT") + SubtleStyle.Render(" — your budgeting buddy (esc to quit)"),
		},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.appendLine(UserStyle.Render("you: ") + text)
			return m, m.runTurn(text)
		}

	case turnMsg:
		m.appendLine(BotStyle.Render("mont: ") + msg.reply)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	return fmt.Sprintf("%s\n\n%s\n", strings.Join(m.lines, "\n"), m.input.View())
}

// runTurn executes one chat turn off the update loop.
func (m Model) runTurn(text string) tea.Cmd {
	engine, ctx, userID := m.engine, m.ctx, m.userID
	return func() tea.Msg {
		reply, _ := engine.Turn(ctx, userID, text)
		return turnMsg{reply: reply}
	}
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > maxVisibleLines {
		m.lines = m.lines[len(m.lines)-maxVisibleLines:]
	}
}

// Run starts the interactive chat program and blocks until exit.
func Run(ctx context.Context, engine *chat.Engine, userID string) error {
	program := tea.NewProgram(NewModel(ctx, engine, userID))
	_, err := program.Run()
	return err
}
