package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/icta-labs/lore-cli/internal/core/domain"
	"github.com/icta-labs/lore-cli/internal/core/ports/driving"
	"github.com/icta-labs/lore-cli/internal/logger"
)

// Ensure Chat implements tea.Model.
var _ tea.Model = (*Chat)(nil)

// entry is one transcript line.
type entry struct {
	question bool
	text     string
}

// answerMsg carries an answer back into the update loop.
type answerMsg struct {
	question string
	answer   domain.Answer
	err      error
}

// Chat is the interactive question/answer loop, following the Elm
// architecture.
type Chat struct {
	ports  *Ports
	ctx    context.Context
	styles *Styles

	input      textinput.Model
	spin       spinner.Model
	transcript []entry
	lastAnswer *domain.Answer
	waiting    bool
	err        error
}

// NewChat creates the chat model.
func NewChat(ctx context.Context, ports *Ports) (*Chat, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating chat: %w", err)
	}

	input := textinput.New()
	input.Placeholder = "Ask a question (/show for sources, /exit to quit)"
	input.Focus()
	input.CharLimit = 500

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &Chat{
		ports:  ports,
		ctx:    ctx,
		styles: DefaultStyles(),
		input:  input,
		spin:   spin,
	}, nil
}

// Run starts the chat loop and blocks until the user exits.
func Run(ctx context.Context, ports *Ports) error {
	chat, err := NewChat(ctx, ports)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(chat, tea.WithContext(ctx)).Run()
	return err
}

// Init implements tea.Model.
func (c *Chat) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (c *Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return c, tea.Quit
		case tea.KeyEnter:
			if c.waiting {
				return c, nil
			}
			return c.submit()
		}

	case answerMsg:
		c.waiting = false
		if msg.err != nil {
			c.err = msg.err
			return c, nil
		}
		c.err = nil
		c.lastAnswer = &msg.answer
		c.transcript = append(c.transcript, entry{text: msg.answer.Text})
		if msg.answer.Suggestion != "" {
			c.transcript = append(c.transcript, entry{text: msg.answer.Suggestion})
		}
		return c, nil

	case spinner.TickMsg:
		if !c.waiting {
			return c, nil
		}
		var cmd tea.Cmd
		c.spin, cmd = c.spin.Update(msg)
		return c, cmd
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// submit handles an entered line: slash commands locally, everything
// else as a question.
func (c *Chat) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(c.input.Value())
	if line == "" {
		return c, nil
	}
	c.input.Reset()

	if strings.HasPrefix(line, "/") {
		return c.command(line)
	}

	c.transcript = append(c.transcript, entry{question: true, text: line})
	c.waiting = true
	c.err = nil
	return c, tea.Batch(c.spin.Tick, c.ask(line))
}

// command executes a local slash command.
func (c *Chat) command(line string) (tea.Model, tea.Cmd) {
	switch line {
	case "/exit", "/quit":
		return c, tea.Quit

	case "/show":
		if c.lastAnswer == nil || len(c.lastAnswer.Results) == 0 {
			c.transcript = append(c.transcript, entry{text: "No sources to show yet."})
			return c, nil
		}
		var b strings.Builder
		b.WriteString("Sources of the last answer:\n")
		for i, r := range c.lastAnswer.Results {
			fmt.Fprintf(&b, "  [%d] %s #%d (%.2f)\n", i+1, r.Chunk.SourceID, r.Chunk.Sequence, r.Score)
		}
		c.transcript = append(c.transcript, entry{text: strings.TrimRight(b.String(), "\n")})
		return c, nil

	default:
		c.transcript = append(c.transcript, entry{text: "Unknown command. Available: /show, /exit"})
		return c, nil
	}
}

// ask answers the question off the update loop and records the
// exchange. History failures are logged, never shown as chat errors.
func (c *Chat) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := c.ports.Answer.Ask(c.ctx, question, driving.AskOptions{})
		if err != nil {
			return answerMsg{question: question, err: err}
		}
		if c.ports.History != nil {
			if err := c.ports.History.Record(c.ctx, question, answer); err != nil {
				logger.Warn("Recording session failed: %v", err)
			}
		}
		return answerMsg{question: question, answer: answer}
	}
}

// View implements tea.Model.
func (c *Chat) View() string {
	var b strings.Builder
	b.WriteString(c.styles.Title.Render("lore chat"))
	b.WriteString("\n\n")

	for _, e := range c.transcript {
		if e.question {
			b.WriteString(c.styles.Question.Render("you: " + e.text))
		} else {
			b.WriteString(c.styles.Answer.Render(e.text))
		}
		b.WriteString("\n")
	}

	if c.lastAnswer != nil && !c.waiting {
		label := c.styles.Grounded.Render("grounded")
		if c.lastAnswer.Routing.Route == domain.RouteFallback {
			label = c.styles.Fallback.Render("fallback")
		}
		b.WriteString(c.styles.Muted.Render(fmt.Sprintf("route=%s mean=%.2f min=%.2f",
			label, c.lastAnswer.Routing.MeanScore, c.lastAnswer.Routing.MinScore)))
		b.WriteString("\n")
	}

	if c.err != nil {
		b.WriteString(c.styles.Error.Render("error: " + c.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if c.waiting {
		b.WriteString(c.spin.View())
		b.WriteString(" thinking...")
	} else {
		b.WriteString(c.input.View())
	}
	b.WriteString("\n")
	return b.String()
}
