package tui

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ragpipe/internal/domain"
	"ragpipe/internal/service"
)

// RAGPort is the TUI-facing subset of the session.
type RAGPort interface {
	SetDimensions(ctx context.Context, n int) int
	Dimensions() int
	Chunks() []domain.Chunk
	Query(ctx context.Context, text string) (domain.QueryResult, *service.PendingAnswer)
}

type answerMsg struct {
	seq  uint64
	text string
	err  error
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	ctx      context.Context
	service  RAGPort
	input    textinput.Model
	viewport viewport.Model
	result   domain.QueryResult
	answer   string
	waiting  bool
	status   string
	cursor   int
	ready    bool
}

// New creates a new TUI model instance.
func New(ctx context.Context, service RAGPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		ctx:      ctx,
		service:  service,
		input:    ti,
		viewport: vp,
		status:   "Loaded. PgUp/PgDn change dimensions.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, spacer
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved-rh)
		m.viewport.SetContent(m.render())
		return m, nil
	case answerMsg:
		if msg.seq != m.result.Seq {
			return m, nil
		}
		m.waiting = false
		switch {
		case msg.err == nil:
			m.answer = msg.text
		case errors.Is(msg.err, service.ErrSuperseded), errors.Is(msg.err, service.ErrClosed):
			m.answer = ""
		default:
			m.status = "Error: " + msg.err.Error()
		}
		m.viewport.SetContent(m.render())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				break
			}
			res, pending := m.service.Query(m.ctx, q)
			m.result = res
			m.answer = ""
			m.waiting = true
			m.cursor = 0
			m.status = fmt.Sprintf("Results for %q", q)
			m.viewport.SetContent(m.render())
			return m, waitAnswer(m.ctx, pending)
		case "pgup", "pgdown":
			d := m.service.Dimensions() + 1
			if msg.String() == "pgdown" {
				d -= 2
			}
			applied := m.service.SetDimensions(m.ctx, d)
			m.result = domain.QueryResult{}
			m.answer = ""
			m.waiting = false
			m.status = fmt.Sprintf("Index rebuilt with %d dimensions", applied)
			m.viewport.SetContent(m.render())
			return m, nil
		case "down":
			if n := len(m.result.Results); n > 0 {
				m.cursor = (m.cursor + 1) % n
				m.viewport.SetContent(m.render())
				return m, nil
			}
		case "up":
			if n := len(m.result.Results); n > 0 {
				m.cursor = (m.cursor - 1 + n) % n
				m.viewport.SetContent(m.render())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func waitAnswer(ctx context.Context, p *service.PendingAnswer) tea.Cmd {
	return func() tea.Msg {
		text, err := p.Wait(ctx)
		return answerMsg{seq: p.Seq(), text: text, err: err}
	}
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("RAG Pipeline  dims=%d  chunks=%d", m.service.Dimensions(), len(m.service.Chunks())))
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) render() string {
	if m.result.Seq == 0 {
		return "No results yet."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "query vector %s\n\n", formatVector(m.result.QueryVector))
	if len(m.result.Results) == 0 {
		b.WriteString("Index is empty.\n")
	}
	for i, r := range m.result.Results {
		line := fmt.Sprintf("#%d  similarity=%.3f  %s", r.ID, r.Similarity, highlightTerms(strings.TrimSpace(r.Text), m.result.Query))
		if i == m.cursor {
			line = selectedStyle.Render("> ") + line + "\n   " + mutedStyle.Render(formatVector(r.Vector))
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
	if m.waiting {
		b.WriteString(mutedStyle.Render("Generating answer..."))
	} else if m.answer != "" {
		b.WriteString(m.answer)
	}
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	unicodeWordRe  = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
)

func formatVector(v domain.Vector) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.3f", x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// highlightTerms renders words of text that also occur in query.
func highlightTerms(text, query string) string {
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return text
	}
	return unicodeWordRe.ReplaceAllStringFunc(text, func(w string) string {
		if _, ok := qTokens[strings.ToLower(w)]; ok {
			return highlightStyle.Render(w)
		}
		return w
	})
}

func toTokenSet(s string) map[string]struct{} {
	tokens := unicodeWordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}
