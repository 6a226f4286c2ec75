package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"irsearch/internal/domain"
	"irsearch/internal/summarizer"
	"irsearch/internal/tokenizer"
)

// SearchPort is the TUI-facing subset of the search service.
type SearchPort interface {
	Search(query string, topK int) ([]domain.SearchResult, error)
	Stats() domain.Stats
	List() []domain.DocumentInfo
	View(id string) (domain.Document, error)
}

// Model is the Bubble Tea model for the interactive search loop.
type Model struct {
	service   SearchPort
	tokenizer *tokenizer.Tokenizer
	topK      int
	input     textinput.Model
	viewport  viewport.Model
	results   []domain.SearchResult
	summary   string
	status    string
	content   string
	cursor    int
	ready     bool
	lastQuery string
}

// New creates a new TUI model instance.
func New(service SearchPort, tok *tokenizer.Tokenizer, summary string, topK int) Model {
	ti := textinput.New()
	ti.Prompt = "Search> "
	ti.Placeholder = "query, or stats / list / view <id> / help / quit"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	m := Model{
		service:   service,
		tokenizer: tok,
		topK:      topK,
		input:     ti,
		viewport:  vp,
		summary:   summary,
		status:    "Loaded. Type to search.",
	}
	m.content = FormatStats(service.Stats())
	return m
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
		reserved := 2 + 1 + qh + 1 // header + summary, status, input box, spacer
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved-rh)
		m.viewport.SetContent(m.content)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			cmd := ParseCommand(m.input.Value())
			if cmd.Kind == CommandQuit {
				return m, tea.Quit
			}
			m.input.SetValue("")
			m.run(cmd)
			m.viewport.SetContent(m.content)
			m.viewport.GotoTop()
			return m, nil
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.content = m.renderCurrentResult()
				m.viewport.SetContent(m.content)
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.content = m.renderCurrentResult()
				m.viewport.SetContent(m.content)
				return m, nil
			}
		case "pgdown", "pgup":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) run(cmd Command) {
	switch cmd.Kind {
	case CommandEmpty:
		m.status = "Please enter a search query or command."
	case CommandHelp:
		m.status = "Help"
		m.content = helpText
	case CommandStats:
		m.status = "System statistics"
		m.content = FormatStats(m.service.Stats())
	case CommandList:
		docs := m.service.List()
		m.status = fmt.Sprintf("%d documents", len(docs))
		m.content = FormatList(docs)
	case CommandView:
		doc, err := m.service.View(cmd.Arg)
		if err != nil {
			m.status = "Error: " + err.Error()
			return
		}
		m.status = fmt.Sprintf("Viewing %s", doc.ID)
		if doc.ID != cmd.Arg {
			m.status = fmt.Sprintf("Viewing %s (closest match for %q)", doc.ID, cmd.Arg)
		}
		m.content = FormatDocument(doc)
	case CommandSearch:
		res, err := m.service.Search(cmd.Arg, m.topK)
		if err != nil {
			m.status = "Error: " + err.Error()
			m.results = nil
			return
		}
		m.results = res
		m.cursor = 0
		m.lastQuery = cmd.Arg
		if len(res) == 0 {
			m.status = fmt.Sprintf("No matching documents found for %q", cmd.Arg)
			m.content = "No results."
			return
		}
		m.status = fmt.Sprintf("%d results for %q (up/down to browse)", len(res), cmd.Arg)
		m.content = m.renderCurrentResult()
	}
}

// View renders the TUI layout and current content.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Information Retrieval System")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	body := resultBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + summary + "\n" + body + "\n" + input + "\n" + status
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	r := m.results[m.cursor]
	title := fmt.Sprintf("Result %d/%d  %s  [%s]  score=%.4f", m.cursor+1, len(m.results), r.Title, r.DocumentID, r.Score)
	return title + "\n\n" + m.highlightBestSentence(r.Preview, m.lastQuery)
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// highlightBestSentence emphasizes the sentence sharing the most distinct
// terms with the query.
func (m Model) highlightBestSentence(text, query string) string {
	sentences := summarizer.Sentences(text)
	if len(sentences) == 0 {
		return text
	}
	queryTerms := make(map[string]struct{})
	for term := range m.tokenizer.Terms(query) {
		queryTerms[term] = struct{}{}
	}
	if len(queryTerms) == 0 {
		return strings.Join(sentences, " ")
	}
	bestIdx, bestScore := 0, -1
	for i, s := range sentences {
		if score := m.overlap(queryTerms, s); score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	sentences[bestIdx] = highlightStyle.Render(sentences[bestIdx])
	return strings.Join(sentences, " ")
}

func (m Model) overlap(queryTerms map[string]struct{}, sentence string) int {
	score := 0
	seen := make(map[string]struct{})
	for term := range m.tokenizer.Terms(sentence) {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		if _, ok := queryTerms[term]; ok {
			score++
		}
	}
	return score
}
