// Package tui provides the Bubble Tea autocorrect demo interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/gazekit/internal/autocorrect"
	"github.com/verte-zerg/gazekit/internal/store"
)

var (
	titleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	wordStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	confidenceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	learnedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7BC86C"))
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	emptyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// Model implements the Bubble Tea demo UI: type words, see suggestions
// for the last completed word, accept one with Tab.
type Model struct {
	engine *autocorrect.Engine
	store  *store.Store

	input textinput.Model

	lastWord    string
	suggestions []string
	learnedNote string

	width  int
	height int
}

// NewModel constructs the demo model. The store may be nil; accepted
// suggestions are then learned in memory only.
func NewModel(engine *autocorrect.Engine, st *store.Store) *Model {
	input := textinput.New()
	input.Placeholder = "type here; space completes a word"
	input.Prompt = "> "
	input.Focus()
	return &Model{
		engine: engine,
		store:  st,
		input:  input,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.acceptSuggestion(0)
			return m, nil
		case tea.KeyRunes:
			if idx, ok := suggestionIndex(msg.Runes); ok && idx < len(m.suggestions) {
				m.acceptSuggestion(idx)
				return m, nil
			}
		case tea.KeySpace:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			m.completeWord()
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// completeWord looks up suggestions for the most recently finished word.
func (m *Model) completeWord() {
	word := lastWordOf(m.input.Value())
	if word == "" {
		return
	}
	m.lastWord = word
	m.suggestions = m.engine.Suggest(word)
	m.learnedNote = ""
}

// suggestionIndex maps a single digit key 1-9 to a suggestion index.
func suggestionIndex(runes []rune) (int, bool) {
	if len(runes) != 1 || runes[0] < '1' || runes[0] > '9' {
		return 0, false
	}
	return int(runes[0] - '1'), true
}

// acceptSuggestion replaces the last completed word with the chosen
// suggestion and records it as a learned correction.
func (m *Model) acceptSuggestion(idx int) {
	if m.lastWord == "" || idx >= len(m.suggestions) {
		return
	}
	chosen := m.suggestions[idx]
	value := m.input.Value()
	replaced, ok := replaceLastWord(value, m.lastWord, chosen)
	if !ok {
		return
	}
	m.input.SetValue(replaced)
	m.input.CursorEnd()

	m.engine.Learn(m.lastWord, chosen)
	if m.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		// Persistence is best-effort inside the demo loop.
		_ = m.store.InsertCorrection(ctx, strings.ToLower(m.lastWord), chosen, time.Now())
	}
	m.learnedNote = fmt.Sprintf("learned %s -> %s", strings.ToLower(m.lastWord), chosen)
	m.lastWord = ""
	m.suggestions = nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("gazekit autocorrect demo"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderSuggestions())
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderSuggestions() string {
	if m.lastWord == "" {
		return emptyStyle.Render("finish a word to see suggestions")
	}
	if len(m.suggestions) == 0 {
		return emptyStyle.Render(fmt.Sprintf("no suggestions for %q", m.lastWord))
	}
	var b strings.Builder
	b.WriteString(wordStyle.Render(m.lastWord))
	b.WriteString(" -> ")
	for i, s := range m.suggestions {
		if i > 0 {
			b.WriteString("  ")
		}
		confidence := m.engine.Confidence(m.lastWord, s)
		b.WriteString(confidenceStyle.Render(fmt.Sprintf("%d:", i+1)))
		b.WriteString(suggestionStyle.Render(s))
		b.WriteString(confidenceStyle.Render(fmt.Sprintf(" (%.0f%%)", confidence*100)))
	}
	if m.learnedNote != "" {
		b.WriteString("  ")
		b.WriteString(learnedStyle.Render(m.learnedNote))
	}
	return b.String()
}

func (m *Model) renderFooter() string {
	stats := m.engine.Stats()
	line := fmt.Sprintf("cache %d entries, %d hits, %d misses | tab or 1-9 accepts, esc quits",
		stats.Entries, stats.Hits, stats.Misses)
	if m.learnedNote != "" {
		line = m.learnedNote + " | " + line
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	return footerStyle.Render(wrapLine(line, width))
}

// lastWordOf extracts the final space-separated word, trimming trailing
// punctuation.
func lastWordOf(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}
	word := strings.TrimRight(fields[len(fields)-1], ".,!?;:\"'")
	return strings.ToLower(word)
}

// replaceLastWord swaps the final occurrence of word in value. The match
// is case-insensitive, mirroring lastWordOf's normalization.
func replaceLastWord(value, word, replacement string) (string, bool) {
	lower := strings.ToLower(value)
	idx := strings.LastIndex(lower, strings.ToLower(word))
	if idx < 0 {
		return value, false
	}
	return value[:idx] + replacement + value[idx+len(word):], true
}
