package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcraft/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector component. It does not know
// the correct option; Chosen marks the answer recorded so far.
type MultiChoice struct {
	Theme     theme.Theme
	Options   []string
	Selected  int
	Chosen    int
	Submitted bool
}

// NewMultiChoice creates a selector over options. chosen is the index of
// an earlier answer, or -1; the cursor starts on it.
func NewMultiChoice(t theme.Theme, options []string, chosen int) MultiChoice {
	selected := 0
	if chosen >= 0 && chosen < len(options) {
		selected = chosen
	} else {
		chosen = -1
	}
	return MultiChoice{
		Theme:    t,
		Options:  options,
		Selected: selected,
		Chosen:   chosen,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. Number keys and
// letters pick an option directly; enter picks the highlighted one.
// Submitted is set until the owner clears it.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, nil
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
		return m, nil
	case "enter":
		m.choose(m.Selected)
		return m, nil
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
		m.choose(n - 1)
	} else if len(key) == 1 && key[0] >= 'a' && int(key[0]-'a') < len(m.Options) {
		m.choose(int(key[0] - 'a'))
	}
	return m, nil
}

func (m *MultiChoice) choose(i int) {
	m.Selected = i
	m.Chosen = i
	m.Submitted = true
}

// View renders the options, highlighting the cursor and the chosen answer.
func (m MultiChoice) View() string {
	var s string
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)
		if i == m.Chosen {
			line += "  •"
		}

		switch {
		case i == m.Selected:
			s += m.Theme.Selected.Render(line) + "\n"
		case i == m.Chosen:
			s += m.Theme.Body.Bold(true).Render(line) + "\n"
		default:
			s += m.Theme.Body.Render(line) + "\n"
		}
	}
	return s
}
