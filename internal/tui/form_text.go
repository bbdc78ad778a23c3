package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// editorModel edits one entry: a title line and a multi-line body.
type editorModel struct {
	heading string
	public  bool

	title  textinput.Model
	body   textarea.Model
	onBody bool
	errMsg string

	saved     bool
	cancelled bool
}

func newEditorModel(heading, title, body string, public bool) editorModel {
	ti := textinput.New()
	ti.Placeholder = "title"
	ti.CharLimit = 200
	ti.Width = 60
	ti.SetValue(title)
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "What happened today?"
	ta.SetWidth(72)
	ta.SetHeight(12)
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetValue(body)

	return editorModel{heading: heading, public: public, title: ti, body: ta}
}

func (m editorModel) Title() string { return strings.TrimSpace(m.title.Value()) }
func (m editorModel) Body() string  { return m.body.Value() }

func (m editorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.Type == tea.KeyCtrlC, key.Matches(keyMsg, keys.esc):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.save):
			if m.Title() == "" {
				m.errMsg = "Title is required"
				m.focusTitle()
				return m, nil
			}
			m.saved = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.tab), key.Matches(keyMsg, keys.backtab):
			if m.onBody {
				m.focusTitle()
			} else {
				m.focusBody()
			}
			return m, nil
		case key.Matches(keyMsg, keys.enter) && !m.onBody:
			m.focusBody()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.onBody {
		m.body, cmd = m.body.Update(msg)
	} else {
		m.title, cmd = m.title.Update(msg)
	}
	return m, cmd
}

func (m *editorModel) focusTitle() {
	m.onBody = false
	m.body.Blur()
	m.title.Focus()
}

func (m *editorModel) focusBody() {
	m.onBody = true
	m.title.Blur()
	m.body.Focus()
}

func (m editorModel) View() string {
	if m.saved || m.cancelled {
		return ""
	}

	visibility := lockedStyle.Render("private, sealed on this device")
	if m.public {
		visibility = publicStyle.Render("public, stored in plaintext")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.heading))
	b.WriteString("  ")
	b.WriteString(visibility)
	b.WriteString("\n\nTitle\n[")
	b.WriteString(m.title.View())
	b.WriteString("]\n\n")
	b.WriteString(m.body.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab switch field  ctrl+s save  esc cancel"))

	return appStyle.Render(b.String())
}
