// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formField describes one input of a [formModel].
type formField struct {
	label    string
	secret   bool
	required bool
	limit    int
}

// formModel is a small multi-field form. It is used for sign-up, sign-in and
// the diary secret prompt. Submitting with enter on the last field validates
// the required fields and quits the program with done set.
type formModel struct {
	title  string
	fields []formField
	inputs []textinput.Model
	focus  int
	errMsg string

	done      bool
	cancelled bool
}

func newFormModel(title string, fields []formField) formModel {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Placeholder = strings.ToLower(f.label)
		in.Width = 40
		in.CharLimit = 256
		if f.limit > 0 {
			in.CharLimit = f.limit
		}
		if f.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		inputs[i] = in
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}

	return formModel{title: title, fields: fields, inputs: inputs}
}

// Values returns the input values in field order. Non-secret values are trimmed.
func (m formModel) Values() []string {
	out := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		if m.fields[i].secret {
			out[i] = in.Value()
		} else {
			out[i] = strings.TrimSpace(in.Value())
		}
	}
	return out
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case keyMsg.Type == tea.KeyCtrlC, key.Matches(keyMsg, keys.esc):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.tab), keyMsg.Type == tea.KeyDown:
			m.setFocus(m.focus + 1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab), keyMsg.Type == tea.KeyUp:
			m.setFocus(m.focus - 1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.focus < len(m.inputs)-1 {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			if missing := m.firstMissing(); missing >= 0 {
				m.errMsg = m.fields[missing].label + " is required"
				m.setFocus(missing)
				return m, nil
			}
			m.errMsg = ""
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m formModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, in := range m.inputs {
		label := m.fields[i].label
		if i == m.focus {
			label = cursorStyle.Render(label)
		}
		b.WriteString(label)
		b.WriteString("\n[")
		b.WriteString(in.View())
		b.WriteString("]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab next field  enter submit  esc cancel"))

	return appStyle.Render(b.String())
}

func (m *formModel) setFocus(i int) {
	if len(m.inputs) == 0 {
		return
	}
	i = (i + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m formModel) firstMissing() int {
	for i, v := range m.Values() {
		if m.fields[i].required && v == "" {
			return i
		}
	}
	return -1
}
