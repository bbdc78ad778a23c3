// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-diary-keeper/internal/service"
)

// browseModel lists the diary and opens entries one at a time. The diary
// must already be unlocked.
type browseModel struct {
	ctx   context.Context
	diary service.ClientDiaryService
	copy  func(string) error

	items   []service.DiaryView
	idx     int
	loading bool
	spinner spinner.Model

	detail     *service.DiaryView
	confirming bool

	status string
	errMsg string
}

func newBrowseModel(ctx context.Context, diary service.ClientDiaryService, copyFn func(string) error) browseModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return browseModel{ctx: ctx, diary: diary, copy: copyFn, loading: true, spinner: s}
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoad())
}

func (m browseModel) cmdLoad() tea.Cmd {
	return func() tea.Msg {
		items, err := m.diary.List(m.ctx)
		return listLoadedMsg{items: items, err: err}
	}
}

func (m browseModel) cmdOpen(id int64) tea.Cmd {
	return func() tea.Msg {
		item, err := m.diary.Show(m.ctx, id)
		return entryLoadedMsg{item: item, err: err}
	}
}

func (m browseModel) cmdDelete(id int64) tea.Cmd {
	return func() tea.Msg {
		return entryDeletedMsg{id: id, err: m.diary.Delete(m.ctx, id)}
	}
}

func (m browseModel) current() (service.DiaryView, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return service.DiaryView{}, false
	}
	return m.items[m.idx], true
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = Humanize(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.items = msg.items
		m.idx = min(max(m.idx, 0), max(len(m.items)-1, 0))
		return m, nil
	case entryLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = Humanize(msg.err)
			return m, nil
		}
		m.errMsg = ""
		item := msg.item
		m.detail = &item
		return m, nil
	case entryDeletedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = Humanize(msg.err)
			return m, nil
		}
		m.detail = nil
		m.status = fmt.Sprintf("Entry #%d deleted", msg.id)
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.cmdLoad())
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.confirming {
		m.confirming = false
		if key.Matches(msg, keys.yes) && m.detail != nil {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.cmdDelete(m.detail.ID))
		}
		m.status = "Delete cancelled"
		return m, nil
	}

	if m.detail != nil {
		switch {
		case key.Matches(msg, keys.esc):
			m.detail = nil
			m.status = ""
		case key.Matches(msg, keys.copy):
			if !m.detail.Readable {
				m.status = "Nothing to copy"
				return m, nil
			}
			if err := m.copy(m.detail.Body); err != nil {
				m.errMsg = "Copy failed: " + err.Error()
				return m, nil
			}
			m.status = "Copied to clipboard"
		case key.Matches(msg, keys.delete):
			m.confirming = true
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.refresh):
		m.loading = true
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, m.cmdLoad())
	case key.Matches(msg, keys.enter):
		item, ok := m.current()
		if !ok {
			return m, nil
		}
		m.loading = true
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, m.cmdOpen(item.ID))
	}
	return m, nil
}

func (m browseModel) View() string {
	title := "DIARY"
	if m.loading {
		title += "  " + m.spinner.View()
	}

	if m.detail != nil {
		var b strings.Builder
		b.WriteString(RenderEntry(*m.detail))
		if m.confirming {
			b.WriteString("\n")
			b.WriteString(overlayBoxStyle.Render(fmt.Sprintf("Delete %q?\n\n", m.detail.Title) + helpStyle.Render("y yes    n no")))
		}
		m.writeFooter(&b)
		return renderPage(title, b.String(), "c copy body  d delete  esc back  q quit")
	}

	var b strings.Builder
	if !m.loading && len(m.items) == 0 && m.errMsg == "" {
		b.WriteString("No entries yet.\n")
	}
	for i, item := range m.items {
		row := renderRow(item)
		if i == m.idx {
			row = cursorStyle.Render("> " + row)
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	m.writeFooter(&b)

	return renderPage(title, b.String(), "enter open  r refresh  q quit")
}

func (m browseModel) writeFooter(b *strings.Builder) {
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
	}
}
