package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/hmans/rolodex/internal/contact"
	"github.com/hmans/rolodex/internal/ui"
)

// Cached glamour renderer - initialized once
var (
	glamourRenderer     *glamour.TermRenderer
	glamourRendererOnce sync.Once
)

func getGlamourRenderer() *glamour.TermRenderer {
	glamourRendererOnce.Do(func() {
		var err error
		glamourRenderer, err = glamour.NewTermRenderer(glamour.WithAutoStyle())
		if err != nil {
			glamourRenderer = nil
		}
	})
	return glamourRenderer
}

// backToListMsg signals navigation back to the list
type backToListMsg struct{}

// detailModel displays a single contact's details
type detailModel struct {
	viewport viewport.Model
	person   *contact.Person
	width    int
	height   int
}

func newDetailModel(p *contact.Person, width, height int) detailModel {
	m := detailModel{
		person: p,
		width:  width,
		height: height,
	}

	headerHeight := 6
	footerHeight := 2
	vpWidth := width - 4
	vpHeight := height - headerHeight - footerHeight

	m.viewport = viewport.New(vpWidth, vpHeight)
	m.viewport.SetContent(m.renderBody())
	return m
}

func (m detailModel) Init() tea.Cmd {
	return nil
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 8
		m.viewport.SetContent(m.renderBody())

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return m, func() tea.Msg { return backToListMsg{} }
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m detailModel) renderBody() string {
	if m.person.Notes == "" {
		return ui.Muted.Render("No notes.")
	}
	if r := getGlamourRenderer(); r != nil {
		if out, err := r.Render(m.person.Notes); err == nil {
			return out
		}
	}
	return m.person.Notes
}

func (m detailModel) header() string {
	p := m.person
	var b strings.Builder
	b.WriteString(ui.Title.Render(p.Name) + "  " + ui.ID.Render(p.ID) + "\n")
	b.WriteString(ui.Muted.Render("Phone   ") + ui.RenderPhone(p.Phone) + "\n")
	b.WriteString(ui.Muted.Render("Street  ") + p.Street + "\n")
	b.WriteString(ui.Muted.Render("City    ") + p.City + "\n")
	return b.String()
}

func (m detailModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorMuted).
		Width(m.width - 2).
		Padding(0, 1)

	content := border.Render(m.header() + "\n" + m.viewport.View())

	help := ui.Bold.Render("esc") + " " + ui.Muted.Render("back") + "  " +
		ui.Bold.Render("q") + " " + ui.Muted.Render("quit")

	return fmt.Sprintf("%s\n%s", content, help)
}
