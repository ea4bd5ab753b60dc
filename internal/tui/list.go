package tui

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hmans/rolodex/internal/contact"
	"github.com/hmans/rolodex/internal/store"
	"github.com/hmans/rolodex/internal/ui"
)

// personItem wraps a Person to implement list.Item
type personItem struct {
	person *contact.Person
}

func (i personItem) Title() string       { return i.person.Name }
func (i personItem) Description() string { return i.person.City }
func (i personItem) FilterValue() string {
	return i.person.Name + " " + i.person.City + " " + i.person.Phone
}

// itemDelegate handles rendering of list items
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(personItem)
	if !ok {
		return
	}

	p := item.person
	fmt.Fprint(w, ui.ContactRow(p.Name, p.Phone, p.Street, p.City, index == m.Index()))
}

// listModel is the model for the contact list view
type listModel struct {
	list   list.Model
	dir    store.Directory
	width  int
	height int
	err    error
}

func newListModel(dir store.Directory) listModel {
	l := list.New([]list.Item{}, itemDelegate{}, 0, 0)
	l.Title = "Contacts"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true).
		Padding(0, 1)
	l.Styles.TitleBar = lipgloss.NewStyle().Padding(0, 0, 1, 2)
	l.Styles.FilterPrompt = lipgloss.NewStyle().Foreground(ui.ColorPrimary)
	l.Styles.FilterCursor = lipgloss.NewStyle().Foreground(ui.ColorPrimary)

	return listModel{
		list: l,
		dir:  dir,
	}
}

// personsLoadedMsg is sent when contacts are loaded
type personsLoadedMsg struct {
	persons []*contact.Person
}

// errMsg is sent when an error occurs
type errMsg struct {
	err error
}

// selectPersonMsg is sent when a contact is selected
type selectPersonMsg struct {
	person *contact.Person
}

func (m listModel) Init() tea.Cmd {
	return m.loadPersons
}

func (m listModel) loadPersons() tea.Msg {
	persons, err := m.dir.AllPersons(context.Background(), store.PhoneAny)
	if err != nil {
		return errMsg{err}
	}
	return personsLoadedMsg{persons}
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-2, msg.Height-4)

	case personsLoadedMsg:
		sort.Slice(msg.persons, func(i, j int) bool {
			return strings.ToLower(msg.persons[i].Name) < strings.ToLower(msg.persons[j].Name)
		})
		items := make([]list.Item, len(msg.persons))
		for i, p := range msg.persons {
			items[i] = personItem{person: p}
		}
		m.list.SetItems(items)
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "enter":
				if item, ok := m.list.SelectedItem().(personItem); ok {
					return m, func() tea.Msg {
						return selectPersonMsg{person: item.person}
					}
				}
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m listModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}

	if m.width == 0 {
		return "Loading..."
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorMuted).
		Width(m.width - 2).
		Height(m.height - 4)

	content := border.Render(m.list.View())

	help := ui.Bold.Render("enter") + " " + ui.Muted.Render("view") + "  " +
		ui.Bold.Render("/") + " " + ui.Muted.Render("filter") + "  " +
		ui.Bold.Render("q") + " " + ui.Muted.Render("quit")

	return content + "\n" + help
}
