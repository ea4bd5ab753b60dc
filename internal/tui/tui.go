// Package tui implements the interactive contact browser.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hmans/rolodex/internal/store"
)

// viewState represents which view is currently active
type viewState int

const (
	viewList viewState = iota
	viewDetail
)

// App is the main TUI application model
type App struct {
	state  viewState
	list   listModel
	detail detailModel
	dir    store.Directory
	width  int
	height int
}

// New creates a new TUI application
func New(dir store.Directory) *App {
	return &App{
		state: viewList,
		dir:   dir,
		list:  newListModel(dir),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.list.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.state == viewDetail {
				a.state = viewList
				return a, nil
			}
			if a.list.list.FilterState() != 1 {
				return a, tea.Quit
			}
		}

	case selectPersonMsg:
		a.state = viewDetail
		a.detail = newDetailModel(msg.person, a.width, a.height)
		return a, a.detail.Init()

	case backToListMsg:
		a.state = viewList
		return a, nil
	}

	switch a.state {
	case viewList:
		a.list, cmd = a.list.Update(msg)
	case viewDetail:
		a.detail, cmd = a.detail.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case viewList:
		return a.list.View()
	case viewDetail:
		return a.detail.View()
	}
	return ""
}

// Run starts the TUI application
func Run(dir store.Directory) error {
	p := tea.NewProgram(New(dir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
