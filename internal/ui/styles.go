// Package ui holds shared lipgloss styles for terminal output.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#6B7280") // Gray
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorDanger    = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#9CA3AF") // Light gray
)

// Text styles
var (
	Bold    = lipgloss.NewStyle().Bold(true)
	Muted   = lipgloss.NewStyle().Foreground(ColorMuted)
	Primary = lipgloss.NewStyle().Foreground(ColorPrimary)
	Success = lipgloss.NewStyle().Foreground(ColorSuccess)
	Warning = lipgloss.NewStyle().Foreground(ColorWarning)
	Danger  = lipgloss.NewStyle().Foreground(ColorDanger)
)

// ID style - distinctive for contact IDs
var ID = lipgloss.NewStyle().
	Foreground(ColorPrimary).
	Bold(true)

// Title style
var Title = lipgloss.NewStyle().Bold(true)

// Header style for section headers
var Header = lipgloss.NewStyle().
	Foreground(ColorPrimary).
	Bold(true).
	MarginBottom(1)

// Column widths for contact rows.
const (
	NameColWidth  = 24
	PhoneColWidth = 16
)

// RenderPhone returns the phone number styled, or a muted placeholder
// when the contact has none.
func RenderPhone(phone string) string {
	if phone == "" {
		return Muted.Render("—")
	}
	return Success.Render(phone)
}

// ContactRow renders a single aligned row for list output.
func ContactRow(name, phone, street, city string, selected bool) string {
	title := truncate(name, NameColWidth-1)
	phoneCol := lipgloss.NewStyle().Width(PhoneColWidth).Render(RenderPhone(phone))
	addr := Muted.Render(street + ", " + city)

	if selected {
		cursor := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Render("▌")
		nameCol := lipgloss.NewStyle().Width(NameColWidth).Render(Primary.Bold(true).Render(title))
		return cursor + " " + nameCol + phoneCol + addr
	}
	nameCol := lipgloss.NewStyle().Width(NameColWidth).Render(title)
	return "  " + nameCol + phoneCol + addr
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
