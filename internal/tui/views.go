package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains lipgloss styles for the browser
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Going    lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Border   lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")). // Purple
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginBottom(1),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")), // White
		Going: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")). // Purple
			Padding(1, 2),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
	}
}

var styles = DefaultStyles()

// View implements tea.Model
func (m BrowseModel) View() string {
	switch m.view {
	case viewDetail:
		return m.renderDetail()
	default:
		return m.renderList()
	}
}

func (m BrowseModel) renderList() string {
	var b strings.Builder
	b.WriteString(m.list.View())

	if m.loading {
		b.WriteString("\n" + m.spinner.View() + " " + m.statusLine())
	} else if m.err != nil {
		b.WriteString("\n" + styles.Error.Render("Error: ") + m.err.Error())
	}
	return b.String()
}

func (m BrowseModel) renderDetail() string {
	event := m.app.Store.EventDetail()
	if event == nil {
		return styles.Muted.Render("No event selected.")
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(event.Title))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(event.Department))
	b.WriteString("\n\n")

	rows := []struct{ label, value string }{
		{"When", fmt.Sprintf("%s at %s", event.Date, event.Time)},
		{"Where", event.Location},
		{"Going", fmt.Sprintf("%d", event.RSVPCount)},
	}
	for _, row := range rows {
		b.WriteString(styles.Label.Render(row.label+": ") + styles.Value.Render(row.value))
		b.WriteString("\n")
	}

	if m.app.RSVPs.HasRSVP(event.ID) {
		b.WriteString(styles.Going.Render("✓ You are going"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(event.Description)
	b.WriteString("\n")

	_, roster := m.app.Store.Roster()
	if len(roster) > 0 {
		b.WriteString("\n" + styles.Label.Render(fmt.Sprintf("Attendees (%d):", len(roster))) + "\n")
		for _, r := range roster {
			b.WriteString("  " + styles.Value.Render(r.UserID) + "\n")
		}
	}

	if m.loading {
		b.WriteString("\n" + m.spinner.View() + " " + m.statusLine())
	} else if m.err != nil {
		b.WriteString("\n" + styles.Error.Render("Error: ") + m.err.Error())
	}

	b.WriteString("\n" + styles.Help.Render("r toggle rsvp · esc back · q quit"))

	width := 78
	if m.width > 2 && m.width-2 < width {
		width = m.width - 2
	}
	return styles.Border.Width(width).Render(b.String())
}

func (m BrowseModel) statusLine() string {
	if m.status != "" {
		return m.status
	}
	return "Loading…"
}
