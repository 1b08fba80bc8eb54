package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gatherhq/gather/internal/api"
	"github.com/gatherhq/gather/internal/app"
)

// browseView identifies the screen currently shown
type browseView int

const (
	// viewList is the scrollable event list
	viewList browseView = iota
	// viewDetail is a single event with its attendee roster
	viewDetail
)

// browseKeyMap defines the keyboard shortcuts for the browser
type browseKeyMap struct {
	Open   key.Binding
	Back   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

var browseKeys = browseKeyMap{
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "toggle rsvp"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// eventItem adapts an event to the bubbles list
type eventItem struct {
	event api.Event
	going bool
}

func (i eventItem) Title() string {
	if i.going {
		return "✓ " + i.event.Title
	}
	return i.event.Title
}

func (i eventItem) Description() string {
	return fmt.Sprintf("%s %s · %s · %d going", i.event.Date, i.event.Time, i.event.Location, i.event.RSVPCount)
}

func (i eventItem) FilterValue() string {
	return i.event.Title
}

// Messages produced by the async commands.
type (
	detailLoadedMsg struct{ eventID string }
	rsvpToggledMsg  struct{ eventID string }
	browseErrMsg    struct{ err error }
)

// BrowseModel is the interactive event browser
type BrowseModel struct {
	app *app.App

	list    list.Model
	spinner spinner.Model
	view    browseView
	loading bool
	status  string
	err     error

	width  int
	height int
}

// NewBrowseModel builds the browser over an application whose store already
// holds the event list and the user's RSVPs.
func NewBrowseModel(a *app.App) BrowseModel {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Campus Events"
	l.SetShowStatusBar(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{browseKeys.Open, browseKeys.Toggle}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := BrowseModel{
		app:     a,
		list:    l,
		spinner: sp,
		view:    viewList,
	}
	m.syncList()
	return m
}

// syncList rebuilds the list items from the store snapshot.
func (m *BrowseModel) syncList() {
	events := m.app.Store.Events()
	items := make([]list.Item, len(events))
	for i, e := range events {
		items[i] = eventItem{event: e, going: m.app.RSVPs.HasRSVP(e.ID)}
	}
	m.list.SetItems(items)
}

// Init implements tea.Model
func (m BrowseModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case detailLoadedMsg:
		m.loading = false
		m.view = viewDetail
		return m, nil

	case rsvpToggledMsg:
		m.loading = false
		m.status = ""
		m.syncList()
		return m, nil

	case browseErrMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter is open, every key belongs to it.
	if m.view == viewList && m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	m.err = nil

	switch {
	case key.Matches(msg, browseKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, browseKeys.Back):
		if m.view == viewDetail {
			m.view = viewList
			m.syncList()
			return m, nil
		}

	case key.Matches(msg, browseKeys.Open):
		if m.view == viewList && !m.loading {
			if item, ok := m.list.SelectedItem().(eventItem); ok {
				m.loading = true
				return m, m.loadDetail(item.event.ID)
			}
		}

	case key.Matches(msg, browseKeys.Toggle):
		if !m.loading {
			if id := m.selectedEventID(); id != "" {
				m.loading = true
				m.status = "Updating RSVP…"
				return m, m.toggleRSVP(id)
			}
		}
	}

	if m.view == viewList {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

// selectedEventID returns the event the shortcuts act on: the open detail,
// or the highlighted list row.
func (m BrowseModel) selectedEventID() string {
	if m.view == viewDetail {
		if detail := m.app.Store.EventDetail(); detail != nil {
			return detail.ID
		}
		return ""
	}
	if item, ok := m.list.SelectedItem().(eventItem); ok {
		return item.event.ID
	}
	return ""
}

func (m BrowseModel) loadDetail(eventID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := m.app.Events.Get(ctx, eventID); err != nil {
			return browseErrMsg{err: err}
		}
		if err := m.app.RSVPs.ListForEvent(ctx, eventID); err != nil {
			return browseErrMsg{err: err}
		}
		return detailLoadedMsg{eventID: eventID}
	}
}

func (m BrowseModel) toggleRSVP(eventID string) tea.Cmd {
	going := m.app.RSVPs.HasRSVP(eventID)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var err error
		if going {
			_, err = m.app.RSVPs.Cancel(ctx, eventID)
		} else {
			_, err = m.app.RSVPs.Add(ctx, eventID)
		}
		if err != nil {
			return browseErrMsg{err: err}
		}

		// Refresh failures are non-fatal; the toggle itself stuck.
		_ = m.app.RefreshAfterRSVP(ctx, eventID)
		return rsvpToggledMsg{eventID: eventID}
	}
}
