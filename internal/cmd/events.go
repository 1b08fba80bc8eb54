package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gatherhq/gather/internal/api"
	"github.com/gatherhq/gather/internal/tui"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Browse and manage campus events",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all events",
	RunE:  runEventsList,
}

var eventsShowCmd = &cobra.Command{
	Use:   "show <event-id>",
	Short: "Show one event in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsShow,
}

var eventsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new event",
	Long: `Create a new event. Requires organizer access. Fields left out as
flags are collected interactively.`,
	RunE: runEventsCreate,
}

var eventsEditCmd = &cobra.Command{
	Use:   "edit <event-id>",
	Short: "Edit an existing event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsEdit,
}

var eventsDeleteCmd = &cobra.Command{
	Use:   "delete <event-id>",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsDelete,
}

var (
	eventInput  api.EventInput
	deleteForce bool
)

func init() {
	for _, c := range []*cobra.Command{eventsCreateCmd, eventsEditCmd} {
		c.Flags().StringVar(&eventInput.Title, "title", "", "event title")
		c.Flags().StringVar(&eventInput.Description, "description", "", "event description")
		c.Flags().StringVar(&eventInput.Department, "department", "", "hosting department")
		c.Flags().StringVar(&eventInput.Date, "date", "", "event date (YYYY-MM-DD)")
		c.Flags().StringVar(&eventInput.Time, "time", "", "event time (HH:MM, 24-hour)")
		c.Flags().StringVar(&eventInput.Location, "location", "", "event location")
	}
	eventsDeleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip the confirmation prompt")

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsShowCmd)
	eventsCmd.AddCommand(eventsCreateCmd)
	eventsCmd.AddCommand(eventsEditCmd)
	eventsCmd.AddCommand(eventsDeleteCmd)
	rootCmd.AddCommand(eventsCmd)
}

func runEventsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.RequireAuth(); err != nil {
		return presentError(err)
	}

	if err := a.Events.List(cmd.Context()); err != nil {
		return presentError(err)
	}

	fmt.Print(formatEventTable(a.Store.Events()))
	return nil
}

func runEventsShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.RequireAuth(); err != nil {
		return presentError(err)
	}

	if err := a.Events.Get(cmd.Context(), args[0]); err != nil {
		return presentError(err)
	}
	event := a.Store.EventDetail()
	if event == nil {
		return EventNotFoundError(args[0])
	}

	// The roster is best effort; the detail still renders without it.
	if err := a.RSVPs.ListForEvent(cmd.Context(), event.ID); err != nil {
		a.Logger.Warn("failed to load attendees", "event", event.ID, "error", err)
	}

	_, roster := a.Store.Roster()
	fmt.Print(formatEventDetail(*event, roster))
	return nil
}

func runEventsCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.RequireAuth(); err != nil {
		return presentError(err)
	}
	if err := requireOrganizer(a.Store.Auth().User); err != nil {
		return err
	}

	input := eventInput
	if err := fillEventInput(&input); err != nil {
		return err
	}

	created, err := a.Events.Create(cmd.Context(), input)
	if err != nil {
		return presentError(err)
	}

	fmt.Printf("Created event %q (%s)\n", created.Title, created.ID)
	return nil
}

func runEventsEdit(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.RequireAuth(); err != nil {
		return presentError(err)
	}
	if err := requireOrganizer(a.Store.Auth().User); err != nil {
		return err
	}

	// Start from the current server state so untouched fields survive.
	if err := a.Events.Get(cmd.Context(), args[0]); err != nil {
		return presentError(err)
	}
	current := a.Store.EventDetail()
	if current == nil {
		return EventNotFoundError(args[0])
	}

	input := mergeEventInput(*current, eventInput)
	if err := fillEventInput(&input); err != nil {
		return err
	}

	updated, err := a.Events.Update(cmd.Context(), args[0], input)
	if err != nil {
		return presentError(err)
	}

	fmt.Printf("Updated event %q (%s)\n", updated.Title, updated.ID)
	return nil
}

func runEventsDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.RequireAuth(); err != nil {
		return presentError(err)
	}
	if err := requireOrganizer(a.Store.Auth().User); err != nil {
		return err
	}

	if !deleteForce {
		if !tui.ShouldPrompt() {
			return NewErrorWithSuggestions(
				"Refusing to delete without confirmation",
				nil,
				"Re-run with --force to delete non-interactively",
			)
		}
		ok, err := tui.PromptForConfirmation(fmt.Sprintf("Delete event %s? This cannot be undone.", args[0]), false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := a.Events.Delete(cmd.Context(), args[0]); err != nil {
		return presentError(err)
	}

	fmt.Printf("Deleted event %s\n", args[0])
	return nil
}

// requireOrganizer hides the management actions from non-admin accounts.
// This is a courtesy gate; the backend enforces the role for real.
func requireOrganizer(user *api.User) error {
	if user == nil || user.IsAdmin() {
		return nil
	}
	return NewErrorWithSuggestions(
		"Your account does not have organizer access",
		nil,
		"Ask your department admin to grant the organizer role",
		"You can still browse and RSVP: gather events list",
	)
}

// fillEventInput collects any missing fields interactively, or rejects the
// input when no terminal is attached.
func fillEventInput(input *api.EventInput) error {
	if input.Title != "" && input.Description != "" && input.Department != "" &&
		input.Date != "" && input.Time != "" && input.Location != "" {
		return nil
	}
	if !tui.ShouldPrompt() {
		return NewErrorWithSuggestions(
			"All event fields are required",
			nil,
			"Pass --title, --description, --department, --date, --time, and --location",
		)
	}
	return tui.EventForm(input)
}

// mergeEventInput overlays the flag values onto the event's current fields.
func mergeEventInput(current api.Event, flags api.EventInput) api.EventInput {
	merged := api.EventInput{
		Title:       current.Title,
		Description: current.Description,
		Department:  current.Department,
		Date:        current.Date,
		Time:        current.Time,
		Location:    current.Location,
	}
	if flags.Title != "" {
		merged.Title = flags.Title
	}
	if flags.Description != "" {
		merged.Description = flags.Description
	}
	if flags.Department != "" {
		merged.Department = flags.Department
	}
	if flags.Date != "" {
		merged.Date = flags.Date
	}
	if flags.Time != "" {
		merged.Time = flags.Time
	}
	if flags.Location != "" {
		merged.Location = flags.Location
	}
	return merged
}

func formatEventTable(events []api.Event) string {
	if len(events) == 0 {
		return "No events found.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %-30s %-12s %-7s %-20s %s\n", "ID", "TITLE", "DATE", "TIME", "LOCATION", "RSVPS")
	for _, e := range events {
		fmt.Fprintf(&b, "%-12s %-30s %-12s %-7s %-20s %d\n",
			truncate(e.ID, 12), truncate(e.Title, 30), e.Date, e.Time, truncate(e.Location, 20), e.RSVPCount)
	}
	return b.String()
}

func formatEventDetail(event api.Event, roster []api.RSVP) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", event.Title)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", len(event.Title)))
	fmt.Fprintf(&b, "When:       %s at %s\n", event.Date, event.Time)
	fmt.Fprintf(&b, "Where:      %s\n", event.Location)
	fmt.Fprintf(&b, "Department: %s\n", event.Department)
	fmt.Fprintf(&b, "Attending:  %d\n\n", event.RSVPCount)
	fmt.Fprintf(&b, "%s\n", event.Description)

	if len(roster) > 0 {
		fmt.Fprintf(&b, "\nAttendees:\n")
		for _, r := range roster {
			fmt.Fprintf(&b, "  - %s\n", r.UserID)
		}
	}
	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
