package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gatherhq/gather/internal/api"
)

var rsvpCmd = &cobra.Command{
	Use:   "rsvp",
	Short: "Manage your event RSVPs",
}

var rsvpAddCmd = &cobra.Command{
	Use:   "add <event-id>",
	Short: "RSVP to an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runRSVPAdd,
}

var rsvpCancelCmd = &cobra.Command{
	Use:   "cancel <event-id>",
	Short: "Cancel your RSVP for an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runRSVPCancel,
}

var rsvpListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the events you have RSVPed to",
	RunE:  runRSVPList,
}

func init() {
	rsvpCmd.AddCommand(rsvpAddCmd)
	rsvpCmd.AddCommand(rsvpCancelCmd)
	rsvpCmd.AddCommand(rsvpListCmd)
	rootCmd.AddCommand(rsvpCmd)
}

func runRSVPAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.RequireAuth(); err != nil {
		return presentError(err)
	}

	eventID := args[0]
	if _, err := a.RSVPs.Add(cmd.Context(), eventID); err != nil {
		return presentError(err)
	}
	if err := a.RefreshAfterRSVP(cmd.Context(), eventID); err != nil {
		a.Logger.Warn("refresh after rsvp incomplete", "error", err)
	}

	fmt.Printf("You are going to event %s\n", eventID)
	return nil
}

func runRSVPCancel(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.RequireAuth(); err != nil {
		return presentError(err)
	}

	eventID := args[0]
	if _, err := a.RSVPs.Cancel(cmd.Context(), eventID); err != nil {
		return presentError(err)
	}
	if err := a.RefreshAfterRSVP(cmd.Context(), eventID); err != nil {
		a.Logger.Warn("refresh after rsvp incomplete", "error", err)
	}

	fmt.Printf("RSVP for event %s cancelled\n", eventID)
	return nil
}

func runRSVPList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.RequireAuth(); err != nil {
		return presentError(err)
	}

	if err := a.RSVPs.ListMine(cmd.Context()); err != nil {
		return presentError(err)
	}
	if err := a.Events.List(cmd.Context()); err != nil {
		return presentError(err)
	}

	fmt.Print(formatRSVPList(a.Store.MyRSVPs(), a.Store.Events()))
	return nil
}

// formatRSVPList resolves each RSVP against the event list so the output
// shows titles, not bare ids.
func formatRSVPList(rsvps []api.RSVP, events []api.Event) string {
	if len(rsvps) == 0 {
		return "You have no RSVPs. Browse events with: gather events list\n"
	}

	byID := make(map[string]api.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %-30s %-12s %s\n", "EVENT", "TITLE", "DATE", "TIME")
	for _, r := range rsvps {
		event, ok := byID[r.EventID]
		if !ok {
			fmt.Fprintf(&b, "%-12s %-30s %-12s %s\n", truncate(r.EventID, 12), "(event no longer listed)", "", "")
			continue
		}
		fmt.Fprintf(&b, "%-12s %-30s %-12s %s\n", truncate(event.ID, 12), truncate(event.Title, 30), event.Date, event.Time)
	}
	return b.String()
}
