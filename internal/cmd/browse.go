package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gatherhq/gather/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse events interactively",
	Long: `Open the interactive event browser. Move through the list with the
arrow keys, press enter to see an event in detail, and press r to toggle
your RSVP without leaving the screen.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.RequireAuth(); err != nil {
		return presentError(err)
	}

	// Load everything the browser renders before the first frame.
	if err := a.Events.List(cmd.Context()); err != nil {
		return presentError(err)
	}
	if err := a.RSVPs.ListMine(cmd.Context()); err != nil {
		return presentError(err)
	}

	model := tui.NewBrowseModel(a)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = program.Run()
	return err
}
