package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gatherhq/gather/internal/api"
	"github.com/gatherhq/gather/internal/tui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the campus events platform",
	Long: `Log in with your campus account. The session token is encrypted and
stored locally, so you stay logged in across runs until you log out.`,
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE:  runLogout,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile",
	Long:  `Fetch and display your profile, including how many events you have RSVPed to.`,
	RunE:  runProfile,
}

var (
	loginEmail    string
	loginPassword string

	registerName     string
	registerEmail    string
	registerPassword string
)

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (prompted when omitted)")

	registerCmd.Flags().StringVar(&registerName, "name", "", "display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "account password (prompted when omitted)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(profileCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	email, password := loginEmail, loginPassword
	if email == "" || password == "" {
		if !tui.ShouldPrompt() {
			return NewErrorWithSuggestions(
				"Email and password are required",
				nil,
				"Pass them as flags: gather login --email you@campus.edu --password <password>",
			)
		}
		email, password, err = tui.LoginForm(email)
		if err != nil {
			return err
		}
	}

	if err := a.Auth.Login(cmd.Context(), email, password); err != nil {
		return presentError(err)
	}

	auth := a.Store.Auth()
	fmt.Printf("Logged in as %s (%s)\n", auth.User.Name, auth.User.Email)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	name, email, password := registerName, registerEmail, registerPassword
	confirm := password
	if name == "" || email == "" || password == "" {
		if !tui.ShouldPrompt() {
			return NewErrorWithSuggestions(
				"Name, email, and password are required",
				nil,
				"Pass them as flags: gather register --name You --email you@campus.edu --password <password>",
			)
		}
		name, email, password, confirm, err = tui.RegisterForm(name, email)
		if err != nil {
			return err
		}
	}

	if err := a.Auth.Register(cmd.Context(), name, email, password, confirm); err != nil {
		return presentError(err)
	}

	auth := a.Store.Auth()
	fmt.Printf("Welcome, %s! You are now logged in.\n", auth.User.Name)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if err := a.Auth.Logout(cmd.Context()); err != nil {
		return presentError(err)
	}

	fmt.Println("Logged out.")
	return nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.RequireAuth(); err != nil {
		return presentError(err)
	}

	if err := a.Auth.FetchProfile(cmd.Context()); err != nil {
		return presentError(err)
	}

	fmt.Print(formatProfile(a.Store.Auth().User))
	return nil
}

func formatProfile(user *api.User) string {
	if user == nil {
		return "Not logged in.\n"
	}

	out := fmt.Sprintf("Name:   %s\nEmail:  %s\nRole:   %s\nRSVPs:  %d\n",
		user.Name, user.Email, user.Role, user.RSVPCount)
	if user.IsAdmin() {
		out += "\nYou have organizer access: you can create, edit, and delete events.\n"
	}
	return out
}
