package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/gatherhq/gather/internal/api"
	"github.com/gatherhq/gather/internal/state"
)

// LoginForm collects the login credentials interactively. A pre-filled
// email (from a flag) is kept as the default.
func LoginForm(email string) (string, string, error) {
	var password string

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Placeholder("you@campus.edu").
			Value(&email).
			Validate(requireField("Email")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&password).
			Validate(requireField("Password")),
	))

	if err := form.Run(); err != nil {
		return "", "", fmt.Errorf("prompt failed: %w", err)
	}
	return email, password, nil
}

// RegisterForm collects the registration fields interactively, including
// the password confirmation.
func RegisterForm(name, email string) (string, string, string, string, error) {
	var password, confirm string

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Value(&name).
			Validate(requireField("Name")),
		huh.NewInput().
			Title("Email").
			Placeholder("you@campus.edu").
			Value(&email).
			Validate(requireField("Email")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&password).
			Validate(requireField("Password")),
		huh.NewInput().
			Title("Confirm password").
			EchoMode(huh.EchoModePassword).
			Value(&confirm).
			Validate(func(s string) error {
				if s != password {
					return fmt.Errorf("passwords do not match")
				}
				return nil
			}),
	))

	if err := form.Run(); err != nil {
		return "", "", "", "", fmt.Errorf("prompt failed: %w", err)
	}
	return name, email, password, confirm, nil
}

// EventForm collects the event fields interactively, starting from any
// values already present in input. Validation here mirrors what the
// managers enforce, so mistakes surface before anything is sent.
func EventForm(input *api.EventInput) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Value(&input.Title).
			Validate(requireField("Title")),
		huh.NewText().
			Title("Description").
			Value(&input.Description).
			Validate(requireField("Description")),
		huh.NewInput().
			Title("Department").
			Placeholder("Engineering").
			Value(&input.Department).
			Validate(requireField("Department")),
		huh.NewInput().
			Title("Date").
			Placeholder("YYYY-MM-DD").
			Value(&input.Date).
			Validate(validDate),
		huh.NewInput().
			Title("Time").
			Placeholder("HH:MM").
			Value(&input.Time).
			Validate(validTime),
		huh.NewInput().
			Title("Location").
			Placeholder("Main Hall").
			Value(&input.Location).
			Validate(requireField("Location")),
	))

	if err := form.Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

func requireField(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func validDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("Date is required")
	}
	if _, err := time.Parse(state.DateLayout, s); err != nil {
		return fmt.Errorf("use the YYYY-MM-DD format")
	}
	return nil
}

func validTime(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("Time is required")
	}
	if _, err := time.Parse(state.TimeLayout, s); err != nil {
		return fmt.Errorf("use the 24-hour HH:MM format")
	}
	return nil
}
