// Command gymtrack is the terminal client for the gym-tracker API: listing
// and inspecting workouts from the command line, and creating or editing
// them through the interactive form.
package main

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"gymtrack/gym-tracker/internal/apiclient"
	"gymtrack/gym-tracker/internal/config"
	"gymtrack/gym-tracker/internal/tui"
)

type cliContext struct {
	client *apiclient.Client
}

// StatusCmd pings the server's root endpoint.
type StatusCmd struct{}

func (c *StatusCmd) Run(cli *cliContext) error {
	status, err := cli.client.Status(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("%s (version %s, status %s)\n", status.Message, status.Version, status.Status)
	return nil
}

// UserListCmd lists all users.
type UserListCmd struct{}

func (c *UserListCmd) Run(cli *cliContext) error {
	users, err := cli.client.ListUsers(context.Background())
	if err != nil {
		return err
	}
	for _, u := range users {
		fmt.Printf("%s  %s <%s>\n", u.ID, u.Name, u.Email)
	}
	return nil
}

// UserAddCmd registers a new user.
type UserAddCmd struct {
	Name  string `arg:"" help:"Display name."`
	Email string `arg:"" help:"Email address (unique)."`
}

func (c *UserAddCmd) Run(cli *cliContext) error {
	user, err := cli.client.CreateUser(context.Background(), c.Name, c.Email)
	if err != nil {
		return err
	}
	fmt.Printf("created user %s\n", user.ID)
	return nil
}

// ListCmd lists a user's workouts, most recent first.
type ListCmd struct {
	User string `arg:"" help:"Owning user id."`
}

func (c *ListCmd) Run(cli *cliContext) error {
	workouts, err := cli.client.ListWorkouts(context.Background(), c.User)
	if err != nil {
		return err
	}
	if len(workouts) == 0 {
		fmt.Println("no workouts")
		return nil
	}
	for _, w := range workouts {
		title := w.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%s  %s  %-24s %2d exercises  %4d sets  %6.0f kg\n",
			w.ID, w.Date.Format("2006-01-02"), title,
			len(w.Exercises), w.TotalSets, math.Round(w.Volume))
	}
	return nil
}

// ShowCmd prints one workout in full.
type ShowCmd struct {
	ID string `arg:"" help:"Workout id."`
}

func (c *ShowCmd) Run(cli *cliContext) error {
	w, err := cli.client.GetWorkout(context.Background(), c.ID)
	if err != nil {
		return err
	}
	title := w.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Printf("%s — %s\n", w.Date.Format("2006-01-02"), title)
	for _, e := range w.Exercises {
		var volume float64
		for _, s := range e.Sets {
			volume += float64(s.Reps) * s.Weight
		}
		fmt.Printf("  %s (%.0f kg)\n", e.Name, math.Round(volume))
		for i, s := range e.Sets {
			fmt.Printf("    set %d: %d × %g kg\n", i+1, s.Reps, s.Weight)
		}
	}
	fmt.Printf("total: %d sets, %.0f kg\n", w.TotalSets, math.Round(w.Volume))
	return nil
}

// NewCmd opens the interactive form to create a workout.
type NewCmd struct {
	User string `arg:"" help:"Owning user id."`
}

func (c *NewCmd) Run(cli *cliContext) error {
	model := tui.New(cli.client, tui.ModeCreate, c.User, "")
	_, err := tea.NewProgram(model).Run()
	return err
}

// EditCmd opens the interactive form on an existing workout.
type EditCmd struct {
	ID string `arg:"" help:"Workout id."`
}

func (c *EditCmd) Run(cli *cliContext) error {
	model := tui.New(cli.client, tui.ModeEdit, "", c.ID)
	_, err := tea.NewProgram(model).Run()
	return err
}

// DeleteCmd removes a workout.
type DeleteCmd struct {
	ID string `arg:"" help:"Workout id."`
}

func (c *DeleteCmd) Run(cli *cliContext) error {
	resp, err := cli.client.DeleteWorkout(context.Background(), c.ID)
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}

var cli struct {
	Server string `help:"API base URL (overrides config)." env:"GYMTRACK_SERVER"`

	Status StatusCmd `cmd:"" help:"Check the server status."`
	User   struct {
		List UserListCmd `cmd:"" help:"List users."`
		Add  UserAddCmd  `cmd:"" help:"Add a user."`
	} `cmd:"" help:"Manage users."`
	List   ListCmd   `cmd:"" help:"List a user's workouts."`
	Show   ShowCmd   `cmd:"" help:"Show one workout."`
	New    NewCmd    `cmd:"" help:"Create a workout interactively."`
	Edit   EditCmd   `cmd:"" help:"Edit a workout interactively."`
	Delete DeleteCmd `cmd:"" help:"Delete a workout."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("gymtrack"),
		kong.Description("Terminal client for the gym-tracker API"),
		kong.UsageOnError(),
	)

	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	baseURL := cfg.API.BaseURL
	if cli.Server != "" {
		baseURL = cli.Server
	}

	err = ctx.Run(&cliContext{client: apiclient.New(baseURL, cfg.API.Timeout)})
	ctx.FatalIfErrorf(err)
}
