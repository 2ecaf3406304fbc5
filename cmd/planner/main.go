// Command planner is a terminal front end for the Meal-Planner engine:
// log in, manage preferences and pantry, and chat with the meal assistant.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	planner "github.com/Jaideepo7/Meal-Planner"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := planner.ConfigFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	app, err := planner.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init")
	}
	defer func() { _ = app.Close() }()

	root := &cobra.Command{
		Use:           "planner",
		Short:         "Meal-Planner client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.Start(cmd.Context())
		},
	}
	root.AddCommand(
		loginCmd(app),
		signupCmd(app),
		logoutCmd(app),
		whoamiCmd(app),
		prefsCmd(app),
		pantryCmd(app),
		chatCmd(app),
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("planner")
	}
}

func loginCmd(app *planner.App) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Sign in and persist the session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.Session.Login(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("signed in as %s (%s)\n", id.Email, id.ID)
			return nil
		},
	}
}

func signupCmd(app *planner.App) *cobra.Command {
	return &cobra.Command{
		Use:   "signup <name> <email> <password>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.Session.SignUp(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Printf("welcome, %s\n", id.Email)
			return nil
		},
	}
}

func logoutCmd(app *planner.App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear local state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.Session.Logout(cmd.Context())
			fmt.Println("signed out")
			return nil
		},
	}
}

func whoamiCmd(app *planner.App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current identity",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			id := app.Session.CurrentIdentity()
			if id == nil {
				fmt.Println("anonymous")
				return nil
			}
			fmt.Printf("%s (%s)\n", id.Email, id.ID)
			return nil
		},
	}
}

func prefsCmd(app *planner.App) *cobra.Command {
	cmd := &cobra.Command{Use: "prefs", Short: "Show or set preferences"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print current preferences",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				p := app.Preferences.Snapshot()
				fmt.Printf("cuisines:     %s\n", strings.Join(p.Cuisines, ", "))
				fmt.Printf("restrictions: %s\n", strings.Join(p.DietaryRestrictions, ", "))
				fmt.Printf("goals:        %s\n", strings.Join(p.HealthGoals, ", "))
				return nil
			},
		},
		&cobra.Command{
			Use:   "cuisines <name>...",
			Short: "Replace cuisine selections",
			Args:  cobra.MinimumNArgs(0),
			RunE: func(_ *cobra.Command, args []string) error {
				app.Preferences.SetCuisines(args)
				return nil
			},
		},
		&cobra.Command{
			Use:   "restrictions <name>...",
			Short: "Replace dietary restrictions",
			Args:  cobra.MinimumNArgs(0),
			RunE: func(_ *cobra.Command, args []string) error {
				app.Preferences.SetDietaryRestrictions(args)
				return nil
			},
		},
		&cobra.Command{
			Use:   "goals <name>...",
			Short: "Replace health goals",
			Args:  cobra.MinimumNArgs(0),
			RunE: func(_ *cobra.Command, args []string) error {
				app.Preferences.SetHealthGoals(args)
				return nil
			},
		},
	)
	return cmd
}

func pantryCmd(app *planner.App) *cobra.Command {
	cmd := &cobra.Command{Use: "pantry", Short: "Manage the food inventory"}
	var category, quantity string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an ingredient",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			item, err := app.Pantry.Add(c.Context(), planner.PantryItemFields{
				Name:     args[0],
				Category: planner.CategoryCode(category),
				Quantity: quantity,
			})
			if err != nil {
				return err
			}
			fmt.Printf("added %s (%s)\n", item.Name, item.ID)
			return nil
		},
	}
	add.Flags().StringVar(&category, "category", "", "pantry category code")
	add.Flags().StringVar(&quantity, "quantity", "", "free-form quantity")

	cmd.AddCommand(
		add,
		&cobra.Command{
			Use:   "list",
			Short: "List ingredients",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				for _, it := range app.Pantry.Items() {
					fmt.Printf("%-24s %-18s %s\n", it.Name, it.Category, it.Quantity)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Remove an ingredient by id",
			Args:  cobra.ExactArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				return app.Pantry.Remove(c.Context(), args[0])
			},
		},
	)
	return cmd
}

func chatCmd(app *planner.App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the meal assistant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, m := range app.Conversation.History() {
				fmt.Printf("%s: %s\n", m.Role, m.Content)
			}
			sc := bufio.NewScanner(os.Stdin)
			fmt.Print("> ")
			for sc.Scan() {
				line := strings.TrimSpace(sc.Text())
				if line == "" || line == "exit" {
					break
				}
				reply, err := app.Conversation.Send(cmd.Context(), line)
				if err != nil {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
				} else {
					fmt.Printf("assistant: %s\n", reply.Content)
				}
				fmt.Print("> ")
			}
			return sc.Err()
		},
	}
}
