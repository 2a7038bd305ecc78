package main

import (
	"io"
	"os"
	"workouttracker/app/internal/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	envAPIURL   = "WORKOUT_API_URL"
	envAPIToken = "WORKOUT_API_TOKEN"

	defaultAPIURL = "http://localhost:8080"
)

type rootOptions struct {
	apiURL string
	token  string
}

func (o *rootOptions) client() *client.Client {
	return client.New(o.apiURL, o.token)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "workoutctl",
		Short:         "Plan workouts from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.apiURL == "" {
				opts.apiURL = envOr(envAPIURL, defaultAPIURL)
			}
			if opts.token == "" {
				opts.token = os.Getenv(envAPIToken)
			}
		},
	}
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "API base URL (default $"+envAPIURL+" or "+defaultAPIURL+")")
	cmd.PersistentFlags().StringVar(&opts.token, "token", "", "session token (default $"+envAPIToken+")")

	cmd.AddCommand(newExercisesCmd(opts))
	cmd.AddCommand(newWorkoutsCmd(opts))
	cmd.AddCommand(newCreateCmd(opts))
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// signInRequired is returned after the sign-in prompt has been printed.
type signInRequired struct{ message string }

func (e signInRequired) Error() string { return e.message }

func printSignIn(w io.Writer, message string) error {
	color.New(color.FgYellow).Fprintln(w, message)
	return signInRequired{message: message}
}
