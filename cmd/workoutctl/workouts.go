package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"
	"workouttracker/app/internal/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	signInToView   = "Please sign in to view your workouts."
	signInToCreate = "Please sign in to create a workout."
)

func newWorkoutsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "workouts",
		Short: "List your workout plans, latest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := opts.client()
			if !c.HasToken() {
				return printSignIn(cmd.ErrOrStderr(), signInToView)
			}
			return showWorkouts(cmd, c)
		},
	}
}

func showWorkouts(cmd *cobra.Command, c *client.Client) error {
	workouts, err := c.ListWorkouts(cmd.Context())
	if errors.Is(err, client.ErrUnauthorized) {
		return printSignIn(cmd.ErrOrStderr(), signInToView)
	}
	if err != nil {
		return fmt.Errorf("failed to load workouts: %w", err)
	}
	renderWorkouts(cmd.OutOrStdout(), workouts)
	return nil
}

// renderWorkouts prints plans in the order the server returned them.
func renderWorkouts(w io.Writer, workouts []client.WorkoutPlan) {
	if len(workouts) == 0 {
		fmt.Fprintln(w, "No workouts yet.")
		return
	}
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	for i, p := range workouts {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, green(p.Name))
		fmt.Fprintf(w, "%s %s\n", yellow("Scheduled:"), p.ScheduledAt.In(time.Local).Format("Mon, 02 Jan 2006 15:04"))
		for _, e := range p.WorkoutExercises {
			fmt.Fprintf(w, "- %s\n", entryLine(e))
		}
	}
}

func entryLine(e client.WorkoutExercise) string {
	name := e.ExerciseID
	if e.Exercise != nil {
		name = e.Exercise.Name
	}
	line := fmt.Sprintf("%s - %d sets x %d reps @ %skg", name, e.Sets, e.Reps, strconv.FormatFloat(e.Weight, 'f', -1, 64))
	if e.Comments != "" {
		line += " (" + e.Comments + ")"
	}
	return line
}
