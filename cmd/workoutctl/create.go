package main

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"workouttracker/app/internal/client"
	"workouttracker/app/internal/domain"
	"workouttracker/app/internal/workoutform"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCreateCmd(opts *rootOptions) *cobra.Command {
	var (
		name      string
		at        string
		exercises []string
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a workout plan",
		Example: `  workoutctl new --name "Leg Day" --at 2024-01-01T10:00 \
    --exercise squat-1:3:10:40 --exercise plank-1:3:1:0:"hold 60s"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := opts.client()
			if !c.HasToken() {
				return printSignIn(cmd.ErrOrStderr(), signInToCreate)
			}

			catalog, err := c.ListExercises(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load exercises: %w", err)
			}

			form, err := fillForm(toDomain(catalog), name, at, exercises)
			if err != nil {
				return err
			}

			var created *client.WorkoutPlan
			err = form.Submit(func(v workoutform.ValidatedDraft) error {
				var postErr error
				created, postErr = c.CreateWorkout(cmd.Context(), v.Payload())
				return postErr
			})
			var fieldErrs workoutform.FieldErrors
			switch {
			case errors.As(err, &fieldErrs):
				printFieldErrors(cmd, fieldErrs)
				return errors.New("workout not created")
			case errors.Is(err, client.ErrUnauthorized):
				return printSignIn(cmd.ErrOrStderr(), signInToCreate)
			case err != nil:
				return fmt.Errorf("failed to create workout: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Created %q\n\n", color.New(color.FgGreen).Sprint("✓"), created.Name)
			return showWorkouts(cmd, c)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "workout name")
	cmd.Flags().StringVar(&at, "at", "", "scheduled date-time (RFC 3339 or 2006-01-02T15:04 local time)")
	cmd.Flags().StringArrayVarP(&exercises, "exercise", "e", nil, "exercise row as id:sets:reps:weight[:comments] (repeatable)")
	return cmd
}

func toDomain(catalog []client.Exercise) []domain.Exercise {
	out := make([]domain.Exercise, len(catalog))
	for i, ex := range catalog {
		out[i] = domain.Exercise{
			ID:          ex.ID,
			Name:        ex.Name,
			Description: ex.Description,
			Category:    ex.Category,
			MuscleGroup: ex.MuscleGroup,
		}
	}
	return out
}

// fillForm builds a form from flag values. Rows not given on the command line
// keep their defaults; with no --exercise the single default row stays empty.
func fillForm(catalog []domain.Exercise, name, at string, rows []string) (*workoutform.Form, error) {
	form := workoutform.New(catalog, workoutform.WithLocation(time.Local))
	form.SetName(name)
	form.SetScheduledAt(at)

	fields := []string{
		workoutform.FieldExerciseID,
		workoutform.FieldSets,
		workoutform.FieldReps,
		workoutform.FieldWeight,
		workoutform.FieldComments,
	}
	for i, spec := range rows {
		if i > 0 {
			form.Append()
		}
		parts := strings.SplitN(spec, ":", len(fields))
		for j, text := range parts {
			if err := form.SetEntryField(i, fields[j], text); err != nil {
				return nil, err
			}
		}
	}
	return form, nil
}

func printFieldErrors(cmd *cobra.Command, errs workoutform.FieldErrors) {
	red := color.New(color.FgRed).SprintFunc()
	w := cmd.ErrOrStderr()
	fmt.Fprintln(w, red("The workout has errors:"))
	for _, fe := range errs {
		fmt.Fprintf(w, "  • %s: %s\n", fe.Field, fe.Message)
	}
}
