package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newExercisesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exercises",
		Short: "List the exercise catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exercises, err := opts.client().ListExercises(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load exercises: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(exercises) == 0 {
				fmt.Fprintln(out, "The catalog is empty. Run seed to load it.")
				return nil
			}
			cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
			magenta := color.New(color.FgMagenta).SprintFunc()
			for _, ex := range exercises {
				fmt.Fprintf(out, "%s %s (%s, %s)\n", cyan(ex.ID), ex.Name, ex.Category, magenta(ex.MuscleGroup))
				if ex.Description != "" {
					fmt.Fprintf(out, "    %s\n", ex.Description)
				}
			}
			return nil
		},
	}
}
