// Command workoutctl browses the exercise catalog and creates and lists
// workout plans against a running server.
package main

import (
	"errors"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; flags and the environment still apply.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		var signIn signInRequired
		if !errors.As(err, &signIn) {
			color.New(color.FgRed).Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
