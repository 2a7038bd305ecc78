// Command seed loads an exercise catalog into the configured database.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"
	"workouttracker/app/internal/catalog"
	"workouttracker/app/internal/config"
	"workouttracker/app/internal/database"
	"workouttracker/app/internal/domain"
	"workouttracker/app/internal/service"
	"workouttracker/app/internal/storage"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	catalogFile string
	configDir   string
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the exercise catalog",
	Long: `Reads exercises from a TOML or YAML file (or s3://bucket/key) and upserts
them by id. Without --file the bundled catalog is loaded.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return fmt.Errorf("could not load config: %w", err)
		}
		if cfg.Database.Driver == config.DriverMemory {
			log.Println("WARN: database.driver is memory; the seeded catalog will not outlive this process.")
		}

		exercises, err := readCatalog(ctx, cfg, catalogFile)
		if err != nil {
			return err
		}

		repos, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer repos.Close()

		n, err := service.NewExerciseService(repos.Exercises).ImportCatalog(ctx, exercises)
		if err != nil {
			return fmt.Errorf("failed to import catalog: %w", err)
		}

		green := color.New(color.FgGreen, color.Bold).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Printf("%s Imported %d exercises\n", green("✓"), n)
		for _, ex := range exercises {
			fmt.Printf("  • %s %s\n", cyan(ex.ID), ex.Name)
		}
		return nil
	},
}

func readCatalog(ctx context.Context, cfg config.Config, location string) ([]domain.Exercise, error) {
	if location == "" {
		return catalog.Default()
	}

	var objects storage.ObjectStore
	if storage.IsObjectURL(location) {
		s3Store, err := storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		objects = s3Store
	}
	return catalog.Load(ctx, location, objects)
}

func init() {
	rootCmd.Flags().StringVarP(&catalogFile, "file", "f", "", "catalog file (.toml, .yaml, .yml) or s3://bucket/key")
	rootCmd.Flags().StringVar(&configDir, "config-dir", ".", "directory containing config.yaml")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
