package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kalakaksh/backend/app/repositories"
	"github.com/kalakaksh/backend/app/services"
	"github.com/kalakaksh/backend/app/store"
	"github.com/kalakaksh/backend/config"
	"github.com/kalakaksh/backend/pkg/storage"
)

// kalakaksh stats — print the dashboard aggregation as JSON.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print marketplace statistics as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		st, err := store.Open()
		if err != nil {
			return err
		}

		stats, err := services.NewDashboard(repositories.New(st)).Stats()
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	},
}

// kalakaksh cleanup:images — remove upload directories for deleted products.
var cleanupImagesCmd = &cobra.Command{
	Use:   "cleanup:images",
	Short: "Delete stored product image directories that no product references",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		storage.Connect()

		st, err := store.Open()
		if err != nil {
			return err
		}

		repo := repositories.New(st)
		media := services.NewMedia(repo, storage.Default(), services.NewEnhance(""))

		removed, err := media.CleanupOrphanedImages()
		if err != nil {
			return err
		}

		fmt.Printf("Removed %d orphaned image directories.\n", removed)
		return nil
	},
}
