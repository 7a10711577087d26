package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kalakaksh/backend/app/repositories"
	"github.com/kalakaksh/backend/app/store"
	"github.com/kalakaksh/backend/config"
	"github.com/kalakaksh/backend/database/seeders"
	"github.com/kalakaksh/backend/pkg/database"
	"github.com/kalakaksh/backend/pkg/migration"
)

// bootSQL loads config and opens the SQL connection. The migration commands
// only make sense for the SQL-backed store.
func bootSQL() error {
	if err := config.Load(); err != nil {
		return err
	}

	driver := config.StoreDriver()
	if driver == "json" {
		return fmt.Errorf("STORE_DRIVER is %q; migrations apply to the SQL drivers only", driver)
	}

	return database.Connect(driver, config.DatabaseDSN())
}

// kalakaksh db:migrate
var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootSQL(); err != nil {
			return err
		}
		fmt.Println("Running migrations...")
		return migration.New(database.DB).Run()
	},
}

// kalakaksh db:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "db:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootSQL(); err != nil {
			return err
		}
		fmt.Println("Rolling back last batch...")
		return migration.New(database.DB).Rollback()
	},
}

// kalakaksh db:status
var migrateStatusCmd = &cobra.Command{
	Use:   "db:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootSQL(); err != nil {
			return err
		}
		return migration.New(database.DB).Status()
	},
}

// kalakaksh db:seed — works against whichever store driver is configured.
var seedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Seed the store with sample artisans and products",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		st, err := store.Open()
		if err != nil {
			return err
		}

		fmt.Println("Running seeders...")
		return seeders.RunAll(repositories.New(st))
	},
}
