package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"autonuoma/app/repositories"
	"autonuoma/config"
	"autonuoma/database/seeders"
	"autonuoma/pkg/database"
)

// bootDB loads config and opens the record store connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// autonuoma db:index — create the collection indexes.
var dbIndexCmd = &cobra.Command{
	Use:   "db:index",
	Short: "Ensure all collection indexes exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Disconnect()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := repositories.NewUserRepository().EnsureIndexes(ctx); err != nil {
			return err
		}
		if err := repositories.NewReservationRepository().EnsureIndexes(ctx); err != nil {
			return err
		}
		fmt.Println("Indexes ensured.")
		return nil
	},
}

// autonuoma db:seed — run all registered seeders.
var dbSeedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Disconnect()

		fmt.Println("Running seeders…")
		return seeders.RunAll(context.Background())
	},
}
