package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/akinalp/sigma/config"
	"github.com/akinalp/sigma/database"
	"github.com/akinalp/sigma/repository"
	"github.com/akinalp/sigma/seed"
)

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load categories, vouchers and admin accounts from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("failed to open seed file: %w", err)
			}
			defer f.Close()

			data, err := seed.Parse(f)
			if err != nil {
				return err
			}

			db, err := database.Open(config.LoadDatabase().Path)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			seeder := seed.NewSeeder(
				repository.NewSQLiteCategoryRepo(db.Conn),
				repository.NewSQLiteVoucherRepo(db.Conn),
				repository.NewSQLiteUserRepo(db.Conn),
			)
			sum, err := seeder.Apply(cmd.Context(), data)
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}

			log.Printf("[seed] categories created=%d, vouchers upserted=%d, admins created=%d",
				sum.CategoriesCreated, sum.VouchersUpserted, sum.AdminsCreated)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "seed.yaml", "path to the seed YAML file")
	return cmd
}
