package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/pinkcat015/todolist/infrastructure/postgres"
	"github.com/pinkcat015/todolist/pkg/di"
	"github.com/pinkcat015/todolist/pkg/logger"
	"github.com/pinkcat015/todolist/pkg/seed"
)

func openDB() (*gorm.DB, func(), error) {
	db, err := postgres.NewDatabase(di.DatabaseConfig(cfg))
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, closeFn, nil
}

func newSeeder(db *gorm.DB) (*seed.Seeder, error) {
	fx, err := seed.LoadFixtures()
	if err != nil {
		return nil, err
	}
	return seed.NewSeeder(db, fx), nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and insert the default priorities",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			if err := postgres.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			seeder, err := newSeeder(db)
			if err != nil {
				return err
			}
			n, err := seeder.Priorities(cmd.Context())
			if err != nil {
				return err
			}

			logger.Info("Migration finished", "priorities_inserted", n)
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert fixture data",
	}

	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Insert the fixture users (password 123456), skipping existing usernames",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSeeder(cmd.Context(), func(ctx context.Context, s *seed.Seeder) error {
				n, err := s.Users(ctx)
				if err != nil {
					return err
				}
				logger.Info("User seeding complete", "created", n)
				return nil
			})
		},
	}

	var todos, logs int
	var fresh bool
	var randSeed int64
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Insert priorities, categories, todos and logs for every user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSeeder(cmd.Context(), func(ctx context.Context, s *seed.Seeder) error {
				if fresh {
					if err := s.Reset(ctx); err != nil {
						return fmt.Errorf("reset: %w", err)
					}
					logger.Info("Old data deleted")
				}
				if randSeed != 0 {
					s.WithRand(randSeed)
				}

				sum, err := s.Data(ctx, todos, logs)
				if err != nil {
					return err
				}
				logger.Info("Seeding finished",
					"priorities", sum.Priorities,
					"categories", sum.Categories,
					"todos", sum.Todos,
					"logs", sum.Logs,
				)
				return nil
			})
		},
	}
	dataCmd.Flags().IntVar(&todos, "todos", 50, "todos per user")
	dataCmd.Flags().IntVar(&logs, "logs", 150, "log rows per user")
	dataCmd.Flags().BoolVar(&fresh, "fresh", true, "truncate todos, logs, categories and priorities first")
	dataCmd.Flags().Int64Var(&randSeed, "rand-seed", 0, "fixed random seed for reproducible data")

	seedCmd.AddCommand(usersCmd, dataCmd)
	return seedCmd
}

func newResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every todo, log, category and priority (users are kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			return withSeeder(cmd.Context(), func(ctx context.Context, s *seed.Seeder) error {
				if err := s.Reset(ctx); err != nil {
					return err
				}
				logger.Info("Tables truncated")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func withSeeder(ctx context.Context, fn func(ctx context.Context, s *seed.Seeder) error) error {
	db, closeDB, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	seeder, err := newSeeder(db)
	if err != nil {
		return err
	}
	return fn(ctx, seeder)
}
