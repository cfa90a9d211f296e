package main

import (
	"context"
	"database/sql"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prodcat/prodcat-go/internal/repository"
)

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDB(cmd.Context(), "migrate up", repository.MigrateUp)
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDB(cmd.Context(), "migrate down", func(db *sql.DB) error {
				return repository.MigrateDown(db, steps)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	cmd.AddCommand(up, down)
	return cmd
}

// withDB opens the database, runs fn against it and closes it again.
func (a *app) withDB(ctx context.Context, op string, fn func(*sql.DB) error) error {
	db, err := repository.NewDB(ctx, a.cfg.DatabaseDSN)
	if err != nil {
		a.log.Error("database connection failed", zap.Error(err))
		return err
	}
	defer db.Close()

	if err := fn(db); err != nil {
		a.log.Error(op+" failed", zap.Error(err))
		return err
	}
	a.log.Info(op + " complete")
	return nil
}
