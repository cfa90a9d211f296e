package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prodcat/prodcat-go/internal/config"
	"github.com/prodcat/prodcat-go/internal/logger"
)

// app holds what every subcommand needs once the environment is loaded.
type app struct {
	cfg config.Config
	log *zap.Logger
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "prodcat:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "prodcat",
		Short:         "Product catalog API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(a), newMigrateCmd(a))
	return root
}

func (a *app) init() error {
	dotenvErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(logger.Options{
		Level:       cfg.LogLevel,
		Development: !cfg.IsProduction(),
		File:        cfg.LogFile,
	})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	if dotenvErr != nil {
		log.Debug("no .env file found, using environment variables")
	}

	a.cfg = cfg
	a.log = log
	return nil
}
