package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/prodcat/prodcat-go/internal/handler"
	"github.com/prodcat/prodcat-go/internal/repository"
	"github.com/prodcat/prodcat-go/internal/service"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewDB(ctx, a.cfg.DatabaseDSN)
	if err != nil {
		a.log.Error("database connection failed", zap.Error(err))
		return err
	}
	defer db.Close()

	if a.cfg.MigrateOnStart {
		if err := repository.MigrateUp(db); err != nil {
			a.log.Error("migration failed", zap.Error(err))
			return err
		}
	}

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           a.router(db),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("server starting", zap.String("port", a.cfg.Port), zap.String("env", a.cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		a.log.Error("server stopped with error", zap.Error(err))
		return err
	}
	a.log.Info("server stopped")
	return nil
}

func (a *app) router(db *sql.DB) http.Handler {
	authService := service.NewAuthService(repository.NewUserRepository(db), a.cfg.JWTSecret, a.cfg.JWTExpiry)
	productService := service.NewProductService(repository.NewProductRepository(db))

	return handler.NewRouter(handler.RouterConfig{
		Auth:       authService,
		Products:   productService,
		JWTSecret:  a.cfg.JWTSecret,
		CORSOrigin: a.cfg.CORSOrigin,
		Logger:     a.log,
	})
}
