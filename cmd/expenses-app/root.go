package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"expenses-app-go/internal/app"
	"expenses-app-go/pkg/logger"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newRootCmd() *cobra.Command {
	log := logger.NewFromEnv()

	var seedOnStart, migrateOnStart bool

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), log, migrateOnStart, seedOnStart)
		},
	}
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before serving")
	serveCmd.Flags().BoolVar(&seedOnStart, "seed", false, "insert the sample categories and expenses before serving")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(log)
			if err != nil {
				return err
			}
			defer closeApp(application, log)
			return application.Migrate()
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample categories and expenses",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(log)
			if err != nil {
				return err
			}
			defer closeApp(application, log)
			_, err = application.Seed(cmd.Context())
			return err
		},
	}

	rootCmd := &cobra.Command{
		Use:           "expenses-app",
		Short:         "Personal expense tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)

	return rootCmd
}

func runServe(parent context.Context, log logger.Logger, migrate, seed bool) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("app: starting")
	application, err := app.New(log)
	if err != nil {
		log.Critical("app: init failed", "err", err)
		return err
	}
	defer closeApp(application, log)

	if migrate {
		if err := application.Migrate(); err != nil {
			return err
		}
	}
	if seed {
		if _, err := application.Seed(ctx); err != nil {
			return err
		}
	}

	srv := application.HTTPServer()
	log.Info("http: listening", "addr", srv.Addr)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("app: shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http: graceful shutdown failed", "err", err)
		if runErr == nil {
			runErr = err
		}
	}

	if runErr == nil {
		log.Info("app: stopped")
	}
	return runErr
}

func closeApp(application *app.App, log logger.Logger) {
	if err := application.Close(); err != nil {
		log.Error("app: close failed", "err", err)
	}
}
