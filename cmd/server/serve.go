package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := stateFrom(cmd.Context())
			return runServer(cmd.Context(), st)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default :8080)")
	cmd.Flags().String("public-url", "", "Public base URL used in share links")
	cmd.Flags().String("storage", "", "Design storage driver (memory|sqlite|postgres)")
	cmd.Flags().String("dsn", "", "Database DSN for sqlite or postgres")
	cmd.Flags().String("catalog", "", "Product catalog YAML file")
	cmd.Flags().Bool("watch-catalog", false, "Reload the catalog file when it changes")
	cmd.Flags().String("mail-driver", "", "Mail driver (log|smtp)")

	return cmd
}

func runServer(ctx context.Context, st *appState) error {
	cfg, logger := st.cfg, st.logger

	a, err := buildApp(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			logger.Warn("failed to close storage", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           a.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("wardrobe planner listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("storage", cfg.Storage.Driver),
			zap.Int("code_length", cfg.Code.Length))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if a.catalog != nil && cfg.Catalog.Watch {
		g.Go(func() error {
			return a.catalog.Watch(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
