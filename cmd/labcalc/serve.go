package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/labbench/backend/internal/interfaces/http/handler"
	"github.com/labbench/backend/internal/interfaces/http/middleware"
	"github.com/labbench/backend/internal/interfaces/http/router"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type serveOpts struct {
	port        string
	corsOrigins []string
}

func newServeCommand(global *globalOpts) *cobra.Command {
	opts := &serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dilution and notebook HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, global, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.port, "port", "p", "", "Port to listen on (overrides app.port)")
	cmd.Flags().StringSliceVar(&opts.corsOrigins, "cors-origin", nil, "Allowed CORS origin; repeat for several, \"*\" for any")
	return cmd
}

func runServe(ctx context.Context, global *globalOpts, opts *serveOpts) error {
	b, err := openBench(ctx, global, false)
	if err != nil {
		return err
	}
	defer b.Close(context.Background())

	if b.cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	port := b.cfg.App.Port
	if opts.port != "" {
		port = opts.port
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = opts.corsOrigins

	health := handler.NewHealthHandler(b.cfg.App.Name, version, map[string]handler.Pinger{
		"database":   handler.PingFunc(b.db.PingContext),
		"substances": b.catalog,
	})
	engine := router.NewEngine(
		router.EngineConfig{Logger: b.log, BodyLimit: b.cfg.HTTP.MaxBodySize, CORS: cors},
		health,
		router.BenchRoutes(handler.NewDilutionHandler(b.service), handler.NewQuantityHandler(b.service))...,
	)

	srv := &http.Server{
		Addr:           ":" + port,
		Handler:        engine,
		ReadTimeout:    b.cfg.HTTP.ReadTimeout,
		WriteTimeout:   b.cfg.HTTP.WriteTimeout,
		IdleTimeout:    b.cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: b.cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		b.log.Info("Server starting", zap.String("addr", srv.Addr), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	b.log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), b.cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		b.log.Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	b.log.Info("Server exited gracefully")
	return nil
}
