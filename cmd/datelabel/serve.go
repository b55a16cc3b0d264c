package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cpucorecore/datelabel/internal/api"
	"github.com/cpucorecore/datelabel/internal/config"
	"github.com/cpucorecore/datelabel/internal/filter"
	"github.com/cpucorecore/datelabel/internal/shutdown"
	"github.com/cpucorecore/datelabel/log"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve labels over HTTP with the formatDate template filter installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err = log.InitLoggerWithConfig(cfg); err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "Path to config file")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	labels, err := cfg.DateLabel()
	if err != nil {
		return err
	}

	reg := filter.NewRegistry()
	if err = filter.Install(reg, labels); err != nil {
		return err
	}

	drain := shutdown.NewManager()
	server, err := api.NewServer(labels, reg, drain, cfg.Format.MaxBatch)
	if err != nil {
		return err
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	server.Routes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: router,
	}
	pprofSrv := newPprofServer(cfg.Pprof.Port)

	log.Log.Info("starting datelabel",
		zap.Int("port", cfg.HTTP.Port),
		zap.String("timezone", labels.Location().String()),
		zap.Strings("filters", reg.Names()),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if pprofSrv != nil {
		g.Go(func() error {
			log.Log.Sugar().Infof("Starting pprof server on %s", pprofSrv.Addr)
			if err := pprofSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("pprof server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		drain.StartDrain()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		if pprofSrv != nil {
			_ = pprofSrv.Shutdown(shutdownCtx)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		log.Log.Info("datelabel stopped", zap.Duration("drain", drain.GetShutdownDuration()))
		return nil
	})

	return g.Wait()
}
