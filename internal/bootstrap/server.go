package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/skywings/api"
	"github.com/Domenick1991/skywings/config"
	grpctransport "github.com/Domenick1991/skywings/internal/transport/grpc"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const shutdownTimeout = 5 * time.Second

// Run serves the HTTP API and the gRPC service until ctx is canceled or
// one of the servers fails.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger, svc *Services) error {
	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(api.RouterConfig{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		DisableDocs:    cfg.HTTP.DisableDocs,
	}, log, svc.Flights, svc.Bookings, svc.Converter)

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	grpcApp := grpctransport.New(log, cfg.GRPC.Address, func(s *grpc.Server) {
		grpctransport.RegisterFlightsServer(s, grpctransport.NewServer(svc.Flights, svc.Converter))
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP server started", zap.String("addr", cfg.HTTP.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http %s: %w", cfg.HTTP.Address, err)
		}
		return nil
	})

	g.Go(grpcApp.Run)

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		grpcApp.Stop()
		log.Info("stopping HTTP server", zap.String("addr", cfg.HTTP.Address))
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
