package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/light-bringer/shopcat-service/internal/config"
	"github.com/light-bringer/shopcat-service/internal/logger"
	"github.com/light-bringer/shopcat-service/internal/services"
	httptransport "github.com/light-bringer/shopcat-service/internal/transport/http"
)

const serviceName = "shopcat.v1.Catalog"

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Load configuration from .env and the environment
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	l.Sugar().Infow("starting catalog service",
		zap.String("spannerDb", cfg.SpannerDB),
		zap.String("httpPort", cfg.HTTPServer.Port),
		zap.String("grpcPort", cfg.GRPCServer.Port),
		zap.String("pagingMode", cfg.Paging.Mode),
	)

	// 2. Initialize service dependencies (DI container)
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	serviceOpts, err := services.NewServiceOptions(ctx, cfg, l, reg)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. gRPC server carries health checks only
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCServer.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	go func() {
		l.Sugar().Infow("gRPC server listening", zap.String("port", cfg.GRPCServer.Port))
		if err := grpcServer.Serve(lis); err != nil {
			l.Sugar().Errorw("gRPC server error", zap.Error(err))
		}
	}()

	// 4. HTTP API and metrics
	router := httptransport.NewRouter(serviceOpts.HTTPHandler)
	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPServer.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.TimeoutRead,
		WriteTimeout: cfg.HTTPServer.TimeoutWrite,
		IdleTimeout:  cfg.HTTPServer.TimeoutIdle,
	}

	go func() {
		l.Sugar().Infow("HTTP server listening", zap.String("port", cfg.HTTPServer.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Sugar().Errorw("HTTP server error", zap.Error(err))
		}
	}()

	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)

	// 5. Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutting down gracefully")
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.TimeoutWrite)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		l.Sugar().Errorw("HTTP server shutdown error", zap.Error(err))
	}

	grpcServer.GracefulStop()
	return nil
}
