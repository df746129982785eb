package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/gamewaifu/waifu-api/internal/config"
	"github.com/gamewaifu/waifu-api/internal/database"
	"github.com/gamewaifu/waifu-api/internal/errors"
	"github.com/gamewaifu/waifu-api/internal/orchestrators/regeneration"
	"github.com/gamewaifu/waifu-api/internal/orchestrators/resentment"
	platformotel "github.com/gamewaifu/waifu-api/internal/platform/otel"
	"github.com/gamewaifu/waifu-api/internal/scheduler"
)

const (
	jobHealthRegeneration = "health_regeneration"
	jobMagicRegeneration  = "magic_regeneration"
	jobResentmentSweep    = "resentment_sweep"
)

var grpcPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gRPC health server and the scheduled jobs",
	Long: `Start the server process. It exposes the gRPC health service, where every
scheduled job reports under its own service name, and runs regeneration and
the resentment sweep on their cron schedules.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC port (overrides server.grpc_port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if grpcPort > 0 {
		cfg.Server.GRPCPort = grpcPort
	}

	shutdownTracing, err := platformotel.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Warn("failed to flush traces", "error", err)
		}
	}()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := database.Ping(ctx, a.db); err != nil {
		return err
	}
	if err := a.redis.Ping(ctx).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "redis is unreachable")
	}

	healthServer := health.NewServer()

	sched, err := scheduler.New(&scheduler.Config{
		Jobs:    a.jobs(),
		Timeout: cfg.Jobs.Timeout,
		Health:  healthServer,
	})
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to listen")
	}

	logger := interceptorLogger(slog.Default())
	recoveryOpt := grpc_recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
		slog.ErrorContext(ctx, "panic in grpc handler", "panic", p)
		return errors.Internal("internal error")
	})

	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logger),
			grpc_recovery.UnaryServerInterceptor(recoveryOpt),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logger),
			grpc_recovery.StreamServerInterceptor(recoveryOpt),
		),
	)

	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	reflection.Register(srv)

	sched.Start()

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.Server.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- errors.Wrap(err, "failed to serve")
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Received shutdown signal, gracefully stopping")
	case err := <-errChan:
		healthServer.Shutdown()
		_ = sched.Stop(context.Background())
		return err
	}

	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := sched.Stop(shutdownCtx); err != nil {
		slog.Warn("scheduled jobs still running at shutdown", "error", err)
	}

	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
		srv.Stop()
	case <-stopped:
		slog.Info("Server stopped gracefully")
	}

	return nil
}

// jobs binds the periodic maintenance work to its schedules
func (a *app) jobs() []scheduler.Job {
	return []scheduler.Job{
		{
			Name:     jobHealthRegeneration,
			Schedule: a.cfg.Jobs.HealthSchedule,
			Run: func(ctx context.Context) error {
				_, err := a.regeneration.RegenerateHealth(ctx, &regeneration.RegenerateHealthInput{})
				return err
			},
		},
		{
			Name:     jobMagicRegeneration,
			Schedule: a.cfg.Jobs.MagicSchedule,
			Run: func(ctx context.Context) error {
				_, err := a.regeneration.RegenerateMagic(ctx, &regeneration.RegenerateMagicInput{})
				return err
			},
		},
		{
			Name:     jobResentmentSweep,
			Schedule: a.cfg.Jobs.ResentmentSchedule,
			Run: func(ctx context.Context) error {
				_, err := a.resentment.Sweep(ctx, &resentment.SweepInput{})
				return err
			},
		},
	}
}

// interceptorLogger adapts slog to the grpc middleware logger. The middleware
// levels share slog's numeric values.
func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}
