package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/simaogato/advisordesk-backend/internal/adapter/events"
	"github.com/simaogato/advisordesk-backend/internal/adapter/events/kafka"
	grpcadapter "github.com/simaogato/advisordesk-backend/internal/adapter/grpc"
	"github.com/simaogato/advisordesk-backend/internal/adapter/repository"
	"github.com/simaogato/advisordesk-backend/internal/adapter/repository/document"
	"github.com/simaogato/advisordesk-backend/internal/config"
	"github.com/simaogato/advisordesk-backend/internal/domain"
	"github.com/simaogato/advisordesk-backend/internal/logger"
	"github.com/simaogato/advisordesk-backend/internal/usecase/custody"
	"github.com/simaogato/advisordesk-backend/internal/usecase/dashboard"
	"github.com/simaogato/advisordesk-backend/internal/usecase/ledger"
	"github.com/simaogato/advisordesk-backend/internal/usecase/payroll"
	"github.com/simaogato/advisordesk-backend/internal/usecase/seeder"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(cfg config.Config, log zerolog.Logger) error {
	ctx := context.Background()

	// 1. Setup Storage
	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	storage, err := repository.Open(openCtx, repository.Options{
		Driver:      cfg.Storage.Driver,
		PostgresDSN: cfg.Storage.PostgresDSN(),
		SQLitePath:  cfg.Storage.SQLite.Path,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer storage.Close()

	// 2. Initialize Repositories
	store := storage.Store
	entryRepo := document.NewLedgerEntryRepository(store, log)
	prospectRepo := document.NewProspectRepository(store, log)
	offerRepo := document.NewOfferRepository(store, log)
	crossDealRepo := document.NewCrossDealRepository(store, log)
	clientRepo := document.NewClientRepository(store, log)
	monthRepo := document.NewCommissionMonthRepository(store, log)
	assetClassRepo := document.NewAssetClassRepository(store, log)

	// 3. Event publishing
	var publisher domain.EventPublisher = events.NewLogPublisher(log)
	if len(cfg.Kafka.Brokers) > 0 {
		kp := kafka.NewPublisher(cfg.Kafka.Brokers, log)
		defer kp.Close()
		publisher = kp
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("publishing events to kafka")
	}

	// 4. Initialize Services (Use Cases)
	custodyUpdater := custody.NewUpdater(clientRepo, store, publisher, log)
	ledgerService := ledger.NewLedgerService(entryRepo, custodyUpdater, publisher, log)
	dashboardService := dashboard.NewDashboardService(entryRepo, prospectRepo, offerRepo, crossDealRepo)
	payrollService := payroll.NewPayrollService(monthRepo, assetClassRepo, crossDealRepo, offerRepo)

	// Seed the asset class catalog
	created, err := seeder.NewCatalogSeeder(assetClassRepo).Seed(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed asset classes: %w", err)
	}
	log.Info().Int("created", created).Msg("asset class catalog seeded")

	// 5. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(log),
			grpcadapter.AuthInterceptor(cfg.Server.APIToken),
		),
	)

	grpcAdapter := grpcadapter.NewServer(dashboardService, payrollService, ledgerService, custodyUpdater)
	grpcadapter.RegisterAdvisorDeskServer(grpcServer, grpcAdapter)

	reflection.Register(grpcServer)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("gRPC server listening")
		serveErr <- grpcServer.Serve(lis)
	}()

	// Graceful shutdown
	return waitForShutdown(grpcServer, serveErr, log)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(grpcServer *grpclib.Server, serveErr <-chan error, log zerolog.Logger) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-serveErr:
		return fmt.Errorf("failed to serve gRPC server: %w", err)
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("shutting down gracefully")
	}

	grpcServer.GracefulStop()
	log.Info().Msg("gRPC server stopped")
	return nil
}
