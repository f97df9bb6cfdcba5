package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/field-crm/internal/api/http"
	"github.com/spec-kit/field-crm/internal/api/http/handlers"
	"github.com/spec-kit/field-crm/internal/auth"
	"github.com/spec-kit/field-crm/internal/config"
	"github.com/spec-kit/field-crm/internal/domain"
	"github.com/spec-kit/field-crm/internal/events"
	"github.com/spec-kit/field-crm/internal/observability"
	"github.com/spec-kit/field-crm/internal/persistence"
	"github.com/spec-kit/field-crm/internal/repository"
	"github.com/spec-kit/field-crm/internal/sequence"
	"github.com/spec-kit/field-crm/internal/service"
	"github.com/spec-kit/field-crm/internal/storage"
	"github.com/spec-kit/field-crm/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	files, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		logger.Fatal("failed to init file storage", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	leadRepo := repository.NewLeadRepository(pool)
	followupRepo := repository.NewFollowupRepository(pool)
	requestRepo := repository.NewServiceRequestRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	proposalRepo := repository.NewProposalRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)

	allocator := sequence.NewRedisAllocator(redis.Client)
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokens, userRepo)

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   userRepo,
		Tokens:     tokens,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	staffService := service.NewStaffService(service.StaffDependencies{
		UserRepo:   userRepo,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	leadService := service.NewLeadService(service.LeadDependencies{
		LeadRepo:   leadRepo,
		Sequences:  allocator,
		Dispatcher: dispatcher,
	})
	followupService := service.NewFollowupService(service.FollowupDependencies{
		FollowupRepo: followupRepo,
		LeadRepo:     leadRepo,
		Dispatcher:   dispatcher,
	})
	requestService := service.NewServiceRequestService(service.ServiceRequestDependencies{
		RequestRepo: requestRepo,
		Sequences:   allocator,
		Files:       files,
		Dispatcher:  dispatcher,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Dispatcher: dispatcher,
	})
	proposalService := service.NewProposalService(service.ProposalDependencies{
		ProposalRepo: proposalRepo,
		CustomerRepo: customerRepo,
	})
	customerService := service.NewCustomerService(service.CustomerDependencies{
		CustomerRepo: customerRepo,
		Files:        files,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Staff:          handlers.NewStaffHandler(staffService),
		SolarLeads:     handlers.NewLeadsHandler(leadService, domain.KindSolarLead),
		SprinklerLeads: handlers.NewLeadsHandler(leadService, domain.KindSprinklerLead),
		Followups:      handlers.NewFollowupsHandler(followupService),
		Services:       handlers.NewServicesHandler(requestService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Proposals:      handlers.NewProposalsHandler(proposalService),
		Customers:      handlers.NewCustomersHandler(customerService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
