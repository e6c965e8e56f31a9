package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/steriltrack/equipment-system/internal/api"
	"github.com/steriltrack/equipment-system/internal/api/handler"
	"github.com/steriltrack/equipment-system/internal/core/ports"
	"github.com/steriltrack/equipment-system/internal/core/service"
	"github.com/steriltrack/equipment-system/internal/infrastructure/config"
	"github.com/steriltrack/equipment-system/internal/infrastructure/db/memory"
	"github.com/steriltrack/equipment-system/internal/infrastructure/db/mongo"
	"github.com/steriltrack/equipment-system/internal/infrastructure/db/redis"
	"github.com/steriltrack/equipment-system/internal/infrastructure/queue"
	"github.com/steriltrack/equipment-system/pkg/logger"
)

// @title        Steriltrack Equipment API
// @version      1.0
// @description  Tracks equipment through the receiving, cleaning, sterilization and return workflow.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Repositories ---
	var (
		equipmentRepo ports.EquipmentRepository
		stepRepo      ports.StepRepository
		clientRepo    ports.ClientRepository
		userRepo      ports.UserRepository
		auditRepo     ports.AuditRepository
		allocator     ports.IDAllocator
	)

	switch cfg.StoreBackend {
	case "mongo":
		client, db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		er := mongo.NewEquipmentRepository(db)
		if err := er.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo index creation failed")
		}
		equipmentRepo = er
		stepRepo = mongo.NewStepRepository(db)
		clientRepo = mongo.NewClientRepository(db)
		userRepo = mongo.NewUserRepository(db)
		auditRepo = mongo.NewAuditRepository(db)
		allocator = mongo.NewSequence(db)
	default:
		store := memory.NewStore()
		equipmentRepo = store.Equipments()
		stepRepo = store.Steps()
		clientRepo = store.Clients()
		userRepo = store.Users()
		auditRepo = store.Audit()
		allocator = memory.NewSequence()
	}

	// --- Services ---
	locks := service.NewKeyedMutex()
	equipmentService := service.NewEquipmentService(equipmentRepo, stepRepo, auditRepo, allocator, locks, log)
	checklistService := service.NewChecklistService(stepRepo, equipmentService, locks, log)
	clientService := service.NewClientService(clientRepo, allocator, log)
	userService := service.NewUserService(userRepo, log)
	authService := service.NewAuthService(userRepo, allocator, cfg.JWTSecret, 24*time.Hour)

	if cfg.Env == "development" {
		seedClients(ctx, clientService, log)
	}

	// --- Async step-event pipeline (requires Redis for deduplication) ---
	var (
		rdb        *goredis.Client
		dispatcher *queue.Dispatcher
	)
	if cfg.Redis.Addr != "" {
		var err error
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() {
			_ = rdb.Close()
		}()

		eventService := service.NewEventService(checklistService, redis.NewDedupChecker(rdb), log)
		dispatcher = queue.NewDispatcher(cfg.EventWorkers, eventService, log)
		dispatcher.Start(ctx)
	}

	// --- HTTP server ---
	svcs := api.Services{
		Auth:      authService,
		Clients:   clientService,
		Users:     userService,
		Equipment: equipmentService,
		Checklist: checklistService,
	}

	var enqueuer handler.EventDispatcher
	if dispatcher != nil {
		enqueuer = dispatcher
	}
	e := api.NewRouter(svcs, enqueuer, rdb, cfg.JWTSecret, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("store", cfg.StoreBackend).Msg("equipment service started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// seedClients registers a few demo clients for development environments.
func seedClients(ctx context.Context, clients ports.ClientService, log zerolog.Logger) {
	demo := []ports.CreateClientInput{
		{Name: "Santa Clara Hospital", Email: "contact@santaclara.example", Phone: "(11) 3555-9000"},
		{Name: "St. Lucas Hospital", Email: "care@stlucas.example", Phone: "(11) 3777-8520"},
		{Name: "Wellness Medical Clinic", Email: "clinic@wellness.example", Phone: "(11) 2222-3333"},
	}
	for _, c := range demo {
		if _, err := clients.Create(ctx, c); err != nil {
			log.Warn().Err(err).Str("name", c.Name).Msg("failed to seed client")
		}
	}
}
