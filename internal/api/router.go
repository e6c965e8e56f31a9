package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/steriltrack/equipment-system/docs"
	"github.com/steriltrack/equipment-system/internal/api/handler"
	"github.com/steriltrack/equipment-system/internal/api/middleware"
	"github.com/steriltrack/equipment-system/internal/core/domain"
	"github.com/steriltrack/equipment-system/internal/core/ports"
)

// Services bundles the use-case implementations the router exposes.
type Services struct {
	Auth      ports.AuthService
	Clients   ports.ClientService
	Users     ports.UserService
	Equipment ports.EquipmentService
	Checklist ports.ChecklistService
}

// NewRouter builds and returns the Echo instance with all routes registered.
// dispatcher may be nil when the async event pipeline is disabled; rdb may be
// nil when Redis is not configured.
func NewRouter(svcs Services, dispatcher handler.EventDispatcher, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("steriltrack"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svcs.Auth)
	clientHandler := handler.NewClientHandler(svcs.Clients)
	userHandler := handler.NewUserHandler(svcs.Users)
	equipmentHandler := handler.NewEquipmentHandler(svcs.Equipment, svcs.Checklist)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(rdb)
	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(jwtSecret), middleware.RBAC(domain.RoleAdmin, domain.RoleEmployee))

	v1.GET("/clients", clientHandler.List)
	v1.POST("/clients", clientHandler.Create)
	v1.DELETE("/clients/:id", clientHandler.Delete)

	v1.GET("/users", userHandler.List)
	v1.DELETE("/users/:id", userHandler.Delete)
	v1.GET("/employees", userHandler.ListEmployees)

	v1.GET("/equipments", equipmentHandler.List)
	v1.POST("/equipments", equipmentHandler.Create)
	v1.GET("/equipments/finished", equipmentHandler.ListFinished)
	v1.GET("/equipments/next-sequence", equipmentHandler.NextSequence)
	v1.POST("/equipments/:id/status", equipmentHandler.UpdateStatus)
	v1.POST("/equipments/return", equipmentHandler.Return)
	v1.GET("/equipments/:id/history", equipmentHandler.History)
	v1.GET("/equipments/:id/cleaning-steps", equipmentHandler.ListSteps)
	v1.PUT("/cleaning-steps/:id", equipmentHandler.UpdateStep)

	if dispatcher != nil {
		eventHandler := handler.NewEventHandler(dispatcher)
		v1.POST("/events", eventHandler.Receive)
		v1.POST("/events/batch", eventHandler.ReceiveBatch)
	}

	return e
}
