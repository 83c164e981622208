package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maitri-medico/internal/cache"
	"maitri-medico/internal/handler"
	"maitri-medico/internal/middleware"
	"maitri-medico/internal/model"
	"maitri-medico/internal/repository"
	"maitri-medico/internal/service"
	"maitri-medico/internal/storage"
	"maitri-medico/internal/ws"
	"maitri-medico/pkg/config"
	"maitri-medico/pkg/database"
	"maitri-medico/pkg/jwt"
	"maitri-medico/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// 1. Config + logging
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	zl, err := logger.Init(cfg.Logger)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()

	// 2. Database
	db, err := database.ConnectDB(cfg.Database)
	if err != nil {
		zap.L().Fatal("database", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&model.Privilege{}, &model.Role{}, &model.User{},
		&model.Product{}, &model.ChangeRequest{}, &model.CartItem{},
		&model.Order{}, &model.OrderItem{},
	); err != nil {
		zap.L().Fatal("auto migrate", zap.Error(err))
	}

	// 3. Repositories + seed
	productRepo := repository.NewProductRepo(db)
	requestRepo := repository.NewRequestRepo(db)
	cartRepo := repository.NewCartRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	dashRepo := repository.NewDashboardRepo(db)

	if err := service.Seed(context.Background(), privilegeRepo, roleRepo, userRepo, service.SeedConfig{
		Email:    cfg.Seed.SuperAdminEmail,
		Password: cfg.Seed.SuperAdminPassword,
		FullName: cfg.Seed.SuperAdminName,
	}); err != nil {
		zap.L().Warn("seed failed", zap.Error(err))
	}

	// 4. Cache, object store, websocket hub
	rdb, err := database.ConnectRedis(cfg.Redis)
	if err != nil {
		zap.L().Warn("redis unavailable, product cache disabled", zap.Error(err))
		rdb = nil
	}
	productCache := cache.NewProductCache(rdb, time.Duration(cfg.Redis.TTLSeconds)*time.Second)

	store, err := newObjectStore(cfg.Storage)
	if err != nil {
		zap.L().Fatal("object store", zap.Error(err))
	}

	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Services + handlers
	tokens := jwt.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.JWTTTLHours)*time.Hour)
	maxUpload := cfg.Storage.MaxUploadBytes()

	catalogService := service.NewCatalogService(db, productRepo, cartRepo, store, productCache, wsHub)
	requestService := service.NewRequestService(db, requestRepo, productRepo, cartRepo, store, productCache, wsHub)
	cartService := service.NewCartService(db, cartRepo, productRepo, orderRepo)
	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo, roleRepo)
	dashService := service.NewDashboardService(dashRepo)

	handlers := handler.Handlers{
		Product:   handler.NewProductHandler(catalogService, maxUpload),
		Request:   handler.NewRequestHandler(requestService, maxUpload),
		Cart:      handler.NewCartHandler(cartService),
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(userService),
		Dashboard: handler.NewDashboardHandler(dashService),
		Role:      handler.NewRoleHandler(roleRepo),
	}

	// 6. Fiber
	app := handler.NewApp(cfg.Server.AppName, int(maxUpload)+(1<<20))

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.FrontendURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	if cfg.Storage.Driver == "disk" {
		app.Static("/uploads", cfg.Storage.UploadDir)
	}
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "ws_clients": wsHub.ClientCount()})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handler.SetupRoutes(app, handlers, middleware.RequireAuth(tokens, userRepo))

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(wsHub.Serve))

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			zap.L().Panic("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zap.L().Error("Server forced to shutdown", zap.Error(err))
	}
	if rdb != nil {
		rdb.Close()
	}

	zap.L().Info("Server exited")
}

func newObjectStore(cfg config.StorageConfig) (storage.ObjectStore, error) {
	switch cfg.Driver {
	case "cloudinary":
		zap.L().Info("object store: cloudinary", zap.String("folder", cfg.CloudinaryFolder))
		return storage.NewCloudinaryStore(cfg.CloudinaryURL, cfg.CloudinaryFolder)
	case "memory":
		zap.L().Warn("object store: memory, uploads are lost on restart")
		return storage.NewMemoryStore(), nil
	default:
		zap.L().Info("object store: disk", zap.String("dir", cfg.UploadDir))
		return storage.NewDiskStore(cfg.UploadDir, cfg.PublicBaseURL)
	}
}
