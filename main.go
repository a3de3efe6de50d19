package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"devclub.community/configs"
	"devclub.community/configs/configslog"
	"devclub.community/database"
	"devclub.community/routes"
	"devclub.community/services"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		configslog.Log.Fatal("config load failed", zap.Error(err))
	}
	configslog.Init(cfg.Env)
	defer configslog.Sync()

	db, err := configs.InitDB(cfg)
	if err != nil {
		configslog.Log.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Initialize(db, true, false); err != nil {
		configslog.Log.Fatal("database migration failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:   "devclub.community",
		BodyLimit: 10 * 1024 * 1024,
	})

	routes.SetupRoutes(app, routes.Deps{
		Config:    cfg,
		Auth:      services.NewAuthService(cfg),
		Events:    services.NewEventService(),
		RSVPs:     services.NewRSVPService(),
		Community: services.NewCommunityService(cfg),
		Mailer:    services.NewMailerService(cfg),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		configslog.SLog.Info("shutting down...")
		_ = app.Shutdown()
	}()

	configslog.SLog.Infof("listening on %s (env: %s)", cfg.ListenAddr, cfg.Env)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		configslog.Log.Fatal("server stopped", zap.Error(err))
	}
}
