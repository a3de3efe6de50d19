package main

import (
	"flag"

	"go.uber.org/zap"

	"devclub.community/configs"
	"devclub.community/configs/configslog"
	"devclub.community/database"
)

func main() {
	migrateFlag := flag.Bool("migrate", false, "run database migrations")
	seedFlag := flag.Bool("seed", false, "run database seeders")
	flag.Parse()

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

	if err := database.Initialize(db, *migrateFlag, *seedFlag); err != nil {
		configslog.Log.Fatal("database initialization failed", zap.Error(err))
	}
	configslog.SLog.Info("database initialization finished")
}
