package main

import (
	"log"

	"cinema-scheduler/cmd"
	"cinema-scheduler/internal/data/repository"
	"cinema-scheduler/internal/wire"
	"cinema-scheduler/pkg/cache"
	"cinema-scheduler/pkg/database"
	"cinema-scheduler/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Optional read cache; nil when redis is disabled or unreachable.
	movieCache := cache.New(config.Redis, logger)
	defer movieCache.Close()

	repos := repository.NewRepository(db, logger)

	app := wire.Wiring(repos, movieCache, config, logger)

	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
