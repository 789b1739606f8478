package main

import (
	"log/slog"
	"os"
	"time"

	httpapi "github.com/immxrtalbeast/karaoke_queue/internal/api/http"
	"github.com/immxrtalbeast/karaoke_queue/internal/config"
	"github.com/immxrtalbeast/karaoke_queue/internal/repository"
	"github.com/immxrtalbeast/karaoke_queue/internal/repository/model"
	"github.com/immxrtalbeast/karaoke_queue/internal/service"
	"github.com/immxrtalbeast/karaoke_queue/lib/logger/slogpretty"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	var (
		customerRepo   repository.CustomerRepository
		nowPlayingRepo repository.NowPlayingRepository
	)

	if cfg.Database.DSN != "" {
		db, err := connectDatabase(cfg.Database)
		if err != nil {
			log.Error("failed to connect database", slog.Any("error", err))
			os.Exit(1)
		}
		customerRepo = repository.NewPostgresCustomerRepository(db)
		nowPlayingRepo = repository.NewPostgresNowPlayingRepository(db)
	} else {
		log.Warn("database dsn is empty, using in-memory store")
		customerRepo = repository.NewInMemoryCustomerRepository()
		nowPlayingRepo = repository.NewInMemoryNowPlayingRepository()
	}

	queueService := service.NewQueueService(customerRepo, log)
	playerService := service.NewPlayerService(customerRepo, nowPlayingRepo, queueService, log)

	queueController := httpapi.NewQueueController(queueService, playerService)
	playerController := httpapi.NewPlayerController(playerService)

	router := httpapi.SetupRouter(queueController, playerController, cfg.CORS.AllowedOrigins)

	log.Info("starting application", slog.String("addr", cfg.HTTP.Address))
	if err := router.Run(cfg.HTTP.Address); err != nil {
		log.Error("http server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}

func connectDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	db.AutoMigrate(&model.Customer{}, &model.Song{}, &model.NowPlaying{})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
