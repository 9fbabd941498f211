package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/iliyamo/items-api/internal/auth"
	"github.com/iliyamo/items-api/internal/config"
	"github.com/iliyamo/items-api/internal/database"
	"github.com/iliyamo/items-api/internal/handler"
	"github.com/iliyamo/items-api/internal/logging"
	"github.com/iliyamo/items-api/internal/queue"
	"github.com/iliyamo/items-api/internal/repository"
	"github.com/iliyamo/items-api/internal/router"
	queue_publisher "github.com/iliyamo/items-api/internal/service"
	"github.com/iliyamo/items-api/internal/task"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()
	logger := logging.New(cfg.Env)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTAlgorithm)
	if err != nil {
		log.Fatalf("token service: %v", err)
	}

	users := repository.NewUserRepo(db)
	items := repository.NewItemRepo(db)
	resolver := auth.NewResolver(tokens, users)

	runner := task.NewRunner(logger)
	tasks := task.NewTasks(logger)
	audit := queue_publisher.NewPublisher(cfg.RabbitURL, logger)

	authH := handler.NewAuthHandler(cfg, users, tokens, runner, tasks, audit)
	itemH := handler.NewItemHandler(items, runner, tasks)

	if cfg.RabbitURL != "" {
		go func() {
			if err := queue.StartAuditConsumer(context.Background(), cfg.RabbitURL, logger); err != nil {
				logger.Warn("audit consumer stopped", "error", err.Error())
			}
		}()
	}

	rdb := config.NewRedisClient() // nil is fine; limiter falls back to memory
	e := router.New(cfg, logger, rdb, authH, itemH, resolver)

	addr := ":" + cfg.Port
	logger.Info("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
