package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freelancebill/invoicing-system/internal/api"
	"github.com/freelancebill/invoicing-system/internal/core/domain"
	"github.com/freelancebill/invoicing-system/internal/infrastructure/clickup"
	"github.com/freelancebill/invoicing-system/internal/infrastructure/config"
	mongorepo "github.com/freelancebill/invoicing-system/internal/infrastructure/db/mongo"
	redisrepo "github.com/freelancebill/invoicing-system/internal/infrastructure/db/redis"
	"github.com/freelancebill/invoicing-system/internal/infrastructure/email"
	"github.com/freelancebill/invoicing-system/internal/infrastructure/queue"
	"github.com/freelancebill/invoicing-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisrepo.Connect(ctx, redisrepo.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	if err := rebuildBilledIndex(ctx, db, rdb); err != nil {
		log.Fatal().Err(err).Msg("billed index rebuild failed")
	}

	mailer := email.NewSMTPMailer(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, logger.Component("mailer"))

	dispatcher := queue.NewDispatcher(cfg.NotificationWorkers, mailer, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	importer := clickup.NewClient(clickup.Config{
		ClientID:     cfg.ClickUp.ClientID,
		ClientSecret: cfg.ClickUp.ClientSecret,
		BaseURL:      cfg.ClickUp.BaseURL,
	}, logger.Component("clickup"))

	e := api.NewRouter(db, rdb, dispatcher, mailer, importer, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting api server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	type indexed interface {
		EnsureIndexes(ctx context.Context) error
	}
	repos := []indexed{
		mongorepo.NewTaskRepository(db),
		mongorepo.NewTimeLogRepository(db),
		mongorepo.NewInvoiceRepository(db),
		mongorepo.NewProfileRepository(db),
		mongorepo.NewAuthRepository(db),
	}
	for _, repo := range repos {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}

// rebuildBilledIndex replays every invoice's task set into the Redis billed
// hash so a wiped cache does not let billed tasks slip into new invoices.
func rebuildBilledIndex(ctx context.Context, db *mongo.Database, rdb *redis.Client) error {
	invoices, err := mongorepo.NewInvoiceRepository(db).ListAll(ctx)
	if err != nil {
		return err
	}

	byUser := make(map[string][]*domain.Invoice)
	for _, inv := range invoices {
		byUser[inv.UserID] = append(byUser[inv.UserID], inv)
	}

	billed := redisrepo.NewBilledIndex(rdb)
	for userID, userInvoices := range byUser {
		if err := billed.Rebuild(ctx, userID, userInvoices); err != nil {
			return err
		}
	}
	return nil
}
