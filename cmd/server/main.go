// @title        Records API
// @version      1.0
// @description  Validated CRUD pipeline for contacts, posts, comments, and users.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhub/records-api/internal/api"
	"github.com/taskhub/records-api/internal/api/handler"
	"github.com/taskhub/records-api/internal/core/domain"
	"github.com/taskhub/records-api/internal/core/ports"
	"github.com/taskhub/records-api/internal/core/resource"
	"github.com/taskhub/records-api/internal/core/service"
	redisinfra "github.com/taskhub/records-api/internal/infrastructure/cache/redis"
	"github.com/taskhub/records-api/internal/infrastructure/config"
	"github.com/taskhub/records-api/internal/infrastructure/queue"
	"github.com/taskhub/records-api/internal/infrastructure/store/memory"
	"github.com/taskhub/records-api/internal/infrastructure/store/mongodb"
	"github.com/taskhub/records-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load(slog.Default())
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Persistence ---
	var (
		mongoClient *mongo.Client
		mongoDB     *mongo.Database

		contactStore  ports.Store[*domain.Contact]
		postStore     ports.Store[*domain.Post]
		commentStore  ports.Store[*domain.Comment]
		userStore     ports.Store[*domain.User]
		activityStore ports.ActivityStore
	)

	switch cfg.StoreDriver {
	case "mongodb":
		var err error
		mongoClient, mongoDB, err = mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongodb connection failed")
		}
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()

		contactStore = mongoStore(ctx, mongoDB, resource.Contacts(), log)
		postStore = mongoStore(ctx, mongoDB, resource.Posts(), log)
		commentStore = mongoStore(ctx, mongoDB, resource.Comments(postStore), log)
		userStore = mongoStore(ctx, mongoDB, resource.Users(), log)
		activityStore = mongodb.NewActivityStore(mongoDB)

	case "memory":
		contactStore = memory.New(resource.Contacts())
		postStore = memory.New(resource.Posts())
		commentStore = memory.New(resource.Comments(postStore))
		userStore = memory.New(resource.Users())
		activityStore = memory.NewActivityStore()

	default:
		log.Fatal().Str("driver", cfg.StoreDriver).Msg("unknown store driver")
	}

	// --- Record cache (optional) ---
	var cache ports.RecordCache
	var redisClient *goredis.Client
	if cfg.CacheEnabled {
		client, err := redisinfra.Connect(ctx, redisinfra.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = client.Close() }()
		redisClient = client
		cache = redisinfra.NewRecordCache(client, 0)
	}

	// --- Activity audit trail ---
	activitySvc := service.NewActivityService(activityStore, log)
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activitySvc, log)
	dispatcher.Start(ctx)

	// --- Resource pipelines ---
	contacts := pipeline(resource.Contacts(), contactStore, log, cache, dispatcher)
	posts := pipeline(resource.Posts(), postStore, log, cache, dispatcher)
	comments := pipeline(resource.Comments(postStore), commentStore, log, cache, dispatcher)
	users := pipeline(resource.Users(), userStore, log, cache, dispatcher)

	authSvc := service.NewAuthService(userStore, cfg.JWTSecret, 24*time.Hour)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Logger:    log,
		Env:       cfg.Env,
		JWTSecret: cfg.JWTSecret,

		Contacts: handler.NewContactHandler(contacts),
		Posts:    handler.NewPostHandler(posts),
		Comments: handler.NewCommentHandler(comments),
		Users:    handler.NewUserHandler(users),

		Auth:     handler.NewAuthHandler(users, authSvc),
		Activity: handler.NewActivityHandler(activitySvc),
		Health: handler.NewHealthHandler(cfg.Env, map[string]handler.Counter{
			"contacts": contactStore,
			"posts":    postStore,
			"comments": commentStore,
			"users":    userStore,
		}),
		Ready: handler.NewReadinessHandler(mongoDB, redisClient),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

// pipeline assembles one resource service with the shared cache and audit
// trail attached when configured.
func pipeline[T domain.Record[T]](def resource.Definition[T], store ports.Store[T], log zerolog.Logger, cache ports.RecordCache, recorder ports.ActivityRecorder) *resource.Service[T] {
	svc := resource.NewService(def, store, log).WithActivity(recorder)
	if cache != nil {
		svc.WithCache(cache)
	}
	return svc
}

// mongoStore builds the MongoDB store for one resource and ensures its
// indexes. Index creation failure is not fatal; uniqueness then degrades to
// the service-level check.
func mongoStore[T domain.Record[T]](ctx context.Context, db *mongo.Database, def resource.Definition[T], log zerolog.Logger) ports.Store[T] {
	st := mongodb.New(db, def)
	if err := st.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Str("resource", def.Name).Msg("index creation failed")
	}
	return st
}
