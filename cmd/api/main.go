package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"luxurystay/internal/config"
	"luxurystay/internal/database"
	"luxurystay/internal/metrics"
	"luxurystay/internal/modules/chat"
	jwtsvc "luxurystay/internal/pkg/jwt"
	"luxurystay/internal/realtime"
	"luxurystay/internal/repository"
	"luxurystay/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}
	metrics.Register()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	registry := realtime.NewRegistry()
	dispatcher := realtime.NewDispatcher(registry)

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis url: %v", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis ping failed: %v", err)
		}

		fanout := realtime.NewRedisFanout(rdb, dispatcher)
		dispatcher.UseFanout(fanout)
		if err := fanout.Start(ctx, rdb); err != nil {
			log.Fatalf("redis fanout: %v", err)
		}
		log.Printf("fanout enabled channel=%s", realtime.RedisChannel)
	}

	var messages chat.MessageRepository
	if cfg.MongoURI != "" {
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatalf("mongo connect failed: %v", err)
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()

		repo := repository.NewMongoMessageRepository(client.Database(cfg.MongoDatabase))
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatalf("mongo indexes: %v", err)
		}
		messages = repo
		log.Printf("chat messages stored in mongodb database=%s", cfg.MongoDatabase)
	}

	srv := server.New(server.Deps{
		Config:   cfg,
		DB:       db,
		JWT:      jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL),
		Registry: registry,
		Notifier: dispatcher,
		Messages: messages,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	// hijacked websocket connections are not tracked by Shutdown
	httpServer.RegisterOnShutdown(srv.Gateway.Close)

	go func() {
		log.Printf("server listening addr=%s env=%s", cfg.Addr(), cfg.AppEnv)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	stop()
	log.Println("server stopped")
}
