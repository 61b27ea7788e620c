package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tagarena/config"
	"tagarena/internal/cache"
	"tagarena/internal/game"
	"tagarena/internal/repository"
	"tagarena/internal/service"
	"tagarena/internal/transport/rest"
	"tagarena/internal/transport/ws"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// @title Tag Arena API
// @version 1.0
// @description Server-authoritative multiplayer tag rooms
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database("tagarena")

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories and caches
	ledgerRepo := repository.NewLedgerRepo(db)
	leaderboard := cache.NewLeaderboardCache(rdb)
	presence := cache.NewPresenceCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWTSecret)
	economySvc := service.NewEconomyService(ledgerRepo, leaderboard)

	// Game registry: rooms are created on first join, evicted when empty
	registry := game.NewRegistry(wsHub, economySvc, presence)

	wsHandler := ws.NewHandler(wsHub, authSvc, registry)

	container := &rest.Container{
		AuthService: authSvc,
		Presence:    presence,
		Leaderboard: leaderboard,
		WSHandler:   wsHandler,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/guest")
		log.Println("  GET  /v1/rooms")
		log.Println("  GET  /v1/shop/items")
		log.Println("  GET  /v1/leaderboard")
		log.Println("  WS   /v1/ws")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
