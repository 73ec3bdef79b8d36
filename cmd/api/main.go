package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cafestamp/cafestamp-backend/api/routes"
	"github.com/cafestamp/cafestamp-backend/internal/config"
	"github.com/cafestamp/cafestamp-backend/internal/handlers"
	"github.com/cafestamp/cafestamp-backend/internal/repositories"
	mongorepo "github.com/cafestamp/cafestamp-backend/internal/repositories/mongodb"
	"github.com/cafestamp/cafestamp-backend/internal/services"
	"github.com/cafestamp/cafestamp-backend/pkg/mongodb"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// A missing .env is fine; configuration falls back to real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	connectCtx, connectCancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoClient, err := mongodb.NewClient(connectCtx, cfg.MongoDB.URI)
	connectCancel()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Optional redis, only used by the scan rate limiter
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	// Repositories
	var accountRepo repositories.AccountRepository = mongorepo.NewAccountRepository(db)
	var establishmentRepo repositories.EstablishmentRepository = mongorepo.NewEstablishmentRepository(db)
	var offerRepo repositories.OfferRepository = mongorepo.NewOfferRepository(db)
	var progressRepo repositories.ProgressRepository = mongorepo.NewProgressRepository(db)
	var ledgerRepo repositories.LedgerRepository = mongorepo.NewLedgerRepository(db)
	var txnRunner repositories.TxnRunner = mongorepo.NewTxnRunner(mongoClient.Mongo())

	// Services
	authService := services.NewAuthService(accountRepo, cfg)
	accountService := services.NewAccountService(accountRepo)
	establishmentService := services.NewEstablishmentService(accountRepo, establishmentRepo)
	offerService := services.NewOfferService(accountRepo, establishmentRepo, offerRepo)
	ledgerService := services.NewLedgerService(
		accountRepo, offerRepo, progressRepo, ledgerRepo, txnRunner,
		cfg.Scan.MaxTxnAttempts,
		time.Duration(cfg.Scan.TxnBackoffMillis)*time.Millisecond,
	)

	// Handlers
	handlerDeps := routes.HandlerDependencies{
		AuthHandler:          handlers.NewAuthHandler(authService),
		AccountHandler:       handlers.NewAccountHandler(accountService),
		EstablishmentHandler: handlers.NewEstablishmentHandler(establishmentService),
		OfferHandler:         handlers.NewOfferHandler(offerService),
		LedgerHandler:        handlers.NewLedgerHandler(ledgerService),
	}

	router := routes.SetupRouter(cfg, handlerDeps, redisClient)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
