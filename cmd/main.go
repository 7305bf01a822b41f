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

	"github.com/marcus-bailey/nom-nom-tracker/config"
	"github.com/marcus-bailey/nom-nom-tracker/routes"
	"github.com/marcus-bailey/nom-nom-tracker/services"
	"github.com/marcus-bailey/nom-nom-tracker/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()

	var store services.ReportStore
	if cfg.S3Bucket != "" {
		s3Store, err := utils.NewS3Store(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			log.Fatalf("s3: %v", err)
		}
		store = s3Store
	} else {
		log.Println("S3_BUCKET not set, report export disabled")
	}

	deps := routes.NewDeps(db, store)
	deps.CORSOrigins = cfg.CORSOrigins

	if cfg.SeedFoods {
		n, err := deps.Foods.Seed(ctx)
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		log.Printf("seeded %d catalog foods", n)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on %s (db=%s)", srv.Addr, cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := config.CloseDB(db); err != nil {
		log.Printf("close db: %v", err)
	}
}
