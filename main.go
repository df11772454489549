package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"table-booking/config"
	"table-booking/controllers"
	"table-booking/messaging"
	"table-booking/routes"
	"table-booking/services"
)

func main() {
	cfg := config.Load()

	// Database is optional: without it audits and batch history are skipped
	var audit *services.AuditStore
	if cfg.Database.Enabled {
		db, err := config.ConnectDatabase(cfg.Database)
		if err != nil {
			log.Printf("⚠️  Database unavailable, continuing without audit store: %v", err)
		} else {
			audit = services.NewAuditStore(db)
			log.Println("✅ Database connection established and migrations applied.")
		}
	}

	var cache services.StayCache = services.NewMemoryStayCache()
	if cfg.Cache.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Printf("⚠️  Redis unavailable, using in-memory stay cache: %v", err)
			_ = rdb.Close()
		} else {
			cache = services.NewRedisStayCache(rdb)
			defer rdb.Close()
			log.Printf("✅ Redis stay cache at %s", cfg.Cache.RedisAddr)
		}
	}

	var publisher *messaging.Publisher
	if cfg.RabbitURL != "" {
		p, err := messaging.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Printf("⚠️  RabbitMQ unavailable, events disabled: %v", err)
		} else {
			publisher = p
			defer publisher.Close()
			log.Println("✅ RabbitMQ publisher ready")
		}
	}

	// Upstream clients
	newbook := services.NewNewBookClient(cfg.NewBook)
	resos := services.NewResosClient(cfg.Resos)

	// Initialize services
	stays := services.NewStaySource(newbook, cache, cfg.Cache.StayTTL)

	var recorder services.MatchRecorder
	batches := services.NewBatchBookingCoordinator(resos, newbook, cfg.Widget, cfg.MaxBatchNights)
	if audit != nil {
		recorder = audit
		batches.Store = audit
	}
	if publisher != nil {
		batches.Events = publisher
	}

	matcher := services.NewResidentMatcher(stays, recorder)
	lookup := services.NewResidentLookup(newbook)
	groups := services.NewGroupCoordinator(stays, resos, cfg.Widget.BookingRefFieldID)
	duplicates := services.NewDuplicateChecker(resos)
	bookings := services.NewBookingService(batches, duplicates, cfg.Widget)
	availability := services.NewAvailabilityService(resos, cfg.Widget, cfg.MaxBatchNights)

	// Initialize controllers
	residentController := controllers.NewResidentController(matcher, lookup, groups, stays)
	bookingController := controllers.NewBookingController(bookings, batches, duplicates)
	availabilityController := controllers.NewAvailabilityController(availability)

	// Build router
	router := routes.SetupRouter(&cfg, residentController, bookingController, availabilityController, routes.NewLimiters(cfg.Limits))

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		return
	}

	log.Println("✅ Server stopped gracefully")
}
