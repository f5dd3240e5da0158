package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/nabnoey/TK-libralies-System/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"github.com/nabnoey/TK-libralies-System/internal/auth"
	"github.com/nabnoey/TK-libralies-System/internal/cache"
	"github.com/nabnoey/TK-libralies-System/internal/clock"
	"github.com/nabnoey/TK-libralies-System/internal/config"
	"github.com/nabnoey/TK-libralies-System/internal/db"
	"github.com/nabnoey/TK-libralies-System/internal/handler"
	"github.com/nabnoey/TK-libralies-System/internal/model"
	"github.com/nabnoey/TK-libralies-System/internal/queue"
	"github.com/nabnoey/TK-libralies-System/internal/repository"
	"github.com/nabnoey/TK-libralies-System/internal/router"
	"github.com/nabnoey/TK-libralies-System/internal/service"
)

// @title TK Libraries Reservation API
// @version 1.0
// @description Karaoke-room and movie-seat reservations with FIFO queues, timed check-in, and notifications.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("load timezone %q: %v", cfg.Timezone, err)
	}
	clk := clock.NewSystem(loc)

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Notification{},
			&model.Reservation{},
			&model.KaraokeRoom{},
			&model.MovieSeat{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.KaraokeRoom{},
		&model.MovieSeat{},
		&model.Reservation{},
		&model.Notification{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	var publisher service.EventPublisher
	if cfg.AMQPURL != "" {
		publisher = queue.NewPublisher(cfg.AMQPURL)
	} else {
		log.Println("RABBITMQ_URL not set; notification events stay local")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	resourceRepo := repository.NewResourceRepository(gormDB)
	reservationRepo := repository.NewReservationRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)

	// Initialize services
	policy := service.PolicyFromConfig(cfg)
	notificationService := service.NewNotificationService(notificationRepo, publisher, clk)
	reservationService := service.NewReservationService(
		reservationRepo,
		resourceRepo,
		userRepo,
		notificationService,
		cacheClient,
		clk,
		policy,
	)
	resourceService := service.NewResourceService(resourceRepo, reservationRepo, cacheClient)

	// Background sweeper: check-in timeouts and usage-duration expiry.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	sweeper := service.NewSweeper(
		reservationRepo,
		reservationService,
		notificationService,
		clk,
		policy,
		time.Duration(cfg.SweepIntervalSeconds)*time.Second,
	)
	go sweeper.Run(sweepCtx)

	// Initialize handlers
	reservationHandler := handler.NewReservationHandler(reservationService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	resourceHandler := handler.NewResourceHandler(resourceService, clk)

	// Register routes
	router.Register(
		e,
		cfg,
		auth.ResolveIdentity(userRepo, clk),
		reservationHandler,
		notificationHandler,
		resourceHandler,
	)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	stopSweep()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown: %v", err)
	}
}
