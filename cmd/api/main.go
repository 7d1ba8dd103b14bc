package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tutorhub/internal/config"
	"tutorhub/internal/database"
	"tutorhub/internal/middleware"
	"tutorhub/internal/modules/booking"
	"tutorhub/internal/modules/notification"
	"tutorhub/internal/modules/reminder"
	"tutorhub/internal/pkg/clock"
	jwtsvc "tutorhub/internal/pkg/jwt"
	"tutorhub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	clk := clock.System{}

	hub := notification.NewHub()
	notifService := notification.NewService(notifRepo, userRepo, subjectRepo, hub)
	notifHandler := notification.NewHandler(notifService, hub)

	bookingService := booking.NewService(bookingRepo, userRepo, subjectRepo, notifService, clk)
	bookingHandler := booking.NewHandler(bookingService)

	scheduler := reminder.NewScheduler(bookingRepo, notifService, clk, reminder.Config{
		Interval:      cfg.SweepInterval,
		LookaheadFrom: cfg.LookaheadFrom,
		LookaheadTo:   cfg.LookaheadTo,
	})

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			bookingHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)
		}
	}

	ctx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	var stopSweep chan struct{}
	if cfg.ReminderEnabled {
		stopSweep = scheduler.Start(ctx)
	} else {
		log.Println("reminder scheduler disabled")
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		log.Printf("listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	if stopSweep != nil {
		close(stopSweep)
	}
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
