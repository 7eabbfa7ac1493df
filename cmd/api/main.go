package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/config"
	appHTTP "github.com/CodyMacMLE/athletiq-backend-go/internal/handler/http"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/cron"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/database"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/jwt"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/CodyMacMLE/athletiq-backend-go/internal/service/auth"
	checkinService "github.com/CodyMacMLE/athletiq-backend-go/internal/service/checkin"
	eventService "github.com/CodyMacMLE/athletiq-backend-go/internal/service/event"
	statsService "github.com/CodyMacMLE/athletiq-backend-go/internal/service/stats"
	sweepService "github.com/CodyMacMLE/athletiq-backend-go/internal/service/sweep"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}
	loc := cfg.Location()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	teamRepo := postgresql.NewTeamRepository(db)
	tagRepo := postgresql.NewTagRepository(db)
	eventRepo := postgresql.NewEventRepository(db)
	checkInRepo := postgresql.NewCheckInRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	statsRepo := postgresql.NewStatsRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authSvc := serviceAuth.NewAuthService(db, userRepo, jwtService, refreshTokenRepo)
	checkInSvc := checkinService.NewCheckInService(checkInRepo, eventRepo, userRepo, tagRepo, teamRepo, notificationRepo, loc)
	eventSvc := eventService.NewEventService(eventRepo, loc)
	sweepSvc := sweepService.NewSweepService(checkInRepo, eventRepo, userRepo, teamRepo, notificationRepo, loc)
	statsSvc := statsService.NewStatsService(statsRepo, userRepo, loc)

	scheduler := cron.NewScheduler()
	cron.NewSweepJobs(sweepSvc, cfg.Sweep).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(jwtService, authSvc),
		CheckIn:      appHTTP.NewCheckInHandler(checkInSvc),
		Event:        appHTTP.NewEventHandler(eventSvc),
		Sweep:        appHTTP.NewSweepHandler(sweepSvc, cfg.Sweep),
		Stats:        appHTTP.NewStatsHandler(statsSvc),
		Notification: appHTTP.NewNotificationHandler(notificationRepo),
		Tag:          appHTTP.NewTagHandler(tagRepo),
		Team:         appHTTP.NewTeamHandler(teamRepo, userRepo, loc),
	}

	router := appHTTP.NewRouter(cfg, jwtService, handlers)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
}
