package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courtflow/config"
	"courtflow/cron"
	"courtflow/database"
	applicationRepo "courtflow/database/repository/application"
	caseRepo "courtflow/database/repository/case"
	rescheduleRepo "courtflow/database/repository/reschedule"
	userRepoPkg "courtflow/database/repository/user"
	"courtflow/handlers"
	"courtflow/middleware"
	"courtflow/routes"
	"courtflow/services/notification"
	"courtflow/services/schedule"
	"courtflow/services/tasks"
	"courtflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitDedupeCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	cases := caseRepo.NewMongoCaseRepo()
	reschedules := rescheduleRepo.NewMongoRescheduleRepo()
	applications := applicationRepo.NewMongoApplicationRepo()
	users := userRepoPkg.NewMongoUserRepo()
	txnRunner := database.NewTxnRunner()

	// services.
	notificationService, err := notification.NewFCMNotificationService(users)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	deduper := notification.NewRedisDeduper(utils.GetDedupeClient())

	conflictResolver := &schedule.DefaultConflictResolver{Cases: cases}
	cascade := &schedule.DefaultApplicationCascade{
		Cases:    cases,
		Apps:     applications,
		Notifier: notificationService,
		Dedupe:   deduper,
	}
	negotiationService := &schedule.DefaultNegotiationService{
		Cases:       cases,
		Reschedules: reschedules,
		Users:       users,
		Resolver:    conflictResolver,
		Cascade:     cascade,
		Txn:         txnRunner,
		Notifier:    notificationService,
	}

	reminderQueue := tasks.NewAsynqReminderQueue()
	defer reminderQueue.Close()
	dispatcher := &schedule.DefaultReminderDispatcher{
		Cases: cases,
		Queue: reminderQueue,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:   users,
		Case:       handlers.NewCaseHandler(cases, applications, conflictResolver, negotiationService),
		Reschedule: handlers.NewRescheduleHandler(negotiationService),
		Admin:      handlers.NewAdminHandler(dispatcher),
		User:       handlers.NewUserHandler(users),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background work: reminder delivery worker, recurring dispatch ticks,
	// external-service health monitor.
	cron.InitReminderWorker(notificationService)

	cronCtx, cronCancel := context.WithCancel(context.Background())
	defer cronCancel()
	go cron.StartReminderCron(cronCtx, dispatcher)

	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient(), utils.GetDedupeClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	cronCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
