package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"gymtrack/gym-tracker/internal/api"
	"gymtrack/gym-tracker/internal/config"
	"gymtrack/gym-tracker/internal/repository"
	"gymtrack/gym-tracker/internal/repository/memory"
	mongorepo "gymtrack/gym-tracker/internal/repository/mongo"
	"gymtrack/gym-tracker/internal/service"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.Info("starting gym-tracker server")

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}

	var (
		workoutRepo repository.WorkoutRepository
		userRepo    repository.UserRepository
	)

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		// In-memory mode: an explicitly constructed store injected into the
		// services, for offline use and demos.
		log.Warn("using in-memory storage; data will not survive a restart")
		store := memory.NewStore()
		workoutRepo = store.Workouts()
		userRepo = store.Users()

	case config.DriverMongo:
		dbClient, err := mongorepo.ConnectDB(cfg.Database.URI)
		if err != nil {
			log.WithError(err).Fatal("could not connect to MongoDB")
		}
		defer func() {
			if err := mongorepo.DisconnectDB(dbClient); err != nil {
				log.WithError(err).Error("failed to disconnect MongoDB")
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)
		log.WithField("database", cfg.Database.Name).Info("database connection established")

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := mongorepo.EnsureUserIndexes(ctx, appDB.Collection("users")); err != nil {
				log.WithError(err).Warn("user index creation failed")
			}
			if err := mongorepo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts")); err != nil {
				log.WithError(err).Warn("workout index creation failed")
			}
		}()

		workoutRepo = mongorepo.NewMongoWorkoutRepository(appDB)
		userRepo = mongorepo.NewMongoUserRepository(appDB)
	}

	workoutService := service.NewWorkoutService(workoutRepo)
	userService := service.NewUserService(userRepo, workoutRepo)

	if cfg.Storage.SeedDemo {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		user, err := userService.EnsureDemoUser(ctx)
		cancel()
		if err != nil {
			log.WithError(err).Fatal("could not seed demo user")
		}
		log.WithField("userId", user.ID.Hex()).Info("demo user ready")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	api.SetupRoutes(router, workoutService, userService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("address", cfg.Server.Address).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen and serve")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}
	log.Info("server exiting")
}
