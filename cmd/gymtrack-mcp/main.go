// Command gymtrack-mcp runs the gym-tracker MCP server over stdio, for use
// from local LLM clients. It talks to the same store as the HTTP server.
package main

import (
	"os"

	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"

	"gymtrack/gym-tracker/internal/api"
	"gymtrack/gym-tracker/internal/config"
	gymmcp "gymtrack/gym-tracker/internal/mcp"
	"gymtrack/gym-tracker/internal/repository"
	"gymtrack/gym-tracker/internal/repository/memory"
	mongorepo "gymtrack/gym-tracker/internal/repository/mongo"
	"gymtrack/gym-tracker/internal/service"
)

func main() {
	// Stdout carries the MCP protocol; all logging must go to stderr.
	log.SetOutput(os.Stderr)

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
		store := memory.NewStore()
		workoutRepo = store.Workouts()
		userRepo = store.Users()
	case config.DriverMongo:
		dbClient, err := mongorepo.ConnectDB(cfg.Database.URI)
		if err != nil {
			log.WithError(err).Fatal("could not connect to MongoDB")
		}
		defer func() {
			_ = mongorepo.DisconnectDB(dbClient)
		}()
		appDB := dbClient.Database(cfg.Database.Name)
		workoutRepo = mongorepo.NewMongoWorkoutRepository(appDB)
		userRepo = mongorepo.NewMongoUserRepository(appDB)
	}

	workoutService := service.NewWorkoutService(workoutRepo)
	userService := service.NewUserService(userRepo, workoutRepo)

	s := gymmcp.New(workoutService, userService, api.Version)
	if err := server.ServeStdio(s); err != nil {
		log.WithError(err).Fatal("mcp server")
	}
}
