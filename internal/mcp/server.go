// Package mcp exposes the workout service to language-model clients over
// the Model Context Protocol. Tools are scoped to an explicit user id
// argument; there is no implicit identity.
package mcp

import (
	log "github.com/sirupsen/logrus"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"gymtrack/gym-tracker/internal/service"
)

// New creates an MCP server with all tools and resources registered.
func New(workouts service.WorkoutService, users service.UserService, version string) *server.MCPServer {
	s := server.NewMCPServer("gym-tracker", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Workout tracking server. List, inspect, create and delete workouts for a user. Volume is reps×weight summed per exercise or workout."),
	)

	h := &handlers{workouts: workouts, users: users, log: log.StandardLogger()}

	s.AddTools(
		server.ServerTool{Tool: toolListUsers, Handler: h.listUsers},
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolCreateWorkout, Handler: h.createWorkout},
		server.ServerTool{Tool: toolDeleteWorkout, Handler: h.deleteWorkout},
	)

	s.AddResources(
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	workouts service.WorkoutService
	users    service.UserService
	log      *log.Logger
}

var resRecentWorkouts = mcp.NewResource(
	"gymtracker://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("The demo user's workouts, most recent first, with per-workout volume"),
	mcp.WithMIMEType("application/json"),
)
