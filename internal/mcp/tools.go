package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gymtrack/gym-tracker/internal/domain"
	"gymtrack/gym-tracker/internal/service"
)

// --- Tool definitions ---

var toolListUsers = mcp.NewTool("list_users",
	mcp.WithDescription("List all users with their ids. Workout tools need a user_id from here."),
)

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List a user's workouts, most recent date first. Each entry includes total volume (reps×weight) and set count."),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("Hex id of the owning user")),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Fetch a single workout by id, including its exercises, sets and volume."),
	mcp.WithString("workout_id", mcp.Required(), mcp.Description("Hex id of the workout")),
)

var toolCreateWorkout = mcp.NewTool("create_workout",
	mcp.WithDescription("Create a workout. Exercises with an empty name or no positive-rep set are silently dropped; at least one must remain."),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("Hex id of the owning user")),
	mcp.WithString("date", mcp.Required(), mcp.Description("Workout date (YYYY-MM-DD)")),
	mcp.WithString("title", mcp.Description("Optional workout title")),
	mcp.WithString("exercises", mcp.Required(), mcp.Description(`JSON array of exercises, e.g. [{"name":"Bench Press","sets":[{"reps":10,"weight":80}]}]`)),
)

var toolDeleteWorkout = mcp.NewTool("delete_workout",
	mcp.WithDescription("Delete a workout by id. Returns the deleted record."),
	mcp.WithString("workout_id", mcp.Required(), mcp.Description("Hex id of the workout")),
)

// workoutView is the JSON shape returned by the workout tools.
type workoutView struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Title     string            `json:"title,omitempty"`
	Date      string            `json:"date"`
	Exercises []domain.Exercise `json:"exercises"`
	Volume    float64           `json:"volume"`
	TotalSets int               `json:"totalSets"`
}

func viewOf(w *domain.Workout) workoutView {
	return workoutView{
		ID:        w.ID.Hex(),
		UserID:    w.UserID.Hex(),
		Title:     w.Title,
		Date:      w.Date.Format("2006-01-02"),
		Exercises: w.Exercises,
		Volume:    w.Volume(),
		TotalSets: w.TotalSets(),
	}
}

func viewsOf(workouts []domain.Workout) []workoutView {
	views := make([]workoutView, len(workouts))
	for i := range workouts {
		views[i] = viewOf(&workouts[i])
	}
	return views
}

// --- Tool handlers ---

func (h *handlers) listUsers(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	users, err := h.users.List(ctx)
	if err != nil {
		h.log.WithError(err).Error("mcp list_users")
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(users)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := primitive.ObjectIDFromHex(req.GetString("user_id", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid user_id: " + err.Error()), nil
	}

	workouts, err := h.workouts.ListByUser(ctx, userID)
	if err != nil {
		h.log.WithError(err).Error("mcp list_workouts")
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(viewsOf(workouts))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := primitive.ObjectIDFromHex(req.GetString("workout_id", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid workout_id: " + err.Error()), nil
	}

	workout, err := h.workouts.GetByID(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(viewOf(workout))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) createWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := primitive.ObjectIDFromHex(req.GetString("user_id", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid user_id: " + err.Error()), nil
	}
	date, err := time.Parse("2006-01-02", req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date, expected YYYY-MM-DD: " + err.Error()), nil
	}

	var exercises []domain.Exercise
	if err := json.Unmarshal([]byte(req.GetString("exercises", "[]")), &exercises); err != nil {
		return mcp.NewToolResultError("invalid exercises JSON: " + err.Error()), nil
	}

	workout, err := h.workouts.Create(ctx, userID, service.WorkoutInput{
		Title:     req.GetString("title", ""),
		Date:      date,
		Exercises: exercises,
	})
	if err != nil {
		return mcp.NewToolResultError("create failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(viewOf(workout))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) deleteWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := primitive.ObjectIDFromHex(req.GetString("workout_id", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid workout_id: " + err.Error()), nil
	}

	workout, err := h.workouts.Delete(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(viewOf(workout))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// --- Resource handlers ---

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	demo, err := h.users.EnsureDemoUser(ctx)
	if err != nil {
		return nil, err
	}
	workouts, err := h.workouts.ListByUser(ctx, demo.ID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(viewsOf(workouts))
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
