package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gymtrack/gym-tracker/internal/api"
	"gymtrack/gym-tracker/internal/repository/memory"
	"gymtrack/gym-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	workoutService := service.NewWorkoutService(store.Workouts())
	userService := service.NewUserService(store.Users(), store.Workouts())

	router := gin.New()
	api.SetupRoutes(router, workoutService, userService)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func createUser(t *testing.T, router *gin.Engine, name, email string) api.UserResponse {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/users", gin.H{"name": name, "email": email})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[api.UserResponse](t, rec)
}

func TestStatusEndpoint(t *testing.T) {
	router := setupRouter()
	rec := doJSON(t, router, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, api.Version, body["version"])
	assert.NotEmpty(t, body["message"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestCreateAndFetchWorkout(t *testing.T) {
	router := setupRouter()
	user := createUser(t, router, "Alice", "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/workouts", gin.H{
		"userId": user.ID,
		"title":  "Push Day",
		"date":   "2024-11-10",
		"exercises": []gin.H{
			{"name": "Bench Press", "sets": []gin.H{{"reps": 10, "weight": 80}}},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[api.WorkoutResponse](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 800.0, created.Volume)
	assert.Equal(t, 1, created.TotalSets)

	rec = doJSON(t, router, http.MethodGet, "/api/workouts/detail/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	fetched := decode[api.WorkoutResponse](t, rec)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Push Day", fetched.Title)
	assert.Equal(t, 800.0, fetched.Volume)
}

func TestCreateWorkout_MissingDate(t *testing.T) {
	router := setupRouter()
	user := createUser(t, router, "Alice", "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/workouts", gin.H{
		"userId":    user.ID,
		"exercises": []gin.H{{"name": "Squats", "sets": []gin.H{{"reps": 5}}}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Contains(t, body["message"], "Validation error")
}

func TestCreateWorkout_NoValidExercises(t *testing.T) {
	router := setupRouter()
	user := createUser(t, router, "Alice", "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/workouts", gin.H{
		"userId": user.ID,
		"date":   "2024-11-10",
		"exercises": []gin.H{
			{"name": "", "sets": []gin.H{{"reps": 10}}},
			{"name": "Curls", "sets": []gin.H{{"reps": 0}}},
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateWorkout_BadUserID(t *testing.T) {
	router := setupRouter()
	rec := doJSON(t, router, http.MethodPost, "/api/workouts", gin.H{
		"userId":    "not-a-hex-id",
		"date":      "2024-11-10",
		"exercises": []gin.H{{"name": "Squats", "sets": []gin.H{{"reps": 5}}}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListWorkouts_SortedAndScoped(t *testing.T) {
	router := setupRouter()
	alice := createUser(t, router, "Alice", "alice@example.com")
	bob := createUser(t, router, "Bob", "bob@example.com")

	for _, w := range []struct {
		userID string
		date   string
	}{
		{alice.ID, "2024-11-08"},
		{alice.ID, "2024-11-12"},
		{bob.ID, "2024-11-10"},
	} {
		rec := doJSON(t, router, http.MethodPost, "/api/workouts", gin.H{
			"userId":    w.userID,
			"date":      w.date,
			"exercises": []gin.H{{"name": "Squats", "sets": []gin.H{{"reps": 5, "weight": 100}}}},
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := doJSON(t, router, http.MethodGet, "/api/workouts/"+alice.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	workouts := decode[[]api.WorkoutResponse](t, rec)
	require.Len(t, workouts, 2)
	assert.True(t, workouts[0].Date.After(workouts[1].Date))
}

func TestListWorkouts_UnknownUserEmptyArray(t *testing.T) {
	router := setupRouter()
	rec := doJSON(t, router, http.MethodGet, "/api/workouts/"+primitive.NewObjectID().Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetDetail_NotFoundAndBadID(t *testing.T) {
	router := setupRouter()

	rec := doJSON(t, router, http.MethodGet, "/api/workouts/detail/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/workouts/detail/nope", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateWorkout_TitleOnly(t *testing.T) {
	router := setupRouter()
	user := createUser(t, router, "Alice", "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/workouts", gin.H{
		"userId":    user.ID,
		"title":     "Leg Day",
		"date":      "2024-11-10",
		"exercises": []gin.H{{"name": "Squats", "sets": []gin.H{{"reps": 5, "weight": 100}}}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[api.WorkoutResponse](t, rec)

	rec = doJSON(t, router, http.MethodPut, "/api/workouts/"+created.ID, gin.H{
		"title": "Heavy Leg Day",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[api.WorkoutResponse](t, rec)
	assert.Equal(t, "Heavy Leg Day", updated.Title)
	assert.Equal(t, created.Exercises, updated.Exercises)
	assert.True(t, created.Date.Equal(updated.Date))
}

func TestUpdateWorkout_NotFound(t *testing.T) {
	router := setupRouter()
	rec := doJSON(t, router, http.MethodPut, "/api/workouts/"+primitive.NewObjectID().Hex(), gin.H{
		"title": "x",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteWorkout_ReturnsRecordThenGone(t *testing.T) {
	router := setupRouter()
	user := createUser(t, router, "Alice", "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/workouts", gin.H{
		"userId":    user.ID,
		"date":      "2024-11-10",
		"exercises": []gin.H{{"name": "Squats", "sets": []gin.H{{"reps": 5, "weight": 100}}}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[api.WorkoutResponse](t, rec)

	rec = doJSON(t, router, http.MethodDelete, "/api/workouts/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Message string              `json:"message"`
		Workout api.WorkoutResponse `json:"workout"`
	}](t, rec)
	assert.NotEmpty(t, body.Message)
	assert.Equal(t, created.ID, body.Workout.ID)

	rec = doJSON(t, router, http.MethodDelete, "/api/workouts/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserEndpoints_CRUDAndCascade(t *testing.T) {
	router := setupRouter()
	user := createUser(t, router, "Alice", "alice@example.com")

	rec := doJSON(t, router, http.MethodGet, "/api/users/"+user.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/workouts", gin.H{
		"userId":    user.ID,
		"date":      "2024-11-10",
		"exercises": []gin.H{{"name": "Squats", "sets": []gin.H{{"reps": 5, "weight": 100}}}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	workout := decode[api.WorkoutResponse](t, rec)

	rec = doJSON(t, router, http.MethodDelete, "/api/users/"+user.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/users/"+user.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doJSON(t, router, http.MethodGet, "/api/workouts/detail/"+workout.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserCreate_DuplicateEmailConflict(t *testing.T) {
	router := setupRouter()
	createUser(t, router, "Alice", "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/users", gin.H{
		"name":  "Also Alice",
		"email": "alice@example.com",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}
