// Package apiclient is a typed HTTP client for the gym-tracker REST API,
// used by the CLI, the TUI form, and the remote MCP mode. Every request is
// bounded by the client timeout so a dead server never suspends the caller
// indefinitely.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gymtrack/gym-tracker/internal/api"
)

// DefaultTimeout bounds requests when the config does not say otherwise.
const DefaultTimeout = 10 * time.Second

// APIError is a non-2xx response, carrying the server's {message} body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// StatusResponse is the GET / health payload.
type StatusResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

// DeleteWorkoutResponse is the DELETE /workouts/:id confirmation.
type DeleteWorkoutResponse struct {
	Message string              `json:"message"`
	Workout api.WorkoutResponse `json:"workout"`
}

// Client talks to a running gym-tracker server.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the given base URL. A non-positive timeout falls
// back to DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Message string `json:"message"`
		}
		msg := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Message != "" {
			msg = errBody.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Status fetches the root health payload.
func (c *Client) Status(ctx context.Context) (*StatusResponse, error) {
	var out StatusResponse
	if err := c.do(ctx, http.MethodGet, "/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers fetches all users.
func (c *Client) ListUsers(ctx context.Context) ([]api.UserResponse, error) {
	var out []api.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser fetches a single user by id.
func (c *Client) GetUser(ctx context.Context, id string) (*api.UserResponse, error) {
	var out api.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/users/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser registers a new user.
func (c *Client) CreateUser(ctx context.Context, name, email string) (*api.UserResponse, error) {
	var out api.UserResponse
	req := api.CreateUserRequest{Name: name, Email: email}
	if err := c.do(ctx, http.MethodPost, "/api/users", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListWorkouts fetches a user's workouts, date descending.
func (c *Client) ListWorkouts(ctx context.Context, userID string) ([]api.WorkoutResponse, error) {
	var out []api.WorkoutResponse
	if err := c.do(ctx, http.MethodGet, "/api/workouts/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetWorkout fetches a single workout by id.
func (c *Client) GetWorkout(ctx context.Context, id string) (*api.WorkoutResponse, error) {
	var out api.WorkoutResponse
	if err := c.do(ctx, http.MethodGet, "/api/workouts/detail/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateWorkout persists a new workout.
func (c *Client) CreateWorkout(ctx context.Context, req api.CreateWorkoutRequest) (*api.WorkoutResponse, error) {
	var out api.WorkoutResponse
	if err := c.do(ctx, http.MethodPost, "/api/workouts", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateWorkout applies a partial update to a workout.
func (c *Client) UpdateWorkout(ctx context.Context, id string, req api.UpdateWorkoutRequest) (*api.WorkoutResponse, error) {
	var out api.WorkoutResponse
	if err := c.do(ctx, http.MethodPut, "/api/workouts/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteWorkout removes a workout and returns the deleted record.
func (c *Client) DeleteWorkout(ctx context.Context, id string) (*DeleteWorkoutResponse, error) {
	var out DeleteWorkoutResponse
	if err := c.do(ctx, http.MethodDelete, "/api/workouts/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
