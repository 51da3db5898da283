package api

import (
	"errors"
	"net/http"
	"time"

	"gymtrack/gym-tracker/internal/domain"
	"gymtrack/gym-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- DTOs ---

// CreateUserRequest is the POST /users body.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// UpdateUserRequest is the PUT /users/:id body; absent fields stay as-is.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserResponse is the wire form of a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// MapUserToResponse converts a domain.User to its DTO.
func MapUserToResponse(u *domain.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// --- Handlers ---

// List handles GET /api/users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		respondInternal(c, err)
		return
	}
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = MapUserToResponse(&users[i])
	}
	c.JSON(http.StatusOK, responses)
}

// Get handles GET /api/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
		} else {
			respondInternal(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// Create handles POST /api/users.
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			respondError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrUserInputInvalid):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondInternal(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// Update handles PUT /api/users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, service.UserPatch{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrEmailTaken):
			respondError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrUserInputInvalid):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondInternal(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// Delete handles DELETE /api/users/:id. Deleting a user also deletes the
// user's workouts.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
		} else {
			respondInternal(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
