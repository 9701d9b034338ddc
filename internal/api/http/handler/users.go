package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dtroode/userkeeper-server/internal/apierror"
	"github.com/dtroode/userkeeper-server/internal/logger"
	"github.com/dtroode/userkeeper-server/internal/model"
)

// maxRequestBody bounds the create user payload.
const maxRequestBody = 1 << 20

// UserService defines user provisioning operations.
type UserService interface {
	CreateUser(ctx context.Context, params model.CreateUserParams) (model.User, error)
	GetUser(ctx context.Context, id int64) (model.RemoteProfile, error)
}

// AvatarService defines avatar cache operations.
type AvatarService interface {
	GetAvatar(ctx context.Context, userID int64) (string, error)
	DeleteAvatar(ctx context.Context, userID int64) (bool, error)
}

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserResponse is a user as returned by the API.
type UserResponse struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Avatar    string     `json:"avatar,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func newUserResponse(u model.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
	}
	if !u.CreatedAt.IsZero() {
		createdAt := u.CreatedAt.UTC()
		resp.CreatedAt = &createdAt
	}
	return resp
}

// UserHandler serves /api/users.
type UserHandler struct {
	userService   UserService
	avatarService AvatarService
	logger        *logger.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService UserService, avatarService AvatarService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService:   userService,
		avatarService: avatarService,
		logger:        logger,
	}
}

// Create provisions a new user.
//
// POST /api/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, apierror.NewErrInvalidArgument("invalid request body"))
		return
	}

	params := model.CreateUserParams{
		ID:        req.ID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := params.Validate(); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.userService.CreateUser(r.Context(), params)
	if err != nil {
		h.logger.Error("User handler: create user failed",
			"user_id", params.ID,
			"error", err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newUserResponse(user))
}

// Get returns the remote directory profile of a user.
//
// GET /api/users/{userId}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// GetAvatar returns the avatar as a base64 JSON string.
//
// GET /api/users/{userId}/avatar
func (h *UserHandler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	avatar, err := h.avatarService.GetAvatar(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, avatar)
}

// DeleteAvatar removes the cached avatar together with the user record.
//
// DELETE /api/users/{userId}/avatar
func (h *UserHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	ok, err := h.avatarService.DeleteAvatar(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ok)
}
