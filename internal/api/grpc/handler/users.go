package handler

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/dtroode/userkeeper-server/internal/logger"
	"github.com/dtroode/userkeeper-server/internal/model"
)

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

var _ UsersServer = (*Users)(nil)

// Users handles gRPC endpoints for users and their avatars.
type Users struct {
	userService   UserService
	avatarService AvatarService
	logger        *logger.Logger
}

// NewUsers creates a new Users handler.
func NewUsers(userService UserService, avatarService AvatarService, logger *logger.Logger) *Users {
	return &Users{
		userService:   userService,
		avatarService: avatarService,
		logger:        logger,
	}
}

// CreateUser provisions a user from {id, email, first_name, last_name}.
func (h *Users) CreateUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	h.logger.Debug("Users handler: processing create user request")

	params, err := paramsFromStruct(req)
	if err != nil {
		return nil, handleError(err)
	}

	user, err := h.userService.CreateUser(ctx, params)
	if err != nil {
		h.logger.Error("Users handler: create user failed",
			"user_id", params.ID,
			"error", err.Error())
		return nil, handleError(err)
	}

	resp, err := userToStruct(user)
	if err != nil {
		return nil, handleError(err)
	}

	h.logger.Info("Users handler: user created successfully", "user_id", user.ID)

	return resp, nil
}

// GetUser returns the remote directory profile of a user.
func (h *Users) GetUser(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	h.logger.Debug("Users handler: processing get user request", "user_id", req.GetValue())

	profile, err := h.userService.GetUser(ctx, req.GetValue())
	if err != nil {
		h.logger.Error("Users handler: get user failed",
			"user_id", req.GetValue(),
			"error", err.Error())
		return nil, handleError(err)
	}

	resp, err := profileToStruct(profile)
	if err != nil {
		return nil, handleError(err)
	}

	return resp, nil
}

// GetAvatar returns the base64 encoded avatar of a user.
func (h *Users) GetAvatar(ctx context.Context, req *wrapperspb.Int64Value) (*wrapperspb.StringValue, error) {
	h.logger.Debug("Users handler: processing get avatar request", "user_id", req.GetValue())

	avatar, err := h.avatarService.GetAvatar(ctx, req.GetValue())
	if err != nil {
		h.logger.Error("Users handler: get avatar failed",
			"user_id", req.GetValue(),
			"error", err.Error())
		return nil, handleError(err)
	}

	return wrapperspb.String(avatar), nil
}

// DeleteAvatar removes the cached avatar and the user record.
func (h *Users) DeleteAvatar(ctx context.Context, req *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error) {
	h.logger.Debug("Users handler: processing delete avatar request", "user_id", req.GetValue())

	ok, err := h.avatarService.DeleteAvatar(ctx, req.GetValue())
	if err != nil {
		h.logger.Error("Users handler: delete avatar failed",
			"user_id", req.GetValue(),
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Users handler: avatar deleted successfully", "user_id", req.GetValue())

	return wrapperspb.Bool(ok), nil
}
