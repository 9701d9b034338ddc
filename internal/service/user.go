package service

import (
	"context"
	"errors"

	"github.com/dtroode/userkeeper-server/internal/apierror"
	"github.com/dtroode/userkeeper-server/internal/logger"
	"github.com/dtroode/userkeeper-server/internal/model"
)

// Welcome email sent to every newly provisioned user.
const (
	WelcomeSubject = "Welcome!"
	WelcomeBody    = "Thank you for registering."
)

// User provisions user records and exposes remote profiles.
type User struct {
	userStore model.UserStore
	directory model.Directory
	notifier  model.Notifier
	publisher model.EventPublisher
	logger    *logger.Logger
}

func NewUser(
	userStore model.UserStore,
	directory model.Directory,
	notifier model.Notifier,
	publisher model.EventPublisher,
	logger *logger.Logger,
) *User {
	return &User{
		userStore: userStore,
		directory: directory,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateUser persists a new user, sends the welcome email and publishes
// user_created. The steps run in order and none is retried. A failure after
// the record is persisted is reported as internal and the record is kept.
func (s *User) CreateUser(ctx context.Context, params model.CreateUserParams) (model.User, error) {
	_, err := s.userStore.GetByEmail(ctx, params.Email)
	if err == nil {
		return model.User{}, apierror.NewErrEmailIsTaken()
	}
	if !errors.Is(err, model.ErrNotFound) {
		s.logger.Error("User service: failed to check email uniqueness",
			"error", err.Error())
		return model.User{}, apierror.NewErrCreateUser()
	}

	user, err := s.userStore.Create(ctx, params.ToUser())
	if errors.Is(err, model.ErrAlreadyExists) {
		return model.User{}, apierror.NewErrEmailIsTaken()
	}
	if err != nil {
		s.logger.Error("User service: failed to persist user",
			"user_id", params.ID,
			"error", err.Error())
		return model.User{}, apierror.NewErrCreateUser()
	}

	if err := s.notifier.Send(ctx, user.Email, WelcomeSubject, WelcomeBody); err != nil {
		s.logger.Warn("User service: user persisted but welcome email failed",
			"event", logger.EventUserPersistedSideEffectFailed,
			"user_id", user.ID,
			"error", err.Error())
		return model.User{}, apierror.NewErrCreateUser()
	}

	if err := s.publisher.Publish(ctx, model.TopicUserCreated, user.ID); err != nil {
		s.logger.Warn("User service: user persisted but event publish failed",
			"event", logger.EventUserPersistedSideEffectFailed,
			"user_id", user.ID,
			"topic", model.TopicUserCreated,
			"error", err.Error())
		return model.User{}, apierror.NewErrCreateUser()
	}

	s.logger.Info("User service: user created", "user_id", user.ID)

	return user, nil
}

// GetUser returns the profile published by the remote directory.
func (s *User) GetUser(ctx context.Context, id int64) (model.RemoteProfile, error) {
	profile, err := s.directory.GetUser(ctx, id)
	if err != nil {
		s.logger.Error("User service: failed to fetch remote user",
			"user_id", id,
			"error", err.Error())
		return model.RemoteProfile{}, apierror.NewErrFetchUser(id)
	}

	return profile, nil
}
