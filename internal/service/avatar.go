package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/dtroode/userkeeper-server/internal/apierror"
	"github.com/dtroode/userkeeper-server/internal/logger"
	"github.com/dtroode/userkeeper-server/internal/model"
)

// Avatar serves user avatars from a content-addressed blob cache, populating
// it from the remote directory on first access.
type Avatar struct {
	userStore model.UserStore
	directory model.Directory
	storage   model.Storage
	logger    *logger.Logger
}

func NewAvatar(
	userStore model.UserStore,
	directory model.Directory,
	storage model.Storage,
	logger *logger.Logger,
) *Avatar {
	return &Avatar{
		userStore: userStore,
		directory: directory,
		storage:   storage,
		logger:    logger,
	}
}

// ContentHash returns the lowercase hex SHA-256 digest of data.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// GetAvatar returns the user's avatar bytes encoded as standard base64.
func (s *Avatar) GetAvatar(ctx context.Context, userID int64) (string, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	found := err == nil
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		s.logger.Error("Avatar service: failed to get user",
			"user_id", userID,
			"error", err.Error())
		return "", apierror.NewErrFetchAvatar(userID)
	}

	var data []byte
	if found && user.HasAvatar() {
		data, err = s.readCached(ctx, user)
	} else {
		data, err = s.populate(ctx, userID, found)
	}
	if err != nil {
		s.logger.Error("Avatar service: failed to resolve avatar",
			"user_id", userID,
			"error", err.Error())
		return "", apierror.NewErrFetchAvatar(userID)
	}

	return base64.StdEncoding.EncodeToString(data), nil
}

// readCached never falls back to the remote directory: a record pointing at
// a missing blob is an error.
func (s *Avatar) readCached(ctx context.Context, user model.User) ([]byte, error) {
	key := model.AvatarKey(user.Avatar)

	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check avatar blob: %w", err)
	}
	if !exists {
		s.logger.Error("Avatar service: avatar blob is missing",
			"event", logger.EventAvatarBlobMissing,
			"user_id", user.ID,
			"key", key)
		return nil, fmt.Errorf("avatar blob %s: %w", key, model.ErrNotFound)
	}

	reader, err := s.storage.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download avatar blob: %w", err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			s.logger.Warn("Avatar service: failed to close blob reader", "error", err.Error())
		}
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read avatar blob: %w", err)
	}

	return data, nil
}

func (s *Avatar) populate(ctx context.Context, userID int64, recordExists bool) ([]byte, error) {
	profile, err := s.directory.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get remote profile: %w", err)
	}

	data, err := s.directory.FetchBinary(ctx, profile.Avatar)
	if err != nil {
		return nil, fmt.Errorf("failed to download avatar: %w", err)
	}

	hash := ContentHash(data)
	if err := s.storage.Upload(ctx, model.AvatarKey(hash), bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to store avatar blob: %w", err)
	}

	if recordExists {
		if err := s.userStore.SetAvatar(ctx, userID, hash); err != nil {
			return nil, fmt.Errorf("failed to attach avatar to user: %w", err)
		}
	} else {
		_, err := s.userStore.Create(ctx, model.User{
			ID:        userID,
			Email:     profile.Email,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			Avatar:    hash,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create user with avatar: %w", err)
		}
	}

	s.logger.Info("Avatar service: avatar cached",
		"user_id", userID,
		"hash", hash)

	return data, nil
}

// DeleteAvatar removes the cached blob, if any, and then the user record.
func (s *Avatar) DeleteAvatar(ctx context.Context, userID int64) (bool, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return false, apierror.NewErrUserNotFound(userID)
	}
	if err != nil {
		s.logger.Error("Avatar service: failed to get user",
			"user_id", userID,
			"error", err.Error())
		return false, apierror.NewErrDeleteAvatar(userID)
	}

	blobDeleted := false
	if user.HasAvatar() {
		key := model.AvatarKey(user.Avatar)

		exists, err := s.storage.Exists(ctx, key)
		if err != nil {
			s.logger.Error("Avatar service: failed to check avatar blob",
				"user_id", userID,
				"key", key,
				"error", err.Error())
			return false, apierror.NewErrDeleteAvatar(userID)
		}

		if exists {
			if err := s.storage.Delete(ctx, key); err != nil {
				s.logger.Error("Avatar service: failed to delete avatar blob",
					"user_id", userID,
					"key", key,
					"error", err.Error())
				return false, apierror.NewErrDeleteAvatar(userID)
			}
			blobDeleted = true
		}
	}

	if err := s.userStore.DeleteByID(ctx, userID); err != nil {
		if blobDeleted {
			s.logger.Warn("Avatar service: blob deleted but user record kept",
				"event", logger.EventAvatarBlobDeletedRecordKept,
				"user_id", userID,
				"error", err.Error())
		} else {
			s.logger.Error("Avatar service: failed to delete user",
				"user_id", userID,
				"error", err.Error())
		}
		return false, apierror.NewErrDeleteAvatar(userID)
	}

	s.logger.Info("Avatar service: avatar deleted", "user_id", userID)

	return true, nil
}
