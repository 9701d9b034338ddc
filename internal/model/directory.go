package model

import "context"

// Directory fetches user profiles and binary resources from the remote user directory.
type Directory interface {
	GetUser(ctx context.Context, id int64) (RemoteProfile, error)
	FetchBinary(ctx context.Context, url string) ([]byte, error)
}

// RemoteProfile is a user profile as published by the remote directory.
// Avatar is the URL of the avatar image.
type RemoteProfile struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

// DirectoryResponse is the envelope every directory payload is wrapped in.
type DirectoryResponse[T any] struct {
	Data T `json:"data"`
}
