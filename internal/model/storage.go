package model

import (
	"context"
	"io"
)

// AvatarExt is the file extension of every cached avatar blob.
const AvatarExt = ".png"

// Storage is a flat blob area addressed by key.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// AvatarKey returns the blob key for an avatar content hash.
func AvatarKey(hash string) string {
	return hash + AvatarExt
}
