package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ErrNotFound is returned by Get when no value was ever stored for the key.
var ErrNotFound = errors.New("reference not found")

// ReferenceStore maps caller-facing donation references to provider-assigned
// payment ids. The gateway only ever writes a key once and reads it back
// later; no update or delete is part of the contract.
type ReferenceStore interface {
	Put(ctx context.Context, key string, value string) error
	Get(ctx context.Context, key string) (string, error)
}

// InitStorage builds the reference store selected by storage.backend.
func InitStorage() (ReferenceStore, error) {
	backend := viper.GetString("storage.backend")
	switch backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(
			viper.GetString("storage.redis.addr"),
			viper.GetString("storage.redis.password"),
			viper.GetInt("storage.redis.db"),
		), nil
	case "s3":
		return NewS3Store(
			viper.GetString("storage.s3.bucket"),
			viper.GetString("storage.s3.region"),
			viper.GetString("storage.s3.endpoint"),
		)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}
