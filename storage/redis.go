package storage

import (
	"github.com/go-redis/redis/v8"
)

// NewRedis returns a client for the refresh-token whitelist.
func NewRedis(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
	})
}
