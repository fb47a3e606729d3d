package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisMock *Redis

// Redis pairs the in-process server with a client connected to it, so
// scenarios can fast-forward view expiry.
type Redis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

func NewRedis() *Redis {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisMock = &Redis{
			Server: server,
			Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
		}
	})
	return redisMock
}

func (r *Redis) Clear() error {
	return r.Client.FlushAll(context.TODO()).Err()
}
