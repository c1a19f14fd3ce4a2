package mock

import (
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *redis.Client
var redisServer *miniredis.Miniredis

// NewRedis returns a Redis client backed by an in-process miniredis
// server. The server is shared across scenarios; call FlushRedis
// between them.
func NewRedis() *redis.Client {
	redisConnOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisServer = server
		redisConn = redis.NewClient(&redis.Options{
			Addr: server.Addr(),
		})
	})

	return redisConn
}

// FlushRedis clears all keys from the shared miniredis server.
func FlushRedis() {
	if redisServer != nil {
		redisServer.FlushAll()
	}
}
