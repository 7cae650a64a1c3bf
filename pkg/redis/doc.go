// Package redis opens go-redis clients with pooling, startup retries,
// and lifecycle hooks for the daemon.
//
// The platform keeps Redis optional: installs that configure a
// cache.redis.url get a shared cache and cross-node invalidation,
// everything else falls back to the in-memory cache.
//
//	client, err := redis.Open(ctx, cfg.String("cache.redis.url", ""),
//		redis.WithPoolSize(20),
//		redis.WithRetry(5, 3*time.Second),
//	)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Healthcheck and Shutdown plug the client into the daemon's health
// endpoints and graceful stop:
//
//	health.New(health.WithReadiness("redis", redis.Healthcheck(client)))
package redis
