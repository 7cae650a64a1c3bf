// Package cache provides a generic TTL cache with in-memory and Redis
// backends behind one interface, so a single-node install runs without
// Redis and a clustered one shares cached state.
//
// The platform caches expensive lookups here: joined record pages,
// per-user permission sets, resolved theme variables.
//
// # TTL Semantics
//
// Set with a positive TTL expires the entry after that duration, zero
// uses the cache's configured default (1 hour unless changed), and a
// negative TTL never expires.
//
// # In-Memory
//
//	c := cache.NewMemory[permission.Set](
//		cache.WithDefaultTTL(5*time.Minute),
//		cache.WithMaxEntries(10000),
//	)
//	defer c.Close()
//
// The memory cache evicts least recently used entries at the cap and
// sweeps out expired ones in the background.
//
// # Redis
//
//	client, err := redis.Open(ctx, cfg.RedisURL)
//	c := cache.NewRedis[permission.Set](client, nil,
//		cache.WithPrefix("perms"),
//	)
//
// Values are JSON by default; pass a Marshaler for anything else.
//
// # Stampede Protection
//
// GetOrSet collapses concurrent misses on one key into a single load:
//
//	set, err := cache.GetOrSet(ctx, c, cache.Key("permissions", "user", id),
//		func(ctx context.Context) (permission.Set, time.Duration, error) {
//			set, err := store.LoadPermissions(ctx, id)
//			return set, 5 * time.Minute, err
//		})
package cache
