// Package redis connects to the Redis server backing the shared
// subscription cache (see pkg/cache.NewRedisStore).
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//	store := cache.NewRedisStore[cache.Entry[*ocl.Subscription]](client, cfg.KeyPrefix, ttl)
//
// Healthcheck adapts the client to httpserver health checks.
package redis
