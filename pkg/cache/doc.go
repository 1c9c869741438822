// Package cache provides a small generic key-value store with TTLs and two
// backends: an in-process [Memory] store and a [Redis] store.
//
// The portal uses it for refresh tokens (Take gives single-use rotation)
// and for short-lived profile lookups through [GetOrSet]:
//
//	tokens := cache.NewRedis[Session](client, cache.WithPrefix("refresh"))
//	profiles := cache.NewMemory[User](cache.WithDefaultTTL(time.Minute))
//
//	u, err := cache.GetOrSet(ctx, profiles, id, func(ctx context.Context) (User, time.Duration, error) {
//	    u, err := repo.FindByID(ctx, id)
//	    return u, 0, err
//	})
//
// A zero TTL passed to Set uses the store default. A negative TTL never expires.
package cache
