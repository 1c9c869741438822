// Package redis opens the go-redis client that backs the refresh-token
// store when REDIS_URL is set.
//
//	client, err := redis.Open(ctx, cfg.RedisURL, redis.WithRetry(5, time.Second))
//	if err != nil {
//	    return err
//	}
//	app.Run(addr, portal.ShutdownHook(redis.Shutdown(client)))
package redis
