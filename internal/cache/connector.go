package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jobtracker/internal/config"
	"jobtracker/internal/logger"
)

// retryPolicy controls how long Connect keeps pinging before giving up.
type retryPolicy struct {
	initialWait   time.Duration
	maxWait       time.Duration
	pingTimeout   time.Duration
	totalTimeout  time.Duration
	warnThreshold int
}

func validate(cfg config.RedisConfig) error {
	switch {
	case cfg.Addr == "":
		return fmt.Errorf("redis addr is required")
	case cfg.ConnectTimeout <= 0:
		return fmt.Errorf("ConnectTimeout must be > 0, got %v", cfg.ConnectTimeout)
	case cfg.RetryInterval <= 0:
		return fmt.Errorf("RetryInterval must be > 0, got %v", cfg.RetryInterval)
	case cfg.MaxWait <= 0:
		return fmt.Errorf("MaxWait must be > 0, got %v", cfg.MaxWait)
	case cfg.PingTimeout <= 0:
		return fmt.Errorf("PingTimeout must be > 0, got %v", cfg.PingTimeout)
	case cfg.WarnThreshold < 0:
		return fmt.Errorf("WarnThreshold must be >= 0, got %d", cfg.WarnThreshold)
	}
	return nil
}

// Connect creates a Redis client and pings it with exponential backoff until
// ConnectTimeout elapses.
func Connect(ctx context.Context, cfg config.RedisConfig, log logger.Logger) (*redis.Client, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.User,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
	})

	policy := retryPolicy{
		initialWait:   cfg.RetryInterval,
		maxWait:       cfg.MaxWait,
		pingTimeout:   cfg.PingTimeout,
		totalTimeout:  cfg.ConnectTimeout,
		warnThreshold: cfg.WarnThreshold,
	}
	if err := pingWithRetry(ctx, client, cfg.Addr, policy, log); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func pingWithRetry(ctx context.Context, client *redis.Client, addr string, p retryPolicy, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, p.totalTimeout)
	defer cancel()

	log.Info("connecting to redis", logger.String("addr", addr), logger.Duration("timeout", p.totalTimeout))
	start := time.Now()
	wait := p.initialWait

	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, p.pingTimeout)
		err := client.Ping(pingCtx).Err()
		pingCancel()

		if err == nil {
			if attempt > 1 {
				log.Warn("connected to redis after retry",
					logger.String("addr", addr),
					logger.Int("attempts", attempt),
					logger.Duration("elapsed", time.Since(start)))
			} else {
				log.Info("connected to redis", logger.String("addr", addr))
			}
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Error("redis unavailable",
				logger.String("addr", addr),
				logger.Int("attempts", attempt),
				logger.Error(err))
			return fmt.Errorf("redis unavailable at %s after %d attempts (timeout: %v): %w",
				addr, attempt, p.totalTimeout, err)
		case <-timer.C:
			if attempt <= p.warnThreshold {
				log.Warn("redis connection failed, retrying",
					logger.String("addr", addr),
					logger.Int("attempt", attempt),
					logger.Duration("next_retry_in", wait),
					logger.Error(err))
			} else {
				log.Error("redis still unavailable",
					logger.String("addr", addr),
					logger.Int("attempt", attempt),
					logger.Duration("next_retry_in", wait),
					logger.Error(err))
			}
			wait = min(wait*2, p.maxWait)
		}
	}
}
