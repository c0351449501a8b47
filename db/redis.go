// db/redis.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/atriumhq/atrium/logging"
	"github.com/atriumhq/atrium/model"
)

var RedisClient *redis.Client

func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
		PoolTimeout:  viper.GetDuration("redis.poolTimeout"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

// CacheEmployee stores a directory record with the configured TTL so the
// identity builder can skip Neo4j on repeat requests.
func CacheEmployee(ctx context.Context, employee *model.Employee) error {
	employeeJSON, err := json.Marshal(employee)
	if err != nil {
		return fmt.Errorf("failed to marshal employee: %w", err)
	}

	key := fmt.Sprintf("employee:%s", employee.ID)
	ttl := viper.GetDuration("directory.cacheTTL")
	if err := RedisClient.Set(ctx, key, employeeJSON, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache employee: %w", err)
	}

	logger.Debug("Employee cached successfully", zap.String("userID", employee.ID))
	return nil
}

// GetCachedEmployee returns nil without error on a cache miss.
func GetCachedEmployee(ctx context.Context, userID string) (*model.Employee, error) {
	key := fmt.Sprintf("employee:%s", userID)
	employeeJSON, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Employee not found in cache", zap.String("userID", userID))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get employee from cache: %w", err)
	}

	var employee model.Employee
	if err := json.Unmarshal([]byte(employeeJSON), &employee); err != nil {
		return nil, fmt.Errorf("failed to unmarshal employee: %w", err)
	}

	logger.Debug("Employee retrieved from cache", zap.String("userID", userID))
	return &employee, nil
}

func DeleteCachedEmployee(ctx context.Context, userID string) error {
	key := fmt.Sprintf("employee:%s", userID)
	if err := RedisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete employee from cache: %w", err)
	}
	logger.Debug("Employee deleted from cache", zap.String("userID", userID))
	return nil
}

// RateLimit counts requests for key in a sliding window and reports whether
// the caller is still under limit.
func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	pipe := RedisClient.Pipeline()
	now := time.Now().UnixNano()
	key = fmt.Sprintf("ratelimit:%s", key)

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-(per.Nanoseconds())))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	count := cmds[2].(*redis.IntCmd).Val()
	allowed := count <= int64(limit)
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Int("limit", limit),
		zap.Bool("allowed", allowed))
	return allowed, nil
}

// LockResource takes a best-effort distributed lock, used to serialize
// directory seeding across instances.
func LockResource(ctx context.Context, resourceName string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:%s", resourceName)
	locked, err := RedisClient.SetNX(ctx, key, "locked", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	logger.Debug("Lock acquisition attempt",
		zap.String("resource", resourceName),
		zap.Bool("locked", locked))
	return locked, nil
}

func UnlockResource(ctx context.Context, resourceName string) error {
	key := fmt.Sprintf("lock:%s", resourceName)
	if err := RedisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	logger.Debug("Lock released", zap.String("resource", resourceName))
	return nil
}
