package cache

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr           string
	Password       string
	UsersHashKey   string
	OccurrencesTTL time.Duration
}

type ValkeyClient struct {
	client         *redis.Client
	usersHashKey   string
	occurrencesTTL time.Duration
}

func NewValkeyClient(cfg Config) (*ValkeyClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return &ValkeyClient{
		client:         rdb,
		usersHashKey:   cfg.UsersHashKey,
		occurrencesTTL: cfg.OccurrencesTTL,
	}, nil
}

// GetUserIDByAuth looks up a cached email/password-hash pair for Basic Auth.
func (v *ValkeyClient) GetUserIDByAuth(ctx context.Context, email, passwordHash string) (int64, error) {
	authString := fmt.Sprintf("%s:%s", email, passwordHash)
	cacheKey := base64.StdEncoding.EncodeToString([]byte(authString))

	userIDStr, err := v.client.HGet(ctx, v.usersHashKey, cacheKey).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, fmt.Errorf("user not found in cache")
		}
		return 0, fmt.Errorf("cache lookup error: %w", err)
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID in cache: %w", err)
	}

	return userID, nil
}

// Occurrence lists are recomputed from the recurrence rule on every request;
// the cache keeps repeated expansions of the same event cheap. Raw JSON is
// stored to avoid an unmarshal/marshal round trip on hits.

func occurrencesKey(eventID int64) string {
	return fmt.Sprintf("occurrences:%d", eventID)
}

func (v *ValkeyClient) GetOccurrencesRaw(ctx context.Context, eventID int64) ([]byte, error) {
	data, err := v.client.Get(ctx, occurrencesKey(eventID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("occurrences not cached")
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return data, nil
}

func (v *ValkeyClient) SetOccurrences(ctx context.Context, eventID int64, occurrences interface{}) error {
	payload, err := json.Marshal(occurrences)
	if err != nil {
		return fmt.Errorf("failed to marshal occurrences: %w", err)
	}
	return v.client.Set(ctx, occurrencesKey(eventID), payload, v.occurrencesTTL).Err()
}

// InvalidateOccurrences drops the cached expansion after an event update.
func (v *ValkeyClient) InvalidateOccurrences(ctx context.Context, eventID int64) error {
	return v.client.Del(ctx, occurrencesKey(eventID)).Err()
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}
