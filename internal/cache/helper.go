package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// GroupListTTL bounds staleness of the cached group catalog.
const GroupListTTL = 60 * time.Second

// GetJSON fetches key and unmarshals it into dest.
// Returns false when the cache is disabled, the key is absent, or the
// stored payload cannot be decoded.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// SetJSON marshals value and stores it under key with the given TTL.
// Best-effort: failures are swallowed, the database remains authoritative.
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, raw, ttl)
}

// InvalidatePrefix removes all keys matching prefix*.
func InvalidatePrefix(ctx context.Context, prefix string) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

// PublishUser publishes a payload on the per-user notification channel.
// Delivery is best-effort; feed reads stay polling-based.
func PublishUser(ctx context.Context, userID uint, payload interface{}) error {
	if client == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	channel := fmt.Sprintf("notifications:user:%d", userID)
	return client.Publish(ctx, channel, raw).Err()
}
