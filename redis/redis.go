package redis

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

func refreshKey(tokenID string) string {
	return "refresh:" + tokenID
}

// StoreRefreshToken records a refresh token ID for a user so sign-out can
// revoke it. The entry expires with the token itself.
func StoreRefreshToken(tokenID string, userID uint, ttl time.Duration) error {
	return Client.Set(Ctx, refreshKey(tokenID), strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

// RefreshTokenUser returns the user ID a refresh token was issued to, or an
// error if the token was revoked or never stored.
func RefreshTokenUser(tokenID string) (uint, error) {
	val, err := Client.Get(Ctx, refreshKey(tokenID)).Result()
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// RevokeRefreshToken deletes a refresh token ID. Subsequent refresh attempts
// with that token fail.
func RevokeRefreshToken(tokenID string) error {
	return Client.Del(Ctx, refreshKey(tokenID)).Err()
}

func oauthKey(nonce string) string {
	return "oauth:" + nonce
}

// StoreOAuthNonce records the state nonce handed to the OAuth provider so the
// callback can tell our redirects from forged ones.
func StoreOAuthNonce(nonce string, ttl time.Duration) error {
	return Client.Set(Ctx, oauthKey(nonce), "1", ttl).Err()
}

// ConsumeOAuthNonce checks a callback's nonce and deletes it in one step, so
// a state value cannot be replayed.
func ConsumeOAuthNonce(nonce string) error {
	return Client.GetDel(Ctx, oauthKey(nonce)).Err()
}
