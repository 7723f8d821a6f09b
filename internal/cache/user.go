package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/findash/findash/internal/model"
)

const (
	// userIDPrefix is the Redis key prefix for user-by-id entries.
	userIDPrefix = "user:id:"
	// userEmailPrefix is the Redis key prefix for user-by-email entries.
	userEmailPrefix = "user:email:"
	// userCacheTTL is the time-to-live for cached users.
	userCacheTTL = 5 * time.Minute
)

// cachedUser is the Redis representation of a user. The password hash is
// cached too so a hit can serve the full record; it never leaves the
// process because the model excludes it from JSON.
type cachedUser struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// GetUserByID retrieves a cached user by id.
// Returns nil on a miss or a corrupted entry; never an error the caller
// must act on.
func (c *Cache) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return c.getUser(ctx, userIDPrefix+strconv.FormatInt(id, 10))
}

// GetUserByEmail retrieves a cached user by email.
func (c *Cache) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return c.getUser(ctx, userEmailPrefix+email)
}

// SetUser caches a user under both its id and email keys.
func (c *Cache) SetUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(cachedUser{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, userIDPrefix+strconv.FormatInt(user.ID, 10), data, userCacheTTL)
	pipe.Set(ctx, userEmailPrefix+user.Email, data, userCacheTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// InvalidateUser drops both cache keys for a user. Called on every
// user write so readers never see a stale row past the write.
func (c *Cache) InvalidateUser(ctx context.Context, user *model.User) error {
	keys := []string{userIDPrefix + strconv.FormatInt(user.ID, 10)}
	if user.Email != "" {
		keys = append(keys, userEmailPrefix+user.Email)
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *Cache) getUser(ctx context.Context, key string) (*model.User, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, nil //nolint:nilerr
	}

	var cached cachedUser
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &model.User{
		ID:           cached.ID,
		Name:         cached.Name,
		Email:        cached.Email,
		PasswordHash: cached.PasswordHash,
		CreatedAt:    cached.CreatedAt,
	}, nil
}
