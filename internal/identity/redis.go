package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sharemark/sharemark/internal/logger"
)

const (
	// KeyPrefixAccount is the prefix for account record keys
	KeyPrefixAccount = "sharemark:account:"
	// KeyPrefixGroupMembers is the prefix for group member set keys
	KeyPrefixGroupMembers = "sharemark:group:"
	// KeyAllGroups is the key for the set of all group names
	KeyAllGroups = "sharemark:groups:all"
)

// AccountKey returns the Redis key for an account record
func AccountKey(username string) string {
	return KeyPrefixAccount + username
}

// GroupMembersKey returns the Redis key for a group's member set
func GroupMembersKey(name string) string {
	return KeyPrefixGroupMembers + name + ":members"
}

// accountRecord is the stored shape of an account.
type accountRecord struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// RedisResolver answers identity questions from Redis. The records are
// mirrored there by the host server; this side never writes them.
type RedisResolver struct {
	client *redis.Client
	logger logger.Logger
}

// NewRedisResolver creates a Redis-backed resolver
func NewRedisResolver(client *redis.Client, log logger.Logger) *RedisResolver {
	return &RedisResolver{
		client: client,
		logger: log,
	}
}

var _ Resolver = (*RedisResolver)(nil)

// AccountExists reports whether an account record is present. Redis errors
// degrade to false: a missed merge beats a blocked response.
func (r *RedisResolver) AccountExists(ctx context.Context, username string) bool {
	n, err := r.client.Exists(ctx, AccountKey(username)).Result()
	if err != nil {
		r.logger.Warn("account existence check failed",
			logger.String("username", username),
			logger.Error(err))
		return false
	}
	return n > 0
}

// Group resolves a group by membership in the group registry set.
func (r *RedisResolver) Group(ctx context.Context, name string) (Group, error) {
	ok, err := r.client.SIsMember(ctx, KeyAllGroups, name).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve group %s: %w", name, err)
	}
	if !ok {
		return nil, ErrGroupNotFound
	}
	return &redisGroup{client: r.client, name: name, logger: r.logger}, nil
}

// DisplayName returns the stored display name, falling back to the account
// name when the record carries none.
func (r *RedisResolver) DisplayName(ctx context.Context, username string) (string, error) {
	data, err := r.client.Get(ctx, AccountKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrAccountNotFound
		}
		return "", fmt.Errorf("failed to get account: %w", err)
	}

	var record accountRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return "", fmt.Errorf("failed to unmarshal account: %w", err)
	}

	if record.Name == "" {
		return username, nil
	}
	return record.Name, nil
}

// redisGroup is a resolved group handle over a member set.
type redisGroup struct {
	client *redis.Client
	name   string
	logger logger.Logger
}

func (g *redisGroup) IsMember(ctx context.Context, username string) bool {
	ok, err := g.client.SIsMember(ctx, GroupMembersKey(g.name), username).Result()
	if err != nil {
		g.logger.Warn("group membership check failed",
			logger.String("group", g.name),
			logger.String("username", username),
			logger.Error(err))
		return false
	}
	return ok
}
