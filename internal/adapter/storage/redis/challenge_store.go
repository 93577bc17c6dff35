package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"stablecoin-relay-gateway/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// consumeScript deletes the challenge only when its stored nonce matches the
// candidate. Running it as a script makes check-and-delete atomic, so two
// concurrent verifications cannot both consume the same nonce.
var consumeScript = goredis.NewScript(`
local raw = redis.call('GET', KEYS[1])
if not raw then
	return 0
end
local ch = cjson.decode(raw)
if ch.nonce ~= ARGV[1] then
	return 0
end
redis.call('DEL', KEYS[1])
return 1
`)

// ChallengeStore implements ports.ChallengeStore on Redis. Challenges ride on
// key TTLs for expiry; nothing here touches durable storage.
type ChallengeStore struct {
	client *goredis.Client
	prefix string
}

// NewChallengeStore creates a new Redis-backed challenge store.
func NewChallengeStore(client *goredis.Client) *ChallengeStore {
	return &ChallengeStore{
		client: client,
		prefix: "challenge:",
	}
}

func (s *ChallengeStore) key(address string) string {
	return s.prefix + strings.ToLower(address)
}

// Put stores the challenge under the address with the given TTL, replacing
// any prior unconsumed challenge.
func (s *ChallengeStore) Put(ctx context.Context, address string, ch domain.Challenge, ttl time.Duration) error {
	raw, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}
	if err := s.client.Set(ctx, s.key(address), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis challenge put: %w", err)
	}
	return nil
}

// ConsumeIfMatch atomically deletes the stored challenge when its nonce
// matches. Returns true only if this call performed the delete.
func (s *ChallengeStore) ConsumeIfMatch(ctx context.Context, address, nonce string) (bool, error) {
	res, err := consumeScript.Run(ctx, s.client, []string{s.key(address)}, nonce).Int()
	if err != nil {
		return false, fmt.Errorf("redis challenge consume: %w", err)
	}
	return res == 1, nil
}
