package redis

import (
	"context"
	"testing"
	"time"

	"stablecoin-relay-gateway/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "0xab5801a7d398351b8be11c439e05c5b3259aec9b"

func newTestStore(t *testing.T) (*ChallengeStore, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	return NewChallengeStore(client), s
}

func TestChallengeStore_PutAndConsume(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	ch := domain.Challenge{Nonce: "nonce-abc", IssuedAt: time.Now().UTC()}
	require.NoError(t, store.Put(ctx, testAddress, ch, 5*time.Minute))

	ok, err := store.ConsumeIfMatch(ctx, testAddress, "nonce-abc")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestChallengeStore_ConsumeIsSingleUse(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	ch := domain.Challenge{Nonce: "nonce-abc", IssuedAt: time.Now().UTC()}
	require.NoError(t, store.Put(ctx, testAddress, ch, 5*time.Minute))

	ok, err := store.ConsumeIfMatch(ctx, testAddress, "nonce-abc")
	require.NoError(t, err)
	assert.True(t, ok)

	// Second consume finds nothing.
	ok, err = store.ConsumeIfMatch(ctx, testAddress, "nonce-abc")
	require.NoError(t, err)
	assert.False(t, ok, "a consumed nonce must not verify again")
}

func TestChallengeStore_ConsumeWrongNonce(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	ch := domain.Challenge{Nonce: "nonce-abc", IssuedAt: time.Now().UTC()}
	require.NoError(t, store.Put(ctx, testAddress, ch, 5*time.Minute))

	ok, err := store.ConsumeIfMatch(ctx, testAddress, "nonce-other")
	require.NoError(t, err)
	assert.False(t, ok)

	// The mismatch must not consume the stored challenge.
	ok, err = store.ConsumeIfMatch(ctx, testAddress, "nonce-abc")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestChallengeStore_ConsumeNeverIssued(t *testing.T) {
	store, _ := newTestStore(t)

	ok, err := store.ConsumeIfMatch(context.Background(), testAddress, "nonce-abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChallengeStore_Expiry(t *testing.T) {
	store, s := newTestStore(t)
	ctx := context.Background()

	ch := domain.Challenge{Nonce: "nonce-abc", IssuedAt: time.Now().UTC()}
	require.NoError(t, store.Put(ctx, testAddress, ch, 1*time.Second))

	s.FastForward(2 * time.Second)

	ok, err := store.ConsumeIfMatch(ctx, testAddress, "nonce-abc")
	require.NoError(t, err)
	assert.False(t, ok, "expired challenge must not verify")
}

func TestChallengeStore_PutOverwritesPrior(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testAddress, domain.Challenge{Nonce: "old"}, 5*time.Minute))
	require.NoError(t, store.Put(ctx, testAddress, domain.Challenge{Nonce: "new"}, 5*time.Minute))

	ok, err := store.ConsumeIfMatch(ctx, testAddress, "old")
	require.NoError(t, err)
	assert.False(t, ok, "reissuing invalidates the prior nonce")

	ok, err = store.ConsumeIfMatch(ctx, testAddress, "new")
	require.NoError(t, err)
	assert.True(t, ok)
}
