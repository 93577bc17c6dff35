package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"stablecoin-relay-gateway/config"
	"stablecoin-relay-gateway/internal/core/domain"
	"stablecoin-relay-gateway/internal/core/ports/mocks"

	"github.com/ethereum/go-ethereum/accounts"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func authTestConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{Domain: "pay.example.com", NonceTTL: 5 * time.Minute},
	}
}

func setupChallengeAuth(t *testing.T) (*ChallengeAuthService, *mocks.MockChallengeStore, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockChallengeStore(ctrl)
	svc := NewChallengeAuthService(authTestConfig(), store, zerolog.Nop())
	return svc, store, ctrl
}

func TestGenerateNonce(t *testing.T) {
	svc, store, ctrl := setupChallengeAuth(t)
	defer ctrl.Finish()

	ctx := context.Background()
	address := "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"

	var stored domain.Challenge
	store.EXPECT().
		Put(ctx, strings.ToLower(address), gomock.Any(), 5*time.Minute).
		DoAndReturn(func(_ context.Context, _ string, ch domain.Challenge, _ time.Duration) error {
			stored = ch
			return nil
		})

	nonce, err := svc.GenerateNonce(ctx, address)
	require.NoError(t, err)
	assert.Len(t, nonce, 32, "nonce must encode 128 bits as hex")
	assert.Equal(t, nonce, stored.Nonce)
	assert.False(t, stored.IssuedAt.IsZero())
}

func TestGenerateNonce_InvalidAddress(t *testing.T) {
	svc, _, ctrl := setupChallengeAuth(t)
	defer ctrl.Finish()

	_, err := svc.GenerateNonce(context.Background(), "not-an-address")
	assert.Error(t, err)
}

func TestBuildMessage_ContainsAllParts(t *testing.T) {
	svc, _, ctrl := setupChallengeAuth(t)
	defer ctrl.Finish()

	msg := svc.BuildMessage("0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B", "deadbeef", 137)
	assert.Contains(t, msg, "pay.example.com")
	assert.Contains(t, msg, "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B")
	assert.Contains(t, msg, "Chain ID: 137")
	assert.Contains(t, msg, "Nonce: deadbeef")
	assert.Contains(t, msg, "Version: 1")
}

func TestVerify_Success(t *testing.T) {
	svc, store, ctrl := setupChallengeAuth(t)
	defer ctrl.Finish()

	ctx := context.Background()
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey)

	nonce := "00112233445566778899aabbccddeeff"
	msg := svc.BuildMessage(address.Hex(), nonce, 1)

	sig, err := ethcrypto.Sign(accounts.TextHash([]byte(msg)), key)
	require.NoError(t, err)
	sig[64] += 27 // wallets emit 27/28

	store.EXPECT().
		ConsumeIfMatch(ctx, strings.ToLower(address.Hex()), nonce).
		Return(true, nil)

	verified, ok := svc.Verify(ctx, address.Hex(), msg, sig)
	assert.True(t, ok)
	assert.Equal(t, address.Hex(), verified)
}

func TestVerify_WrongSigner(t *testing.T) {
	svc, _, ctrl := setupChallengeAuth(t)
	defer ctrl.Finish()

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	otherKey, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	claimed := ethcrypto.PubkeyToAddress(key.PublicKey)

	nonce := "00112233445566778899aabbccddeeff"
	msg := svc.BuildMessage(claimed.Hex(), nonce, 1)
	sig, err := ethcrypto.Sign(accounts.TextHash([]byte(msg)), otherKey)
	require.NoError(t, err)
	sig[64] += 27

	// The store is never touched; a forged signature must not burn the nonce.
	_, ok := svc.Verify(context.Background(), claimed.Hex(), msg, sig)
	assert.False(t, ok)
}

func TestVerify_NonceConsumedOrMissing(t *testing.T) {
	svc, store, ctrl := setupChallengeAuth(t)
	defer ctrl.Finish()

	ctx := context.Background()
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey)

	nonce := "00112233445566778899aabbccddeeff"
	msg := svc.BuildMessage(address.Hex(), nonce, 1)
	sig, err := ethcrypto.Sign(accounts.TextHash([]byte(msg)), key)
	require.NoError(t, err)
	sig[64] += 27

	// First call wins, second finds nothing stored.
	gomock.InOrder(
		store.EXPECT().ConsumeIfMatch(ctx, strings.ToLower(address.Hex()), nonce).Return(true, nil),
		store.EXPECT().ConsumeIfMatch(ctx, strings.ToLower(address.Hex()), nonce).Return(false, nil),
	)

	_, ok := svc.Verify(ctx, address.Hex(), msg, sig)
	assert.True(t, ok)
	_, ok = svc.Verify(ctx, address.Hex(), msg, sig)
	assert.False(t, ok)
}

func TestVerify_MessageWithoutNonce(t *testing.T) {
	svc, _, ctrl := setupChallengeAuth(t)
	defer ctrl.Finish()

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey)

	msg := "pay.example.com wants you to sign in with your wallet"
	sig, err := ethcrypto.Sign(accounts.TextHash([]byte(msg)), key)
	require.NoError(t, err)
	sig[64] += 27

	_, ok := svc.Verify(context.Background(), address.Hex(), msg, sig)
	assert.False(t, ok)
}

func TestVerify_MalformedSignature(t *testing.T) {
	svc, _, ctrl := setupChallengeAuth(t)
	defer ctrl.Finish()

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(key.PublicKey)
	msg := svc.BuildMessage(address.Hex(), "00112233445566778899aabbccddeeff", 1)

	_, ok := svc.Verify(context.Background(), address.Hex(), msg, []byte{0x01})
	assert.False(t, ok)
}
