package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"stablecoin-relay-gateway/config"
	"stablecoin-relay-gateway/internal/core/domain"
	"stablecoin-relay-gateway/internal/core/ports"
	"stablecoin-relay-gateway/pkg/apperror"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
)

const challengeVersion = "1"

// ChallengeAuthService implements the wallet sign-in challenge flow: issue a
// nonce, render a canonical message, verify the wallet's signature over it
// and consume the nonce exactly once.
type ChallengeAuthService struct {
	cfg   *config.Config
	store ports.ChallengeStore
	log   zerolog.Logger
}

func NewChallengeAuthService(cfg *config.Config, store ports.ChallengeStore, log zerolog.Logger) *ChallengeAuthService {
	return &ChallengeAuthService{cfg: cfg, store: store, log: log}
}

// GenerateNonce issues a fresh 128-bit challenge nonce for address and stores
// it under the lowercased address with a bounded TTL. A prior unconsumed
// nonce for the same address is overwritten.
func (s *ChallengeAuthService) GenerateNonce(ctx context.Context, address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", apperror.ErrInvalidAddress()
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", apperror.InternalError(fmt.Errorf("generating nonce: %w", err))
	}
	nonce := hex.EncodeToString(buf)

	challenge := domain.Challenge{Nonce: nonce, IssuedAt: time.Now().UTC()}
	if err := s.store.Put(ctx, strings.ToLower(address), challenge, s.cfg.Auth.NonceTTL); err != nil {
		return "", apperror.InternalError(fmt.Errorf("storing challenge: %w", err))
	}

	s.log.Debug().
		Str("address", strings.ToLower(address)).
		Msg("Challenge nonce issued")

	return nonce, nil
}

// BuildMessage renders the canonical challenge string the wallet signs. The
// format is stable: Verify parses the nonce back out of it.
func (s *ChallengeAuthService) BuildMessage(address, nonce string, chainID int64) string {
	return fmt.Sprintf(
		"%s wants you to sign in with your wallet:\n%s\n\nVersion: %s\nChain ID: %d\nNonce: %s",
		s.cfg.Auth.Domain, address, challengeVersion, chainID, nonce,
	)
}

// Verify checks a signed challenge. On success it atomically consumes the
// stored nonce and returns the checksummed address with true. Every failure
// mode returns ("", false); the distinction between a bad signature and a
// stale nonce is logged, not surfaced.
func (s *ChallengeAuthService) Verify(ctx context.Context, address, message string, signature []byte) (string, bool) {
	if !common.IsHexAddress(address) {
		return "", false
	}
	claimed := common.HexToAddress(address)

	nonce, ok := parseNonce(message)
	if !ok {
		s.log.Debug().Str("address", address).Msg("Challenge message has no nonce line")
		return "", false
	}

	recovered, err := recoverPersonalSigner(message, signature)
	if err != nil {
		s.log.Debug().Err(err).Str("address", address).Msg("Challenge signature recovery failed")
		return "", false
	}
	if recovered != claimed {
		s.log.Debug().
			Str("claimed", claimed.Hex()).
			Str("recovered", recovered.Hex()).
			Msg("Challenge signer mismatch")
		return "", false
	}

	// Consume only after the signature checks out, so a forged attempt
	// cannot burn somebody's outstanding nonce.
	consumed, err := s.store.ConsumeIfMatch(ctx, strings.ToLower(address), nonce)
	if err != nil {
		s.log.Error().Err(err).Str("address", address).Msg("Challenge store lookup failed")
		return "", false
	}
	if !consumed {
		s.log.Debug().Str("address", address).Msg("Challenge nonce absent, expired or mismatched")
		return "", false
	}

	return claimed.Hex(), true
}

// parseNonce extracts the nonce from a challenge message rendered by
// BuildMessage.
func parseNonce(message string) (string, bool) {
	for _, line := range strings.Split(message, "\n") {
		if rest, ok := strings.CutPrefix(line, "Nonce: "); ok && rest != "" {
			return rest, true
		}
	}
	return "", false
}

// recoverPersonalSigner recovers the signing address from an EIP-191
// personal-message signature. Accepts both 0/1 and 27/28 recovery ids.
func recoverPersonalSigner(message string, signature []byte) (common.Address, error) {
	if len(signature) != 65 {
		return common.Address{}, fmt.Errorf("signature must be 65 bytes, got %d", len(signature))
	}
	sig := make([]byte, 65)
	copy(sig, signature)
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	pub, err := ethcrypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("recovering public key: %w", err)
	}
	return ethcrypto.PubkeyToAddress(*pub), nil
}
