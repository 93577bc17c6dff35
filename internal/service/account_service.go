package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"stablecoin-relay-gateway/config"
	"stablecoin-relay-gateway/internal/core/domain"
	"stablecoin-relay-gateway/internal/core/ports"
	"stablecoin-relay-gateway/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AccountService implements ports.AccountProvisioner. It owns the lifecycle
// of counterfactual smart accounts and, for managed users, their vaulted
// signing keys.
type AccountService struct {
	users      ports.UserRepository
	accounts   ports.SmartAccountRepository
	keys       ports.SigningKeyRepository
	signer     ports.TypedDataSigner
	vault      ports.KeyVault
	transactor ports.DBTransactor
	cfg        *config.Config
	log        zerolog.Logger
}

func NewAccountService(
	users ports.UserRepository,
	accounts ports.SmartAccountRepository,
	keys ports.SigningKeyRepository,
	signer ports.TypedDataSigner,
	vault ports.KeyVault,
	transactor ports.DBTransactor,
	cfg *config.Config,
	log zerolog.Logger,
) *AccountService {
	return &AccountService{
		users:      users,
		accounts:   accounts,
		keys:       keys,
		signer:     signer,
		vault:      vault,
		transactor: transactor,
		cfg:        cfg,
		log:        log,
	}
}

// EnsureSmartAccount returns the user's smart account on chainID, creating it
// on first call. Repeat calls return the same persisted row. Concurrent calls
// for the same (user, chain) converge through the uniqueness constraint: the
// losing writer re-reads the winner instead of erroring.
func (s *AccountService) EnsureSmartAccount(ctx context.Context, userID uuid.UUID, chainID int64) (*domain.SmartAccount, error) {
	if s.cfg.Chain(chainID) == nil {
		return nil, apperror.ErrUnsupportedChain(chainID)
	}

	existing, err := s.accounts.GetByUserAndChain(ctx, userID, chainID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if existing != nil {
		return existing, nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound()
	}

	custody := user.Custody()
	var owner common.Address
	var newKey *domain.SigningKey

	switch custody {
	case domain.CustodySelfCustody:
		if !common.IsHexAddress(*user.WalletAddress) {
			return nil, apperror.ErrInvalidAddress()
		}
		owner = common.HexToAddress(*user.WalletAddress)

	case domain.CustodyManaged:
		// Reuse the active key if one exists so the derived address stays
		// stable across re-provisioning. Only a user with no key at all gets
		// a fresh one.
		active, err := s.keys.GetActiveByUser(ctx, userID)
		if err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		if active != nil {
			owner = common.HexToAddress(active.Address)
		} else {
			newKey, err = s.generateSigningKey(userID)
			if err != nil {
				return nil, err
			}
			owner = common.HexToAddress(newKey.Address)
		}
	}

	salt, err := s.ensureSalt(ctx, user)
	if err != nil {
		return nil, err
	}

	address, err := s.signer.CounterfactualAddress(salt, owner)
	if err != nil {
		return nil, err
	}

	account := &domain.SmartAccount{
		ID:           uuid.New(),
		UserID:       userID,
		ChainID:      chainID,
		Address:      address.Hex(),
		Salt:         salt,
		OwnerAddress: owner.Hex(),
		CustodyKind:  custody,
		Deployed:     false,
		CreatedAt:    time.Now().UTC(),
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	defer tx.Rollback(ctx)

	if newKey != nil {
		if err := s.keys.Create(ctx, tx, newKey); err != nil {
			if errors.Is(err, ports.ErrDuplicate) {
				// Lost the race on the one-active-key constraint: a
				// concurrent call vaulted a key first. Converge on its rows.
				return s.convergeOnWinner(ctx, userID, chainID, salt, custody)
			}
			return nil, apperror.ErrDatabaseError(err)
		}
	}
	if err := s.accounts.Create(ctx, tx, account); err != nil {
		if errors.Is(err, ports.ErrDuplicate) {
			// Lost the race: a concurrent provisioning call persisted first.
			winner, readErr := s.accounts.GetByUserAndChain(ctx, userID, chainID)
			if readErr != nil {
				return nil, apperror.ErrDatabaseError(readErr)
			}
			if winner == nil {
				return nil, apperror.ErrDatabaseError(fmt.Errorf("duplicate smart account reported but no row found"))
			}
			return winner, nil
		}
		return nil, apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Int64("chain_id", chainID).
		Str("address", account.Address).
		Str("custody", string(custody)).
		Msg("Smart account provisioned")

	return account, nil
}

// convergeOnWinner resolves a lost provisioning race on the one-active-key
// constraint. If the winner already provisioned this chain its row is
// returned; otherwise the account is derived from the winner's key, since the
// loser's generated key was never persisted.
func (s *AccountService) convergeOnWinner(ctx context.Context, userID uuid.UUID, chainID int64, salt string, custody domain.CustodyKind) (*domain.SmartAccount, error) {
	winner, err := s.accounts.GetByUserAndChain(ctx, userID, chainID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if winner != nil {
		return winner, nil
	}

	active, err := s.keys.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if active == nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("duplicate signing key reported but no active key found"))
	}

	owner := common.HexToAddress(active.Address)
	address, err := s.signer.CounterfactualAddress(salt, owner)
	if err != nil {
		return nil, err
	}

	account := &domain.SmartAccount{
		ID:           uuid.New(),
		UserID:       userID,
		ChainID:      chainID,
		Address:      address.Hex(),
		Salt:         salt,
		OwnerAddress: owner.Hex(),
		CustodyKind:  custody,
		Deployed:     false,
		CreatedAt:    time.Now().UTC(),
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	defer tx.Rollback(ctx)

	if err := s.accounts.Create(ctx, tx, account); err != nil {
		if errors.Is(err, ports.ErrDuplicate) {
			dup, readErr := s.accounts.GetByUserAndChain(ctx, userID, chainID)
			if readErr != nil {
				return nil, apperror.ErrDatabaseError(readErr)
			}
			if dup == nil {
				return nil, apperror.ErrDatabaseError(fmt.Errorf("duplicate smart account reported but no row found"))
			}
			return dup, nil
		}
		return nil, apperror.ErrDatabaseError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return account, nil
}

// RotateSigningKey revokes a managed user's active key and vaults a fresh
// one atomically. Existing smart accounts keep their persisted address; only
// accounts provisioned after the rotation derive from the new owner key.
func (s *AccountService) RotateSigningKey(ctx context.Context, userID uuid.UUID) (*domain.SigningKey, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound()
	}
	if user.Custody() == domain.CustodySelfCustody {
		return nil, apperror.Validation("self-custody users have no managed signing key to rotate")
	}

	current, err := s.keys.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	newKey, err := s.generateSigningKey(userID)
	if err != nil {
		return nil, err
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	defer tx.Rollback(ctx)

	if current != nil {
		if err := s.keys.Revoke(ctx, tx, current.ID, time.Now().UTC()); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
	}
	if err := s.keys.Create(ctx, tx, newKey); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Str("new_address", newKey.Address).
		Msg("Signing key rotated")

	return newKey, nil
}

// generateSigningKey mints a secp256k1 key and vaults its raw bytes. The
// plaintext is zeroed before returning.
func (s *AccountService) generateSigningKey(userID uuid.UUID) (*domain.SigningKey, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generating signing key: %w", err))
	}

	raw := ethcrypto.FromECDSA(key)
	encrypted, err := s.vault.Encrypt(raw)
	for i := range raw {
		raw[i] = 0
	}
	if err != nil {
		return nil, apperror.ErrVaultFailure(err)
	}

	return &domain.SigningKey{
		ID:           uuid.New(),
		UserID:       userID,
		Address:      ethcrypto.PubkeyToAddress(key.PublicKey).Hex(),
		EncryptedKey: encrypted,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// ensureSalt returns the user's stable CREATE2 salt, minting and persisting
// one on first provisioning. Concurrent first-time callers converge on
// whichever candidate the database kept.
func (s *AccountService) ensureSalt(ctx context.Context, user *domain.User) (string, error) {
	if user.AccountSalt != nil && *user.AccountSalt != "" {
		return *user.AccountSalt, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", apperror.InternalError(fmt.Errorf("generating account salt: %w", err))
	}

	salt, err := s.users.EnsureAccountSalt(ctx, user.ID, hex.EncodeToString(buf))
	if err != nil {
		return "", apperror.ErrDatabaseError(err)
	}
	return salt, nil
}
