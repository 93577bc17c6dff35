package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"stablecoin-relay-gateway/config"
	"stablecoin-relay-gateway/internal/core/domain"
	"stablecoin-relay-gateway/internal/core/ports"
	"stablecoin-relay-gateway/internal/core/ports/mocks"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// mockTx implements pgx.Tx for testing.
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

type accountTestDeps struct {
	svc        *AccountService
	users      *mocks.MockUserRepository
	accounts   *mocks.MockSmartAccountRepository
	keys       *mocks.MockSigningKeyRepository
	signer     *mocks.MockTypedDataSigner
	vault      *mocks.MockKeyVault
	transactor *mocks.MockDBTransactor
	ctrl       *gomock.Controller
}

func setupAccountService(t *testing.T) *accountTestDeps {
	ctrl := gomock.NewController(t)
	d := &accountTestDeps{
		users:      mocks.NewMockUserRepository(ctrl),
		accounts:   mocks.NewMockSmartAccountRepository(ctrl),
		keys:       mocks.NewMockSigningKeyRepository(ctrl),
		signer:     mocks.NewMockTypedDataSigner(ctrl),
		vault:      mocks.NewMockKeyVault(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		ctrl:       ctrl,
	}
	cfg := &config.Config{
		Chains: []config.ChainConfig{{ChainID: 137, Forwarder: "0x2222222222222222222222222222222222222222"}},
	}
	d.svc = NewAccountService(
		d.users, d.accounts, d.keys, d.signer, d.vault, d.transactor, cfg, zerolog.Nop(),
	)
	return d
}

func TestEnsureSmartAccount_ReturnsExisting(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	existing := &domain.SmartAccount{ID: uuid.New(), UserID: userID, ChainID: 137}

	d.accounts.EXPECT().GetByUserAndChain(ctx, userID, int64(137)).Return(existing, nil)

	got, err := d.svc.EnsureSmartAccount(ctx, userID, 137)
	require.NoError(t, err)
	assert.Same(t, existing, got)
}

func TestEnsureSmartAccount_UnsupportedChain(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.EnsureSmartAccount(context.Background(), uuid.New(), 999)
	assert.Error(t, err)
}

func TestEnsureSmartAccount_UserNotFound(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()

	d.accounts.EXPECT().GetByUserAndChain(ctx, userID, int64(137)).Return(nil, nil)
	d.users.EXPECT().GetByID(ctx, userID).Return(nil, nil)

	_, err := d.svc.EnsureSmartAccount(ctx, userID, 137)
	assert.Error(t, err)
}

func TestEnsureSmartAccount_ManagedFirstTime(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	derived := common.HexToAddress("0x9999999999999999999999999999999999999999")
	tx := &mockTx{}

	d.accounts.EXPECT().GetByUserAndChain(ctx, userID, int64(137)).Return(nil, nil)
	d.users.EXPECT().GetByID(ctx, userID).Return(&domain.User{ID: userID}, nil)
	d.keys.EXPECT().GetActiveByUser(ctx, userID).Return(nil, nil)
	d.vault.EXPECT().Encrypt(gomock.Any()).Return("encrypted-key", nil)
	d.users.EXPECT().
		EnsureAccountSalt(ctx, userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, salt string) (string, error) {
			assert.Len(t, salt, 64)
			return salt, nil
		})
	d.signer.EXPECT().CounterfactualAddress(gomock.Any(), gomock.Any()).Return(derived, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)

	var createdKey *domain.SigningKey
	d.keys.EXPECT().
		Create(ctx, tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, key *domain.SigningKey) error {
			createdKey = key
			return nil
		})

	var createdAccount *domain.SmartAccount
	d.accounts.EXPECT().
		Create(ctx, tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, acc *domain.SmartAccount) error {
			createdAccount = acc
			return nil
		})

	got, err := d.svc.EnsureSmartAccount(ctx, userID, 137)
	require.NoError(t, err)

	require.NotNil(t, createdKey)
	assert.Equal(t, userID, createdKey.UserID)
	assert.True(t, createdKey.Active)
	assert.Equal(t, "encrypted-key", createdKey.EncryptedKey)
	assert.True(t, common.IsHexAddress(createdKey.Address))

	require.NotNil(t, createdAccount)
	assert.Same(t, createdAccount, got)
	assert.Equal(t, derived.Hex(), got.Address)
	assert.Equal(t, createdKey.Address, got.OwnerAddress)
	assert.Equal(t, domain.CustodyManaged, got.CustodyKind)
	assert.False(t, got.Deployed)
}

func TestEnsureSmartAccount_ManagedReusesActiveKey(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	salt := strings.Repeat("ab", 32)
	keyAddr := "0x7777777777777777777777777777777777777777"
	derived := common.HexToAddress("0x9999999999999999999999999999999999999999")
	tx := &mockTx{}

	d.accounts.EXPECT().GetByUserAndChain(ctx, userID, int64(137)).Return(nil, nil)
	d.users.EXPECT().GetByID(ctx, userID).Return(&domain.User{ID: userID, AccountSalt: &salt}, nil)
	d.keys.EXPECT().GetActiveByUser(ctx, userID).Return(&domain.SigningKey{
		ID: uuid.New(), UserID: userID, Address: keyAddr, Active: true,
	}, nil)
	d.signer.EXPECT().CounterfactualAddress(salt, common.HexToAddress(keyAddr)).Return(derived, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	// No key creation: the active key is reused.
	d.accounts.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	got, err := d.svc.EnsureSmartAccount(ctx, userID, 137)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(keyAddr).Hex(), got.OwnerAddress)
	assert.Equal(t, salt, got.Salt)
}

func TestEnsureSmartAccount_SelfCustody(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	wallet := "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"
	salt := strings.Repeat("cd", 32)
	derived := common.HexToAddress("0x9999999999999999999999999999999999999999")
	tx := &mockTx{}

	d.accounts.EXPECT().GetByUserAndChain(ctx, userID, int64(137)).Return(nil, nil)
	d.users.EXPECT().GetByID(ctx, userID).Return(&domain.User{
		ID: userID, WalletAddress: &wallet, AccountSalt: &salt,
	}, nil)
	d.signer.EXPECT().CounterfactualAddress(salt, common.HexToAddress(wallet)).Return(derived, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accounts.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	got, err := d.svc.EnsureSmartAccount(ctx, userID, 137)
	require.NoError(t, err)
	assert.Equal(t, domain.CustodySelfCustody, got.CustodyKind)
	assert.Equal(t, common.HexToAddress(wallet).Hex(), got.OwnerAddress)
}

func TestEnsureSmartAccount_DuplicateRaceReturnsWinner(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	wallet := "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"
	salt := strings.Repeat("cd", 32)
	tx := &mockTx{}
	winner := &domain.SmartAccount{ID: uuid.New(), UserID: userID, ChainID: 137}

	gomock.InOrder(
		d.accounts.EXPECT().GetByUserAndChain(ctx, userID, int64(137)).Return(nil, nil),
		d.accounts.EXPECT().GetByUserAndChain(ctx, userID, int64(137)).Return(winner, nil),
	)
	d.users.EXPECT().GetByID(ctx, userID).Return(&domain.User{
		ID: userID, WalletAddress: &wallet, AccountSalt: &salt,
	}, nil)
	d.signer.EXPECT().CounterfactualAddress(salt, gomock.Any()).
		Return(common.HexToAddress("0x9999999999999999999999999999999999999999"), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.accounts.EXPECT().Create(ctx, tx, gomock.Any()).Return(ports.ErrDuplicate)

	got, err := d.svc.EnsureSmartAccount(ctx, userID, 137)
	require.NoError(t, err)
	assert.Same(t, winner, got)
}

func TestEnsureSmartAccount_KeyRaceReturnsWinner(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	salt := strings.Repeat("ab", 32)
	tx := &mockTx{}
	winner := &domain.SmartAccount{ID: uuid.New(), UserID: userID, ChainID: 137}

	gomock.InOrder(
		d.accounts.EXPECT().GetByUserAndChain(ctx, userID, int64(137)).Return(nil, nil),
		d.accounts.EXPECT().GetByUserAndChain(ctx, userID, int64(137)).Return(winner, nil),
	)
	d.users.EXPECT().GetByID(ctx, userID).Return(&domain.User{ID: userID, AccountSalt: &salt}, nil)
	d.keys.EXPECT().GetActiveByUser(ctx, userID).Return(nil, nil)
	d.vault.EXPECT().Encrypt(gomock.Any()).Return("encrypted-key", nil)
	d.signer.EXPECT().CounterfactualAddress(salt, gomock.Any()).
		Return(common.HexToAddress("0x9999999999999999999999999999999999999999"), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	// The one-active-key constraint fires: a concurrent call vaulted first.
	d.keys.EXPECT().Create(ctx, tx, gomock.Any()).Return(ports.ErrDuplicate)

	got, err := d.svc.EnsureSmartAccount(ctx, userID, 137)
	require.NoError(t, err)
	assert.Same(t, winner, got)
}

func TestEnsureSmartAccount_KeyRaceDerivesFromWinnerKey(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	salt := strings.Repeat("ab", 32)
	keyAddr := "0x7777777777777777777777777777777777777777"
	derived := common.HexToAddress("0x9999999999999999999999999999999999999999")
	tx := &mockTx{}
	tx2 := &mockTx{}

	// The concurrent winner vaulted a key for another chain, so no account
	// exists here yet; the loser derives its account from the winner's key.
	gomock.InOrder(
		d.accounts.EXPECT().GetByUserAndChain(ctx, userID, int64(137)).Return(nil, nil),
		d.accounts.EXPECT().GetByUserAndChain(ctx, userID, int64(137)).Return(nil, nil),
	)
	d.users.EXPECT().GetByID(ctx, userID).Return(&domain.User{ID: userID, AccountSalt: &salt}, nil)
	gomock.InOrder(
		d.keys.EXPECT().GetActiveByUser(ctx, userID).Return(nil, nil),
		d.keys.EXPECT().GetActiveByUser(ctx, userID).Return(&domain.SigningKey{
			ID: uuid.New(), UserID: userID, Address: keyAddr, Active: true,
		}, nil),
	)
	d.vault.EXPECT().Encrypt(gomock.Any()).Return("encrypted-key", nil)
	gomock.InOrder(
		d.signer.EXPECT().CounterfactualAddress(salt, gomock.Any()).
			Return(common.HexToAddress("0x8888888888888888888888888888888888888888"), nil),
		d.signer.EXPECT().CounterfactualAddress(salt, common.HexToAddress(keyAddr)).
			Return(derived, nil),
	)
	gomock.InOrder(
		d.transactor.EXPECT().Begin(ctx).Return(tx, nil),
		d.transactor.EXPECT().Begin(ctx).Return(tx2, nil),
	)
	d.keys.EXPECT().Create(ctx, tx, gomock.Any()).Return(ports.ErrDuplicate)
	d.accounts.EXPECT().Create(ctx, tx2, gomock.Any()).Return(nil)

	got, err := d.svc.EnsureSmartAccount(ctx, userID, 137)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(keyAddr).Hex(), got.OwnerAddress)
	assert.Equal(t, derived.Hex(), got.Address)
	assert.Equal(t, domain.CustodyManaged, got.CustodyKind)
}

func TestRotateSigningKey(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	current := &domain.SigningKey{ID: uuid.New(), UserID: userID, Active: true}
	tx := &mockTx{}

	d.users.EXPECT().GetByID(ctx, userID).Return(&domain.User{ID: userID}, nil)
	d.keys.EXPECT().GetActiveByUser(ctx, userID).Return(current, nil)
	d.vault.EXPECT().Encrypt(gomock.Any()).Return("encrypted-new", nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.keys.EXPECT().Revoke(ctx, tx, current.ID, gomock.Any()).Return(nil)

	var created *domain.SigningKey
	d.keys.EXPECT().
		Create(ctx, tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, key *domain.SigningKey) error {
			created = key
			return nil
		})

	got, err := d.svc.RotateSigningKey(ctx, userID)
	require.NoError(t, err)
	assert.Same(t, created, got)
	assert.True(t, got.Active)
	assert.NotEqual(t, current.ID, got.ID)
	assert.WithinDuration(t, time.Now(), got.CreatedAt, 5*time.Second)
}

func TestRotateSigningKey_SelfCustodyRejected(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	wallet := "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"

	d.users.EXPECT().GetByID(ctx, userID).Return(&domain.User{ID: userID, WalletAddress: &wallet}, nil)

	_, err := d.svc.RotateSigningKey(ctx, userID)
	assert.Error(t, err)
}
