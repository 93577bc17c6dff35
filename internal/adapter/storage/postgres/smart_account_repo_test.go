package postgres

import (
	"context"
	"strings"
	"testing"
	"time"

	"stablecoin-relay-gateway/internal/core/domain"
	"stablecoin-relay-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSmartAccount(userID uuid.UUID) *domain.SmartAccount {
	return &domain.SmartAccount{
		ID:           uuid.New(),
		UserID:       userID,
		ChainID:      137,
		Address:      "0x9999999999999999999999999999999999999999",
		Salt:         strings.Repeat("ab", 32),
		OwnerAddress: "0x7777777777777777777777777777777777777777",
		CustodyKind:  domain.CustodyManaged,
		Deployed:     false,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func smartAccountColumns() []string {
	return []string{"id", "user_id", "chain_id", "address", "salt", "owner_address",
		"custody_kind", "deployed", "deploy_tx_hash", "created_at"}
}

func TestSmartAccountRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSmartAccountRepo(mock)
	acc := newTestSmartAccount(uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO smart_accounts").
		WithArgs(
			acc.ID, acc.UserID, acc.ChainID, acc.Address, acc.Salt, acc.OwnerAddress,
			acc.CustodyKind, acc.Deployed, acc.DeployTxHash, acc.CreatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	assert.NoError(t, repo.Create(context.Background(), dbTx, acc))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSmartAccountRepo_Create_UniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSmartAccountRepo(mock)
	acc := newTestSmartAccount(uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO smart_accounts").
		WithArgs(
			acc.ID, acc.UserID, acc.ChainID, acc.Address, acc.Salt, acc.OwnerAddress,
			acc.CustodyKind, acc.Deployed, acc.DeployTxHash, acc.CreatedAt,
		).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "smart_accounts_user_chain_key"})

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), dbTx, acc)
	assert.ErrorIs(t, err, ports.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSmartAccountRepo_GetByUserAndChain(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSmartAccountRepo(mock)
	acc := newTestSmartAccount(uuid.New())

	mock.ExpectQuery("SELECT .+ FROM smart_accounts WHERE user_id .+ AND chain_id").
		WithArgs(acc.UserID, acc.ChainID).
		WillReturnRows(pgxmock.NewRows(smartAccountColumns()).AddRow(
			acc.ID, acc.UserID, acc.ChainID, acc.Address, acc.Salt, acc.OwnerAddress,
			acc.CustodyKind, acc.Deployed, acc.DeployTxHash, acc.CreatedAt,
		))

	result, err := repo.GetByUserAndChain(context.Background(), acc.UserID, acc.ChainID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, acc.Address, result.Address)
	assert.Equal(t, acc.Salt, result.Salt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSmartAccountRepo_GetByUserAndChain_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSmartAccountRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM smart_accounts").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(smartAccountColumns()))

	result, err := repo.GetByUserAndChain(context.Background(), uuid.New(), 137)
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSmartAccountRepo_MarkDeployed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSmartAccountRepo(mock)
	id := uuid.New()

	mock.ExpectExec("UPDATE smart_accounts SET deployed").
		WithArgs(id, "0x123").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.MarkDeployed(context.Background(), id, "0x123"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
