package service

import (
	"context"
	"fmt"
	"math/big"
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

// forwardRequestDeadline bounds how long a gateway-signed forward request
// stays executable by the relay.
const forwardRequestDeadline = 10 * time.Minute

// BundleService implements ports.BundleOrchestrator. Submit records a pending
// transaction, hands the work to the relay and schedules polling; HandlePoll
// drives each transaction to exactly one terminal state.
type BundleService struct {
	transactions ports.TransactionRepository
	accounts     ports.SmartAccountRepository
	keys         ports.SigningKeyRepository
	vault        ports.KeyVault
	signer       ports.TypedDataSigner
	relay        ports.RelayClient
	queue        ports.TaskQueue
	cfg          *config.Config
	log          zerolog.Logger
}

func NewBundleService(
	transactions ports.TransactionRepository,
	accounts ports.SmartAccountRepository,
	keys ports.SigningKeyRepository,
	vault ports.KeyVault,
	signer ports.TypedDataSigner,
	relay ports.RelayClient,
	queue ports.TaskQueue,
	cfg *config.Config,
	log zerolog.Logger,
) *BundleService {
	return &BundleService{
		transactions: transactions,
		accounts:     accounts,
		keys:         keys,
		vault:        vault,
		signer:       signer,
		relay:        relay,
		queue:        queue,
		cfg:          cfg,
		log:          log,
	}
}

// Submit creates a pending transaction and submits its bundle to the relay.
// A relay failure is recorded on the transaction as EXECUTION_FAILED rather
// than surfaced as an error; the caller reads the outcome off the returned
// transaction. Submit never retries on its own.
func (s *BundleService) Submit(ctx context.Context, req ports.SubmitRequest) (*domain.Transaction, error) {
	if s.cfg.Chain(req.ChainID) == nil {
		return nil, apperror.ErrUnsupportedChain(req.ChainID)
	}
	if len(req.Items) == 0 && len(req.SignedRequests) == 0 {
		return nil, apperror.ErrEmptySubmission()
	}
	// Malformed requests are rejected before any row exists, so a validation
	// failure never leaves a permanently failed transaction behind.
	for i := range req.SignedRequests {
		if err := req.SignedRequests[i].Request.Validate(); err != nil {
			return nil, apperror.Validation(err.Error())
		}
	}
	for i := range req.Items {
		if err := req.Items[i].Validate(); err != nil {
			return nil, apperror.Validation(err.Error())
		}
	}

	var txn *domain.Transaction
	if req.TransactionID != uuid.Nil {
		// Re-submission path: only a still-pending transaction may be
		// submitted again.
		existing, err := s.transactions.GetByID(ctx, req.TransactionID)
		if err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		if existing != nil {
			if existing.IsTerminal() {
				return nil, apperror.ErrTransactionNotPending()
			}
			txn = existing
		}
	}
	if txn == nil {
		txn = &domain.Transaction{
			ID:        req.TransactionID,
			UserID:    req.UserID,
			ChainID:   req.ChainID,
			Status:    domain.TransactionStatusPending,
			CreatedAt: time.Now().UTC(),
		}
		if txn.ID == uuid.Nil {
			txn.ID = uuid.New()
		}
		if err := s.transactions.Create(ctx, txn); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
	}

	var result *ports.BundleResult
	var err error
	if len(req.SignedRequests) > 0 {
		// Self-custody: requests arrive signed, the gateway never sees a key.
		result, err = s.relay.CreateBalanceBundleWithSignedRequests(ctx, req.ChainID, req.SignedRequests)
	} else {
		result, err = s.submitManaged(ctx, txn, req)
	}
	if err != nil {
		return s.failTransaction(ctx, txn, domain.ErrorCodeExecutionFailed,
			fmt.Sprintf("relay submission failed: %v", err))
	}
	if result == nil {
		// submitManaged already recorded the terminal state.
		return txn, nil
	}

	if err := s.transactions.SetBundleID(ctx, txn.ID, result.BundleID); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	txn.BundleID = &result.BundleID

	task := ports.Task{
		Kind:          ports.TaskKindPollBundle,
		TransactionID: txn.ID,
		BundleID:      result.BundleID,
		Attempt:       1,
	}
	if err := s.queue.Schedule(ctx, task, s.cfg.Poller.Interval); err != nil {
		// The bundle is in flight; a lost poll only delays resolution, so
		// log it rather than failing the submission.
		s.log.Error().Err(err).
			Str("transaction_id", txn.ID.String()).
			Str("bundle_id", result.BundleID).
			Msg("Scheduling bundle poll failed")
	}

	s.log.Info().
		Str("transaction_id", txn.ID.String()).
		Str("bundle_id", result.BundleID).
		Int64("chain_id", req.ChainID).
		Int("requests", len(req.Items)+len(req.SignedRequests)).
		Msg("Bundle submitted")

	return txn, nil
}

// submitManaged signs each calldata item with the user's vaulted key and
// submits the bundle. A (nil, nil) return means the transaction was already
// driven to failed and there is nothing to poll.
func (s *BundleService) submitManaged(ctx context.Context, txn *domain.Transaction, req ports.SubmitRequest) (*ports.BundleResult, error) {
	account, err := s.accounts.GetByUserAndChain(ctx, req.UserID, req.ChainID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		if _, failErr := s.failTransaction(ctx, txn, domain.ErrorCodeNoSmartAccount,
			fmt.Sprintf("no smart account exists for user %s on chain %d", req.UserID, req.ChainID)); failErr != nil {
			return nil, failErr
		}
		return nil, nil
	}

	key, err := s.keys.GetActiveByUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if key == nil {
		if _, failErr := s.failTransaction(ctx, txn, domain.ErrorCodeExecutionFailed,
			"no active signing key for managed user"); failErr != nil {
			return nil, failErr
		}
		return nil, nil
	}

	signed, err := s.signItems(key.EncryptedKey, account, req)
	if err != nil {
		return nil, err
	}

	return s.relay.CreateBalanceBundle(ctx, req.ChainID, signed, req.UserID, account.Address)
}

// signItems decrypts the vaulted key, signs every item and zeroes the
// plaintext before returning. The decrypted key never escapes this scope.
func (s *BundleService) signItems(encryptedKey string, account *domain.SmartAccount, req ports.SubmitRequest) ([]domain.SignedForwardRequest, error) {
	raw, err := s.vault.Decrypt(encryptedKey)
	if err != nil {
		return nil, fmt.Errorf("decrypting signing key: %w", err)
	}
	defer func() {
		for i := range raw {
			raw[i] = 0
		}
	}()

	priv, err := ethcrypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing signing key: %w", err)
	}

	deadline := uint64(time.Now().Add(forwardRequestDeadline).Unix())
	signed := make([]domain.SignedForwardRequest, 0, len(req.Items))
	for _, item := range req.Items {
		value := item.Value
		if value == nil {
			value = big.NewInt(0)
		}
		fr := domain.ForwardRequest{
			From:     common.HexToAddress(account.Address),
			To:       item.To,
			Value:    value,
			Gas:      item.Gas,
			Nonce:    item.Nonce,
			Deadline: deadline,
			Data:     item.Calldata,
		}
		sfr, err := s.signer.SignForwardRequest(priv, req.ChainID, fr)
		if err != nil {
			return nil, err
		}
		signed = append(signed, *sfr)
	}
	return signed, nil
}

// failTransaction drives txn to failed and mirrors the terminal fields onto
// the in-memory value. A lost guard (already terminal) is logged, never
// overwritten.
func (s *BundleService) failTransaction(ctx context.Context, txn *domain.Transaction, code, message string) (*domain.Transaction, error) {
	applied, err := s.transactions.MarkFailed(ctx, txn.ID, code, message)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if !applied {
		s.log.Warn().
			Str("transaction_id", txn.ID.String()).
			Str("code", code).
			Msg("Failed transition skipped, transaction already terminal")
		return txn, nil
	}

	txn.Status = domain.TransactionStatusFailed
	txn.ErrorCode = &code
	txn.ErrorMessage = &message

	s.log.Info().
		Str("transaction_id", txn.ID.String()).
		Str("code", code).
		Str("message", message).
		Msg("Transaction failed")

	return txn, nil
}

// HandlePoll resolves one poll attempt for a bundle. Transient relay errors
// and still-pending bundles reschedule; only the configured attempt budget
// running out converts waiting into a POLL_TIMEOUT failure.
func (s *BundleService) HandlePoll(ctx context.Context, task ports.Task) error {
	txn, err := s.transactions.GetByID(ctx, task.TransactionID)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if txn == nil {
		s.log.Warn().
			Str("transaction_id", task.TransactionID.String()).
			Msg("Poll task for unknown transaction dropped")
		return nil
	}
	if txn.IsTerminal() {
		// At-least-once delivery: a replay after resolution is a no-op.
		return nil
	}

	status, err := s.relay.GetBundleStatus(ctx, task.BundleID)
	if err != nil {
		s.log.Warn().Err(err).
			Str("transaction_id", txn.ID.String()).
			Str("bundle_id", task.BundleID).
			Int("attempt", task.Attempt).
			Msg("Bundle status poll failed")
		return s.rescheduleOrTimeout(ctx, txn, task)
	}

	switch status.Status {
	case ports.BundleStateConfirmed:
		confirmedAt := time.Now().UTC()
		applied, err := s.transactions.MarkConfirmed(ctx, txn.ID, status.TxHash, status.BlockNumber, confirmedAt)
		if err != nil {
			return apperror.ErrDatabaseError(err)
		}
		if !applied {
			return nil
		}
		s.log.Info().
			Str("transaction_id", txn.ID.String()).
			Str("tx_hash", status.TxHash).
			Int64("block_number", status.BlockNumber).
			Msg("Transaction confirmed")
		s.markAccountDeployed(ctx, txn, status.TxHash)
		return nil

	case ports.BundleStateFailed:
		code := status.ErrorCode
		if code == "" {
			code = domain.ErrorCodeExecutionFailed
		}
		_, err := s.failTransaction(ctx, txn, code, status.ErrorMessage)
		return err

	default:
		return s.rescheduleOrTimeout(ctx, txn, task)
	}
}

// rescheduleOrTimeout requeues the poll with an incremented attempt counter,
// or fails the transaction once the attempt budget is exhausted.
func (s *BundleService) rescheduleOrTimeout(ctx context.Context, txn *domain.Transaction, task ports.Task) error {
	if task.Attempt >= s.cfg.Poller.MaxAttempts {
		_, err := s.failTransaction(ctx, txn, domain.ErrorCodePollTimeout,
			fmt.Sprintf("bundle %s not terminal after %d polls", task.BundleID, task.Attempt))
		return err
	}

	next := task
	next.Attempt++
	if err := s.queue.Schedule(ctx, next, s.cfg.Poller.Interval); err != nil {
		return fmt.Errorf("rescheduling bundle poll: %w", err)
	}
	return nil
}

// markAccountDeployed flips the smart account's deployed flag on the first
// confirmed transaction. Best effort: a miss here never affects the
// already-terminal transaction.
func (s *BundleService) markAccountDeployed(ctx context.Context, txn *domain.Transaction, txHash string) {
	account, err := s.accounts.GetByUserAndChain(ctx, txn.UserID, txn.ChainID)
	if err != nil || account == nil || account.Deployed {
		if err != nil {
			s.log.Warn().Err(err).
				Str("transaction_id", txn.ID.String()).
				Msg("Loading smart account for deployment flag failed")
		}
		return
	}
	if err := s.accounts.MarkDeployed(ctx, account.ID, txHash); err != nil {
		s.log.Warn().Err(err).
			Str("smart_account_id", account.ID.String()).
			Msg("Marking smart account deployed failed")
	}
}
