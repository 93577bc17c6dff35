package service

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"stablecoin-relay-gateway/config"
	"stablecoin-relay-gateway/internal/core/domain"
	"stablecoin-relay-gateway/pkg/apperror"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

// EIP-712 domain constants for the trusted forwarder. The verifying contract
// comes from per-chain configuration.
const (
	forwarderDomainName    = "StablecoinRelayForwarder"
	forwarderDomainVersion = "1"

	eip712DomainType   = "EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"
	forwardRequestType = "ForwardRequest(address from,address to,uint256 value,uint256 gas,uint48 nonce,uint48 deadline,bytes data)"

	executeSignature = "execute((address,address,uint256,uint256,uint48,bytes,bytes))"
)

// EIP712Signer implements ports.TypedDataSigner. All hashing is done with the
// legacy Keccak-256 variant Ethereum uses, not standard SHA3.
type EIP712Signer struct {
	cfg          *config.Config
	factory      common.Address
	initCodeHash [32]byte

	executeArgs     abi.Arguments
	executeSelector [4]byte
}

// NewEIP712Signer builds a signer from the loaded configuration. The factory
// address and init code hash may be absent in debug mode; counterfactual
// derivation then fails per-call with a configuration error.
func NewEIP712Signer(cfg *config.Config) (*EIP712Signer, error) {
	s := &EIP712Signer{cfg: cfg}

	if cfg.Account.FactoryAddress != "" {
		if !common.IsHexAddress(cfg.Account.FactoryAddress) {
			return nil, fmt.Errorf("invalid factory address %q", cfg.Account.FactoryAddress)
		}
		s.factory = common.HexToAddress(cfg.Account.FactoryAddress)
	}
	if cfg.Account.InitCodeHash != "" {
		raw, err := hex.DecodeString(strings.TrimPrefix(cfg.Account.InitCodeHash, "0x"))
		if err != nil || len(raw) != 32 {
			return nil, fmt.Errorf("init code hash must be 32 hex-encoded bytes")
		}
		copy(s.initCodeHash[:], raw)
	}

	tupleTy, err := abi.NewType("tuple", "", []abi.ArgumentMarshaling{
		{Name: "from", Type: "address"},
		{Name: "to", Type: "address"},
		{Name: "value", Type: "uint256"},
		{Name: "gas", Type: "uint256"},
		{Name: "nonce", Type: "uint48"},
		{Name: "data", Type: "bytes"},
		{Name: "signature", Type: "bytes"},
	})
	if err != nil {
		return nil, fmt.Errorf("building execute tuple type: %w", err)
	}
	s.executeArgs = abi.Arguments{{Type: tupleTy}}
	copy(s.executeSelector[:], keccak256([]byte(executeSignature))[:4])

	return s, nil
}

func keccak256(chunks ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, c := range chunks {
		h.Write(c)
	}
	return h.Sum(nil)
}

func padLeft32(b []byte) []byte {
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

// DomainSeparator returns the EIP-712 domain separator for chainID. The
// separator differs across chains and across forwarder deployments.
func (s *EIP712Signer) DomainSeparator(chainID int64) (common.Hash, error) {
	chain := s.cfg.Chain(chainID)
	if chain == nil {
		return common.Hash{}, apperror.ErrUnsupportedChain(chainID)
	}
	if !common.IsHexAddress(chain.Forwarder) {
		return common.Hash{}, apperror.ConfigurationError(fmt.Errorf("chain %d: invalid forwarder address %q", chainID, chain.Forwarder))
	}
	forwarder := common.HexToAddress(chain.Forwarder)

	encoded := make([]byte, 0, 160)
	encoded = append(encoded, keccak256([]byte(eip712DomainType))...)
	encoded = append(encoded, keccak256([]byte(forwarderDomainName))...)
	encoded = append(encoded, keccak256([]byte(forwarderDomainVersion))...)
	encoded = append(encoded, padLeft32(big.NewInt(chainID).Bytes())...)
	encoded = append(encoded, padLeft32(forwarder.Bytes())...)

	return common.BytesToHash(keccak256(encoded)), nil
}

// HashForwardRequest returns the EIP-712 struct hash of req. Dynamic bytes
// are folded in as their keccak hash per the encoding rules.
func (s *EIP712Signer) HashForwardRequest(req domain.ForwardRequest) common.Hash {
	encoded := make([]byte, 0, 256)
	encoded = append(encoded, keccak256([]byte(forwardRequestType))...)
	encoded = append(encoded, padLeft32(req.From.Bytes())...)
	encoded = append(encoded, padLeft32(req.To.Bytes())...)
	encoded = append(encoded, padLeft32(req.Value.Bytes())...)
	encoded = append(encoded, padLeft32(req.Gas.Bytes())...)
	encoded = append(encoded, padLeft32(new(big.Int).SetUint64(req.Nonce).Bytes())...)
	encoded = append(encoded, padLeft32(new(big.Int).SetUint64(req.Deadline).Bytes())...)
	encoded = append(encoded, keccak256(req.Data)...)

	return common.BytesToHash(keccak256(encoded))
}

// TypedDataHash returns keccak(0x19 0x01 || domainSeparator || structHash),
// the digest a wallet actually signs.
func (s *EIP712Signer) TypedDataHash(chainID int64, req domain.ForwardRequest) (common.Hash, error) {
	sep, err := s.DomainSeparator(chainID)
	if err != nil {
		return common.Hash{}, err
	}
	structHash := s.HashForwardRequest(req)

	return common.BytesToHash(keccak256([]byte{0x19, 0x01}, sep.Bytes(), structHash.Bytes())), nil
}

// SignForwardRequest signs the typed-data digest with key and returns the
// 65-byte r||s||v signature with v normalized to 27/28.
func (s *EIP712Signer) SignForwardRequest(key *ecdsa.PrivateKey, chainID int64, req domain.ForwardRequest) (*domain.SignedForwardRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	digest, err := s.TypedDataHash(chainID, req)
	if err != nil {
		return nil, err
	}

	sig, err := ethcrypto.Sign(digest.Bytes(), key)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("signing forward request: %w", err))
	}
	sig[64] += 27

	return &domain.SignedForwardRequest{
		Request:       req,
		Signature:     sig,
		TypedDataHash: digest,
	}, nil
}

// EncodeExecuteCalldata packs the forwarder execute call: a 4-byte selector
// followed by the ABI-encoded (request, signature) tuple.
func (s *EIP712Signer) EncodeExecuteCalldata(req domain.ForwardRequest, signature []byte) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if len(signature) != 65 {
		return nil, apperror.Validation(fmt.Sprintf("signature must be 65 bytes, got %d", len(signature)))
	}

	body, err := s.executeArgs.Pack(struct {
		From      common.Address
		To        common.Address
		Value     *big.Int
		Gas       *big.Int
		Nonce     *big.Int
		Data      []byte
		Signature []byte
	}{
		From:      req.From,
		To:        req.To,
		Value:     req.Value,
		Gas:       req.Gas,
		Nonce:     new(big.Int).SetUint64(req.Nonce),
		Data:      req.Data,
		Signature: signature,
	})
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("packing execute calldata: %w", err))
	}

	out := make([]byte, 0, 4+len(body))
	out = append(out, s.executeSelector[:]...)
	out = append(out, body...)
	return out, nil
}

// CounterfactualAddress derives the CREATE2 smart-account address for a
// (salt, owner) pair. The effective init code appends the ABI-encoded owner
// as the sole constructor argument, so the hash input is
// keccak(initCodeHash || pad32(owner)).
func (s *EIP712Signer) CounterfactualAddress(salt string, owner common.Address) (common.Address, error) {
	if s.factory == (common.Address{}) || s.initCodeHash == ([32]byte{}) {
		return common.Address{}, apperror.ConfigurationError(fmt.Errorf("account factory constants are not configured"))
	}

	raw, err := hex.DecodeString(strings.TrimPrefix(salt, "0x"))
	if err != nil || len(raw) != 32 {
		return common.Address{}, apperror.Validation("salt must be 32 hex-encoded bytes")
	}
	var salt32 [32]byte
	copy(salt32[:], raw)

	initHash := keccak256(s.initCodeHash[:], padLeft32(owner.Bytes()))
	return ethcrypto.CreateAddress2(s.factory, salt32, initHash), nil
}
