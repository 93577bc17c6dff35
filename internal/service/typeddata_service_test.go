package service

import (
	"math/big"
	"strings"
	"testing"

	"stablecoin-relay-gateway/config"
	"stablecoin-relay-gateway/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signerTestConfig() *config.Config {
	return &config.Config{
		Account: config.AccountConfig{
			FactoryAddress: "0x1111111111111111111111111111111111111111",
			InitCodeHash:   "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		},
		Chains: []config.ChainConfig{
			{ChainID: 1, Forwarder: "0x2222222222222222222222222222222222222222"},
			{ChainID: 137, Forwarder: "0x2222222222222222222222222222222222222222"},
			{ChainID: 8453, Forwarder: "0x3333333333333333333333333333333333333333"},
		},
	}
}

func testForwardRequest() domain.ForwardRequest {
	return domain.ForwardRequest{
		From:     common.HexToAddress("0x4444444444444444444444444444444444444444"),
		To:       common.HexToAddress("0x5555555555555555555555555555555555555555"),
		Value:    big.NewInt(0),
		Gas:      big.NewInt(100000),
		Nonce:    7,
		Deadline: 1900000000,
		Data:     []byte{0xa9, 0x05, 0x9c, 0xbb},
	}
}

func TestDomainSeparator(t *testing.T) {
	s, err := NewEIP712Signer(signerTestConfig())
	require.NoError(t, err)

	sep1, err := s.DomainSeparator(1)
	require.NoError(t, err)
	sep137, err := s.DomainSeparator(137)
	require.NoError(t, err)
	sep8453, err := s.DomainSeparator(8453)
	require.NoError(t, err)

	// Distinct chains yield distinct separators even with the same forwarder.
	assert.NotEqual(t, sep1, sep137)
	assert.NotEqual(t, sep137, sep8453)

	again, err := s.DomainSeparator(1)
	require.NoError(t, err)
	assert.Equal(t, sep1, again)
}

func TestDomainSeparator_UnsupportedChain(t *testing.T) {
	s, err := NewEIP712Signer(signerTestConfig())
	require.NoError(t, err)

	_, err = s.DomainSeparator(999)
	assert.Error(t, err)
}

func TestHashForwardRequest_FieldSensitivity(t *testing.T) {
	s, err := NewEIP712Signer(signerTestConfig())
	require.NoError(t, err)

	base := testForwardRequest()
	baseHash := s.HashForwardRequest(base)

	mutations := map[string]func(r *domain.ForwardRequest){
		"from":     func(r *domain.ForwardRequest) { r.From = common.HexToAddress("0x6666666666666666666666666666666666666666") },
		"to":       func(r *domain.ForwardRequest) { r.To = common.HexToAddress("0x6666666666666666666666666666666666666666") },
		"value":    func(r *domain.ForwardRequest) { r.Value = big.NewInt(1) },
		"gas":      func(r *domain.ForwardRequest) { r.Gas = big.NewInt(100001) },
		"nonce":    func(r *domain.ForwardRequest) { r.Nonce = 8 },
		"deadline": func(r *domain.ForwardRequest) { r.Deadline = 1900000001 },
		"data":     func(r *domain.ForwardRequest) { r.Data = []byte{0xde, 0xad} },
	}

	for field, mutate := range mutations {
		t.Run(field, func(t *testing.T) {
			req := testForwardRequest()
			mutate(&req)
			assert.NotEqual(t, baseHash, s.HashForwardRequest(req))
		})
	}

	assert.Equal(t, baseHash, s.HashForwardRequest(testForwardRequest()))
}

func TestSignForwardRequest_RecoversSigner(t *testing.T) {
	s, err := NewEIP712Signer(signerTestConfig())
	require.NoError(t, err)

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	want := ethcrypto.PubkeyToAddress(key.PublicKey)

	signed, err := s.SignForwardRequest(key, 1, testForwardRequest())
	require.NoError(t, err)
	require.Len(t, signed.Signature, 65)
	assert.Contains(t, []byte{27, 28}, signed.Signature[64])

	recoverSig := make([]byte, 65)
	copy(recoverSig, signed.Signature)
	recoverSig[64] -= 27
	pub, err := ethcrypto.SigToPub(signed.TypedDataHash.Bytes(), recoverSig)
	require.NoError(t, err)
	assert.Equal(t, want, ethcrypto.PubkeyToAddress(*pub))
}

func TestSignForwardRequest_DistinctKeysDistinctSignatures(t *testing.T) {
	s, err := NewEIP712Signer(signerTestConfig())
	require.NoError(t, err)

	key1, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	key2, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	req := testForwardRequest()
	sig1, err := s.SignForwardRequest(key1, 1, req)
	require.NoError(t, err)
	sig2, err := s.SignForwardRequest(key2, 1, req)
	require.NoError(t, err)

	assert.Equal(t, sig1.TypedDataHash, sig2.TypedDataHash)
	assert.NotEqual(t, sig1.Signature, sig2.Signature)
}

func TestSignForwardRequest_InvalidRequest(t *testing.T) {
	s, err := NewEIP712Signer(signerTestConfig())
	require.NoError(t, err)
	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	req := testForwardRequest()
	req.Gas = nil
	_, err = s.SignForwardRequest(key, 1, req)
	assert.Error(t, err)
}

func TestEncodeExecuteCalldata(t *testing.T) {
	s, err := NewEIP712Signer(signerTestConfig())
	require.NoError(t, err)

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	signed, err := s.SignForwardRequest(key, 1, testForwardRequest())
	require.NoError(t, err)

	calldata, err := s.EncodeExecuteCalldata(signed.Request, signed.Signature)
	require.NoError(t, err)

	wantSelector := ethcrypto.Keccak256([]byte("execute((address,address,uint256,uint256,uint48,bytes,bytes))"))[:4]
	assert.Equal(t, wantSelector, calldata[:4])
	assert.Equal(t, 0, (len(calldata)-4)%32, "body must be a multiple of 32 bytes")
}

func TestEncodeExecuteCalldata_BadSignatureLength(t *testing.T) {
	s, err := NewEIP712Signer(signerTestConfig())
	require.NoError(t, err)

	_, err = s.EncodeExecuteCalldata(testForwardRequest(), []byte{0x01, 0x02})
	assert.Error(t, err)
}

func TestCounterfactualAddress(t *testing.T) {
	s, err := NewEIP712Signer(signerTestConfig())
	require.NoError(t, err)

	salt := strings.Repeat("ab", 32)
	owner1 := common.HexToAddress("0x7777777777777777777777777777777777777777")
	owner2 := common.HexToAddress("0x8888888888888888888888888888888888888888")

	addr1, err := s.CounterfactualAddress(salt, owner1)
	require.NoError(t, err)
	addr1Again, err := s.CounterfactualAddress(salt, owner1)
	require.NoError(t, err)
	assert.Equal(t, addr1, addr1Again)

	addr2, err := s.CounterfactualAddress(salt, owner2)
	require.NoError(t, err)
	assert.NotEqual(t, addr1, addr2)

	otherSalt, err := s.CounterfactualAddress(strings.Repeat("cd", 32), owner1)
	require.NoError(t, err)
	assert.NotEqual(t, addr1, otherSalt)
}

func TestCounterfactualAddress_MissingConstants(t *testing.T) {
	cfg := signerTestConfig()
	cfg.Account = config.AccountConfig{}
	s, err := NewEIP712Signer(cfg)
	require.NoError(t, err)

	_, err = s.CounterfactualAddress(strings.Repeat("ab", 32), common.HexToAddress("0x7777777777777777777777777777777777777777"))
	assert.Error(t, err)
}

func TestCounterfactualAddress_BadSalt(t *testing.T) {
	s, err := NewEIP712Signer(signerTestConfig())
	require.NoError(t, err)

	_, err = s.CounterfactualAddress("zz", common.HexToAddress("0x7777777777777777777777777777777777777777"))
	assert.Error(t, err)
}
