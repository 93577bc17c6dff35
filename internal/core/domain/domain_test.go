package domain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestUser_Custody(t *testing.T) {
	addr := "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"

	managed := &User{}
	assert.Equal(t, CustodyManaged, managed.Custody())

	empty := ""
	managedEmpty := &User{WalletAddress: &empty}
	assert.Equal(t, CustodyManaged, managedEmpty.Custody())

	self := &User{WalletAddress: &addr}
	assert.Equal(t, CustodySelfCustody, self.Custody())
}

func TestTransaction_IsTerminal(t *testing.T) {
	tx := &Transaction{Status: TransactionStatusPending}
	assert.False(t, tx.IsTerminal())

	tx.Status = TransactionStatusConfirmed
	assert.True(t, tx.IsTerminal())

	tx.Status = TransactionStatusFailed
	assert.True(t, tx.IsTerminal())
}

func TestForwardRequest_Validate(t *testing.T) {
	valid := ForwardRequest{
		To:       common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
		Value:    big.NewInt(0),
		Gas:      big.NewInt(100000),
		Nonce:    1,
		Deadline: 1893456000,
	}
	assert.NoError(t, valid.Validate())

	zeroTo := valid
	zeroTo.To = common.Address{}
	assert.Error(t, zeroTo.Validate())

	nilValue := valid
	nilValue.Value = nil
	assert.Error(t, nilValue.Validate())

	negValue := valid
	negValue.Value = big.NewInt(-1)
	assert.Error(t, negValue.Validate())

	zeroGas := valid
	zeroGas.Gas = big.NewInt(0)
	assert.Error(t, zeroGas.Validate())

	bigNonce := valid
	bigNonce.Nonce = 1 << 48
	assert.Error(t, bigNonce.Validate())

	bigDeadline := valid
	bigDeadline.Deadline = 1 << 50
	assert.Error(t, bigDeadline.Validate())
}

func TestCalldataItem_Validate(t *testing.T) {
	valid := CalldataItem{
		To:    common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
		Gas:   big.NewInt(100000),
		Nonce: 1,
	}
	assert.NoError(t, valid.Validate())

	zeroTo := valid
	zeroTo.To = common.Address{}
	assert.Error(t, zeroTo.Validate())

	negValue := valid
	negValue.Value = big.NewInt(-1)
	assert.Error(t, negValue.Validate())

	nilGas := valid
	nilGas.Gas = nil
	assert.Error(t, nilGas.Validate())

	bigNonce := valid
	bigNonce.Nonce = 1 << 48
	assert.Error(t, bigNonce.Validate())
}
