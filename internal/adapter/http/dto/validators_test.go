package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type addressPayload struct {
	Address string `binding:"required,eth_addr"`
}

type dataPayload struct {
	Data string `binding:"required,hex_data"`
}

func TestEthAddrValidator(t *testing.T) {
	valid := []string{
		"0x2222222222222222222222222222222222222222",
		"0xAbCd000000000000000000000000000000000001",
	}
	for _, addr := range valid {
		err := binding.Validator.ValidateStruct(&addressPayload{Address: addr})
		assert.NoError(t, err, addr)
	}

	invalid := []string{
		"",
		"2222222222222222222222222222222222222222",
		"0x22",
		"0xZZ22222222222222222222222222222222222222",
	}
	for _, addr := range invalid {
		err := binding.Validator.ValidateStruct(&addressPayload{Address: addr})
		assert.Error(t, err, addr)
	}
}

func TestHexDataValidator(t *testing.T) {
	assert.NoError(t, binding.Validator.ValidateStruct(&dataPayload{Data: "0xa9059cbb"}))
	assert.Error(t, binding.Validator.ValidateStruct(&dataPayload{Data: "a9059cbb"}))
	assert.Error(t, binding.Validator.ValidateStruct(&dataPayload{Data: "0xabc"}))
	assert.Error(t, binding.Validator.ValidateStruct(&dataPayload{Data: "0xgg"}))
}

func TestDecodeHex(t *testing.T) {
	out, err := DecodeHex("0xdeadbeef")
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, out)

	out, err = DecodeHex("0x")
	assert.NoError(t, err)
	assert.Empty(t, out)
}
