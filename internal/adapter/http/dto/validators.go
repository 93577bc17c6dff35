package dto

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("eth_addr", validateEthAddress)
		_ = v.RegisterValidation("hex_data", validateHexData)
	}
}

// validateEthAddress accepts a 20-byte 0x-prefixed hex address.
func validateEthAddress(fl validator.FieldLevel) bool {
	return common.IsHexAddress(fl.Field().String())
}

// validateHexData accepts 0x-prefixed hex of even length. "0x" alone is
// valid: empty calldata is a plain value transfer.
func validateHexData(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if !strings.HasPrefix(raw, "0x") {
		return false
	}
	_, err := hex.DecodeString(raw[2:])
	return err == nil
}

// DecodeHex decodes a 0x-prefixed hex string already accepted by hex_data.
func DecodeHex(raw string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(raw, "0x"))
}
