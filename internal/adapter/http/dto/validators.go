package dto

import (
	"math"
	"regexp"
	"strings"

	"crosschain-donation/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var decimalRe = regexp.MustCompile(`^\d*\.?\d+$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("decimal_amount", validateDecimalAmount)
		_ = v.RegisterValidation("chain_id", validateChainID)
		_ = v.RegisterValidation("eth_addr", validateAddress)
	}
}

// validateDecimalAmount accepts a positive decimal string. Token precision is
// checked later against the token's own decimals.
func validateDecimalAmount(fl validator.FieldLevel) bool {
	return ValidAmount(fl.Field().String())
}

// ValidAmount reports whether s is a positive decimal amount.
func ValidAmount(s string) bool {
	s = strings.TrimSpace(s)
	if !decimalRe.MatchString(s) {
		return false
	}
	_, err := domain.ParseUnits(s, math.MaxUint8)
	return err == nil
}

// validateChainID accepts a non-zero decimal or 0x-hex chain id.
func validateChainID(fl validator.FieldLevel) bool {
	id, err := domain.ParseChainID(fl.Field().String())
	return err == nil && id.IsKnown()
}

func validateAddress(fl validator.FieldLevel) bool {
	return common.IsHexAddress(fl.Field().String())
}
