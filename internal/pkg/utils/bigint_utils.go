package utils

import (
	"fmt"
	"math/big"
	"strings"
)

// MaxUint256 is the largest representable uint256 value, used for
// unlimited approvals.
var MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// FormatBigInt converts a big.Int value to a human-readable string,
// considering the given number of decimals.
// Example: amount=1234500000000000000, decimals=18 => "1.2345"
func FormatBigInt(amount *big.Int, decimals uint8) (string, error) {
	if amount == nil {
		return "0", nil
	}
	if decimals == 0 {
		return amount.String(), nil
	}

	amountFloat := new(big.Float).SetInt(amount)
	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value := new(big.Float).Quo(amountFloat, divisor)

	formattedStr := value.Text('f', int(decimals))

	if strings.Contains(formattedStr, ".") {
		formattedStr = strings.TrimRight(formattedStr, "0")
		formattedStr = strings.TrimRight(formattedStr, ".")
	}
	if strings.HasPrefix(formattedStr, ".") {
		formattedStr = "0" + formattedStr
	}
	if formattedStr == "" {
		if amount.Sign() == 0 {
			return "0", nil
		}
		return value.Text('f', 2), fmt.Errorf("formatting resulted in empty string for non-zero value")
	}

	return formattedStr, nil
}

// ParseQuantity parses a base-10 integer quantity string. Empty, malformed
// and negative inputs are rejected.
func ParseQuantity(s string) (*big.Int, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, false
	}
	v, ok := new(big.Int).SetString(trimmed, 10)
	if !ok || v.Sign() < 0 {
		return nil, false
	}
	return v, true
}
