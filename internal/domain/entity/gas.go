package entity

import "math/big"

// DefaultGasLimitFloor is the minimum execution limit ever submitted. It
// guards against near-zero estimates from degenerate calls.
const DefaultGasLimitFloor = 21_000

// DefaultGasMarginPercent is the safety margin applied to raw estimates.
const DefaultGasMarginPercent = 20

// GasBudget pairs a raw gas estimate with the margined execution limit
// that is actually submitted. Limit >= Estimate always holds.
type GasBudget struct {
	Estimate uint64
	Limit    uint64
}

// NewGasBudget applies a multiplicative safety margin (marginPercent over
// the raw estimate) and an absolute floor. The raw estimate itself is never
// used as the execution limit.
func NewGasBudget(rawEstimate uint64, marginPercent uint64, floor uint64) GasBudget {
	margined := new(big.Int).SetUint64(rawEstimate)
	margined.Mul(margined, new(big.Int).SetUint64(100+marginPercent))
	margined.Div(margined, big.NewInt(100))

	limit := rawEstimate
	if margined.IsUint64() {
		limit = margined.Uint64()
	}
	if limit < floor {
		limit = floor
	}
	if limit < rawEstimate {
		limit = rawEstimate
	}
	return GasBudget{Estimate: rawEstimate, Limit: limit}
}
