package entity

import (
	"fmt"
	"math/big"

	"token_sale/internal/pkg/utils"
)

// ZeroAddress represents the Ethereum zero address.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// AssetInfo identifies a fungible asset on a specific network.
type AssetInfo struct {
	ChainID  uint64
	Address  string
	Symbol   string
	Decimals uint8
}

// Amount is a non-negative integer quantity of one specific asset.
// Arithmetic between amounts of different assets is rejected.
type Amount struct {
	Asset AssetInfo
	Raw   *big.Int
}

// NewAmount builds an Amount from a raw ledger integer. Nil and negative
// inputs collapse to zero.
func NewAmount(asset AssetInfo, raw *big.Int) Amount {
	if raw == nil || raw.Sign() < 0 {
		return Amount{Asset: asset, Raw: big.NewInt(0)}
	}
	return Amount{Asset: asset, Raw: new(big.Int).Set(raw)}
}

// ZeroAmount returns the zero quantity of an asset.
func ZeroAmount(asset AssetInfo) Amount {
	return Amount{Asset: asset, Raw: big.NewInt(0)}
}

// Add returns the sum of two amounts of the same asset.
func (a Amount) Add(other Amount) (Amount, error) {
	if a.Asset != other.Asset {
		return Amount{}, fmt.Errorf("asset mismatch: %s vs %s", a.Asset.Symbol, other.Asset.Symbol)
	}
	return Amount{Asset: a.Asset, Raw: new(big.Int).Add(a.Raw, other.Raw)}, nil
}

// Cmp compares two amounts of the same asset (-1, 0, +1).
func (a Amount) Cmp(other Amount) (int, error) {
	if a.Asset != other.Asset {
		return 0, fmt.Errorf("asset mismatch: %s vs %s", a.Asset.Symbol, other.Asset.Symbol)
	}
	return a.Raw.Cmp(other.Raw), nil
}

// IsZero reports whether the quantity is zero.
func (a Amount) IsZero() bool {
	return a.Raw == nil || a.Raw.Sign() == 0
}

// Format renders the amount as a human-readable decimal string. The
// rendering is a pure function of the raw integer and the asset's decimals.
func (a Amount) Format() string {
	formatted, err := utils.FormatBigInt(a.Raw, a.Asset.Decimals)
	if err != nil {
		return "0"
	}
	return formatted
}
