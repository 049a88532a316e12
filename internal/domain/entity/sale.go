package entity

import "math/big"

// SaleState is a display snapshot of the sale contract. Each field is read
// independently on its own schedule; no cross-field consistency is implied.
type SaleState struct {
	Active    bool
	Rate      *big.Int // sale-token units granted per payment-token unit
	Remaining Amount
}

// PurchaseReceipt is the resolved value of a successful buy.
type PurchaseReceipt struct {
	TokenAddress string `json:"tokenAddress"`
}
