package entity

// Allowance is the delegated-spend amount a spender may draw from an
// owner's balance of one asset. It is only ever produced by reading the
// ledger; a successful approval does not update it locally.
type Allowance struct {
	Owner   string
	Spender string
	Amount  Amount
}
