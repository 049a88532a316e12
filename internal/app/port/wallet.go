package port

import "token_sale/internal/domain/entity"

// WalletProvider reports the connected account and network identity. Either
// may be absent (wallet not connected, unknown network); absence disables
// reads and writes gracefully instead of erroring.
type WalletProvider interface {
	Account() entity.Optional[string]
	ChainID() entity.Optional[uint64]
}
