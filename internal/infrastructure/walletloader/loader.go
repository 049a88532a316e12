package walletloader

import (
	"strings"

	"token_sale/internal/app/port"
	"token_sale/internal/domain/entity"
)

// StaticProvider is a port.WalletProvider whose identity comes from
// configuration instead of an interactive session. An empty or malformed
// account leaves the provider in the read-only state.
type StaticProvider struct {
	account entity.Optional[string]
	chainID entity.Optional[uint64]
}

// NewStaticProvider creates a wallet provider for the configured account.
func NewStaticProvider(account string, chainID uint64, logInfo func(msg string, args ...any)) port.WalletProvider {
	p := &StaticProvider{
		account: entity.None[string](),
		chainID: entity.None[uint64](),
	}

	account = strings.TrimSpace(account)
	if account != "" {
		if strings.HasPrefix(account, "0x") && len(account) == 42 {
			p.account = entity.Some(account)
		} else {
			logInfo("Ignoring invalid wallet account format", "account", account)
		}
	}
	if chainID != 0 {
		p.chainID = entity.Some(chainID)
	}

	logInfo("Wallet provider initialized",
		"account_set", p.account.IsPresent(), "chain_id", chainID)
	return p
}

func (p *StaticProvider) Account() entity.Optional[string] {
	return p.account
}

func (p *StaticProvider) ChainID() entity.Optional[uint64] {
	return p.chainID
}
