package walletloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard(string, ...any) {}

func TestNewStaticProvider_ValidAccount(t *testing.T) {
	p := NewStaticProvider("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 1, discard)

	account, ok := p.Account().Get()
	require.True(t, ok)
	assert.Equal(t, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", account)

	chainID, ok := p.ChainID().Get()
	require.True(t, ok)
	assert.Equal(t, uint64(1), chainID)
}

func TestNewStaticProvider_EmptyAccountIsReadOnly(t *testing.T) {
	p := NewStaticProvider("", 1, discard)
	assert.False(t, p.Account().IsPresent())
	assert.True(t, p.ChainID().IsPresent())
}

func TestNewStaticProvider_MalformedAccountIgnored(t *testing.T) {
	for _, bad := range []string{"aaaa", "0x123", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"} {
		p := NewStaticProvider(bad, 1, discard)
		assert.False(t, p.Account().IsPresent(), "account %q must be rejected", bad)
	}
}

func TestNewStaticProvider_ZeroChainIDIsAbsent(t *testing.T) {
	p := NewStaticProvider("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 0, discard)
	assert.False(t, p.ChainID().IsPresent())
}

func TestNewStaticProvider_TrimsWhitespace(t *testing.T) {
	p := NewStaticProvider("  0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa  ", 1, discard)
	account, ok := p.Account().Get()
	require.True(t, ok)
	assert.Equal(t, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", account)
}
