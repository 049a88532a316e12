package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptional(t *testing.T) {
	some := Some("0xabc")
	value, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, "0xabc", value)
	assert.True(t, some.IsPresent())
	assert.Equal(t, "0xabc", some.OrElse("fallback"))

	none := None[string]()
	_, ok = none.Get()
	assert.False(t, ok)
	assert.False(t, none.IsPresent())
	assert.Equal(t, "fallback", none.OrElse("fallback"))
}

func TestNonEmpty(t *testing.T) {
	assert.False(t, NonEmpty("").IsPresent(), "an unset config string must stay absent")
	value, ok := NonEmpty("0xabc").Get()
	assert.True(t, ok)
	assert.Equal(t, "0xabc", value)
}

func TestOptional_ZeroValueIsAbsent(t *testing.T) {
	var o Optional[uint64]
	assert.False(t, o.IsPresent())
	assert.Equal(t, uint64(7), o.OrElse(7))
}
