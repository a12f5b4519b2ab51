package aptos

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAddress(t *testing.T) {
	a := &Adapter{}

	assert.True(t, a.ValidateAddress("0x1"))
	assert.True(t, a.ValidateAddress("1"))
	assert.True(t, a.ValidateAddress("0xA550C18"))
	assert.True(t, a.ValidateAddress("0x"+strings.Repeat("f", 64)))

	assert.False(t, a.ValidateAddress(""))
	assert.False(t, a.ValidateAddress("0x"))
	assert.False(t, a.ValidateAddress("0xzz"))
	// one past the account address width
	assert.False(t, a.ValidateAddress("0x"+strings.Repeat("f", 65)))
}

func TestLeftPadHex(t *testing.T) {
	assert.Equal(t, "01", leftPadHex("1"))
	assert.Equal(t, "beef", leftPadHex("beef"))
}

func TestChainTagAndOppositeSide(t *testing.T) {
	assert.EqualValues(t, 1, chainTag("SRC"))
	assert.EqualValues(t, 2, chainTag("DST"))
	assert.EqualValues(t, "DST", oppositeSide("SRC"))
	assert.EqualValues(t, "SRC", oppositeSide("DST"))
}
