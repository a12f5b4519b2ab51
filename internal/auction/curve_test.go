package auction

import (
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurveEncode(t *testing.T) {
	curve := Curve{
		{Price: uint256.NewInt(0xABCDEF), Weight: 0x0102},
		{Price: uint256.NewInt(1), Weight: 1},
	}

	out, err := curve.Encode()
	require.NoError(t, err)
	require.Len(t, out, 1+5*len(curve))

	assert.Equal(t, byte(2), out[0])
	assert.Equal(t, []byte{0xAB, 0xCD, 0xEF, 0x01, 0x02}, out[1:6])
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x00, 0x01}, out[6:11])
}

func TestCurveEncodeRejectsBadInput(t *testing.T) {
	_, err := Curve{}.Encode()
	assert.ErrorIs(t, err, ErrEmptyCurve)

	_, err = Curve{{Price: uint256.NewInt(maxEncodedPrice + 1), Weight: 1}}.Encode()
	assert.Error(t, err)

	// max uint24 still fits
	_, err = Curve{{Price: uint256.NewInt(maxEncodedPrice), Weight: 1}}.Encode()
	assert.NoError(t, err)
}

func TestPriceAtTwoPointCurve(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	const duration = 500
	curve := Curve{
		{Price: uint256.NewInt(800_000), Weight: 100},
		{Price: uint256.NewInt(400_000), Weight: 100},
	}

	at := func(elapsed int64) uint64 {
		return PriceAt(start, duration, curve, start.Add(time.Duration(elapsed)*time.Second)).Uint64()
	}

	assert.EqualValues(t, 800_000, at(0))
	// the segment boundary resolves to the earlier, higher price
	assert.EqualValues(t, 800_000, at(250))
	assert.EqualValues(t, 400_000, at(251))
	assert.EqualValues(t, 400_000, at(500))
	// elapsed clamps to the window on both sides
	assert.EqualValues(t, 800_000, at(-10))
	assert.EqualValues(t, 400_000, at(10_000))
}

func TestPriceAtFivePointCurve(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	const duration = 500
	curve := Curve{
		{Price: uint256.NewInt(800_000), Weight: 100},
		{Price: uint256.NewInt(700_000), Weight: 100},
		{Price: uint256.NewInt(600_000), Weight: 100},
		{Price: uint256.NewInt(500_000), Weight: 100},
		{Price: uint256.NewInt(400_000), Weight: 100},
	}

	at := func(elapsed int64) uint64 {
		return PriceAt(start, duration, curve, start.Add(time.Duration(elapsed)*time.Second)).Uint64()
	}

	assert.EqualValues(t, 800_000, at(0))
	assert.EqualValues(t, 600_000, at(250))
	assert.EqualValues(t, 400_000, at(500))
}

func TestPriceAtMonotonic(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	const duration = 500
	curve := DefaultCurve(uint256.NewInt(1_000_000))

	prev := PriceAt(start, duration, curve, start)
	for elapsed := int64(1); elapsed <= duration; elapsed++ {
		cur := PriceAt(start, duration, curve, start.Add(time.Duration(elapsed)*time.Second))
		assert.False(t, cur.Gt(prev), "price rose at t=%d", elapsed)
		prev = cur
	}
}

func TestDefaultCurve(t *testing.T) {
	curve := DefaultCurve(uint256.NewInt(1000))
	require.Len(t, curve, 5)

	want := []uint64{1000, 850, 700, 550, 400}
	for i, p := range curve {
		assert.EqualValues(t, want[i], p.Price.Uint64(), "point %d", i)
		assert.EqualValues(t, 100, p.Weight, "point %d", i)
	}
}

func TestPriceAtDegenerate(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)

	assert.True(t, PriceAt(start, 0, DefaultCurve(uint256.NewInt(10)), start).IsZero())
	assert.True(t, PriceAt(start, 100, nil, start).IsZero())
}
