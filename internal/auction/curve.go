package auction

import (
	"time"

	"github.com/holiman/uint256"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// Point is one segment of the dutch-auction decay curve. Price is bounded to
// 24 bits and Weight to 16 bits when the curve is packed for the contracts,
// but seeded in-memory curves may carry full-width prices.
type Point struct {
	Price  *uint256.Int
	Weight uint16
}

type Curve []Point

const maxEncodedPrice = 0xFFFFFF

var ErrEmptyCurve = errors.New("curve must contain at least one point")

// Encode packs the curve into the on-chain form
// [count:uint8][(price:uint24)(weight:uint16)]*, big-endian fields.
func (c Curve) Encode() ([]byte, error) {
	if len(c) == 0 {
		return nil, ErrEmptyCurve
	}
	if len(c) > 0xFF {
		return nil, errors.Errorf("too many points: %d", len(c))
	}

	out := make([]byte, 0, 1+5*len(c))
	out = append(out, byte(len(c)))
	for _, p := range c {
		if p.Price == nil || !p.Price.IsUint64() || p.Price.Uint64() > maxEncodedPrice {
			return nil, errors.Errorf("price %s out of uint24 range", p.Price)
		}
		price := p.Price.Uint64()
		out = append(out,
			byte(price>>16), byte(price>>8), byte(price),
			byte(p.Weight>>8), byte(p.Weight),
		)
	}

	return out, nil
}

func (c Curve) totalWeight() uint64 {
	var total uint64
	for _, p := range c {
		total += uint64(p.Weight)
	}
	return total
}

// PriceAt returns the curve price for the given moment. Elapsed time is
// clamped to [0, duration] and the comparison is integer-scaled:
// elapsed/duration*Σweight <= acc  <=>  elapsed*Σweight <= acc*duration,
// so the boundary between two segments resolves to the earlier, higher price.
func PriceAt(start time.Time, duration int64, curve Curve, now time.Time) *uint256.Int {
	if len(curve) == 0 || duration <= 0 {
		return uint256.NewInt(0)
	}

	elapsed := now.Unix() - start.Unix()
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > duration {
		elapsed = duration
	}

	total := curve.totalWeight()
	target := uint64(elapsed) * total

	var acc uint64
	for _, p := range curve {
		acc += uint64(p.Weight)
		if target <= acc*uint64(duration) {
			return new(uint256.Int).Set(p.Price)
		}
	}

	// guards the upper boundary when weights do not divide evenly
	return new(uint256.Int).Set(curve[len(curve)-1].Price)
}

// DefaultCurve seeds a 5-point decay schedule from the order's destination
// amount: 100%, 85%, 70%, 55% and 40% of the seed price, equal weights.
func DefaultCurve(seed *uint256.Int) Curve {
	const steps = 5
	const weight = 100

	points := make(Curve, 0, steps)
	for i := 0; i < steps; i++ {
		factor := uint256.NewInt(uint64(100 - i*15))
		// full-precision (seed*factor)/100, factor < 100 so no overflow is possible
		price, _ := new(uint256.Int).MulDivOverflow(seed, factor, uint256.NewInt(100))
		points = append(points, Point{Price: price, Weight: weight})
	}

	return points
}
