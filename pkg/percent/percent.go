package percent

import "math/big"

// RateScale is the fixed denominator for commission rates.
// A rate of 250 at this scale means 2.5%.
const RateScale = 10000

// Of returns floor(amount * rate / scale).
// The multiplication is carried out in big.Int so no int64 amount can
// overflow the intermediate product.
func Of(amount int64, rate uint32, scale uint32) int64 {
	if amount <= 0 || rate == 0 || scale == 0 {
		return 0
	}
	product := new(big.Int).Mul(big.NewInt(amount), big.NewInt(int64(rate)))
	product.Quo(product, big.NewInt(int64(scale)))
	return product.Int64()
}

// InRange reports whether min <= value <= max.
func InRange(value, min, max uint32) bool {
	return value >= min && value <= max
}
