// Package saturating implements integer arithmetic that clamps at the type
// bounds instead of wrapping or panicking.
//
// Reward and supply values must never silently wrap, so every arithmetic
// step of the program goes through these helpers.
package saturating

import (
	"math"

	"github.com/gaze-network/uint128"
)

// AddU64 returns a+b, clamped to math.MaxUint64.
func AddU64(a, b uint64) uint64 {
	sum := uint128.From64(a).Add64(b)
	if !sum.IsUint64() {
		return math.MaxUint64
	}
	return sum.Uint64()
}

// SubU64 returns a-b, clamped to 0.
func SubU64(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

// MulU64 returns a*b, clamped to math.MaxUint64.
func MulU64(a, b uint64) uint64 {
	product := uint128.From64(a).Mul64(b)
	if !product.IsUint64() {
		return math.MaxUint64
	}
	return product.Uint64()
}

// DivU64 returns floor(a/b). Division by zero yields 0.
func DivU64(a, b uint64) uint64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// MulDivU64 returns floor(saturating(a*mul)/div).
// The multiplication happens first so integer truncation only applies once.
func MulDivU64(a, mul, div uint64) uint64 {
	return DivU64(MulU64(a, mul), div)
}

// SubI64 returns a-b, clamped to [math.MinInt64, math.MaxInt64].
func SubI64(a, b int64) int64 {
	diff := a - b
	// overflow happened iff the operands have different signs and the result sign differs from a
	if (a >= 0) != (b >= 0) && (diff >= 0) != (a >= 0) {
		if a >= 0 {
			return math.MaxInt64
		}
		return math.MinInt64
	}
	return diff
}

// AddI64 returns a+b, clamped to [math.MinInt64, math.MaxInt64].
func AddI64(a, b int64) int64 {
	sum := a + b
	if (a >= 0) == (b >= 0) && (sum >= 0) != (a >= 0) {
		if a >= 0 {
			return math.MaxInt64
		}
		return math.MinInt64
	}
	return sum
}

// HalveU64 divides v by two n times, the same as n consecutive floor divisions.
// Once the value reaches zero it stays zero.
func HalveU64(v uint64, n uint64) uint64 {
	if n >= 64 {
		return 0
	}
	return v >> n
}
