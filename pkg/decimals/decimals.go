package decimals

import (
	"math/big"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/common/errs"
	"github.com/shopspring/decimal"
)

// MustFromString convert string to decimal.Decimal. Panic if error
// string must be a valid number, not NaN, Inf or empty string.
func MustFromString(s string) decimal.Decimal {
	return utils.Must(decimal.NewFromString(s))
}

// ToDecimal converts a raw token amount in base units to a decimal with the given number of decimals.
func ToDecimal(raw uint64, decimals uint16) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(raw), -int32(decimals))
}

// ToRaw converts a decimal token amount to base units. Fractions smaller than
// one base unit are rejected.
func ToRaw(amount decimal.Decimal, decimals uint16) (uint64, error) {
	if amount.IsNegative() {
		return 0, errors.Wrapf(errs.InvalidArgument, "negative amount %s", amount)
	}
	shifted := amount.Shift(int32(decimals))
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, errors.Wrapf(errs.InvalidArgument, "amount %s has more than %d decimals", amount, decimals)
	}
	raw := shifted.BigInt()
	if !raw.IsUint64() {
		return 0, errors.Wrapf(errs.OverflowUint64, "amount %s", amount)
	}
	return raw.Uint64(), nil
}

// Format renders a raw amount with exactly decimals fractional digits.
func Format(raw uint64, decimals uint16) string {
	return ToDecimal(raw, decimals).StringFixed(int32(decimals))
}
