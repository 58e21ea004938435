package decimals

import (
	"fmt"
	"math"
	"testing"

	"github.com/mrfresh-network/fresh-program/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDecimal(t *testing.T) {
	testcases := []struct {
		decimals uint16
		value    uint64
		expected string
	}{
		{0, 1, "1"},
		{1, 1, "0.1"},
		{9, 1, "0.000000001"},
		{9, 10_000, "0.00001"},
		{9, 50_000_000_000_000_000, "50000000"},
		{18, 1, "0.000000000000000001"},
		{9, math.MaxUint64, "18446744073.709551615"},
	}
	for _, tc := range testcases {
		t.Run(fmt.Sprintf("%d_%d", tc.decimals, tc.value), func(t *testing.T) {
			actual := ToDecimal(tc.value, tc.decimals)
			assert.Equal(t, tc.expected, actual.String())
		})
	}
}

func TestToRaw(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		raw, err := ToRaw(MustFromString("1.5"), 9)
		require.NoError(t, err)
		assert.Equal(t, uint64(1_500_000_000), raw)

		raw, err = ToRaw(MustFromString("18446744073.709551615"), 9)
		require.NoError(t, err)
		assert.Equal(t, uint64(math.MaxUint64), raw)
	})
	t.Run("too_precise", func(t *testing.T) {
		_, err := ToRaw(MustFromString("0.0000000001"), 9)
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
	t.Run("negative", func(t *testing.T) {
		_, err := ToRaw(MustFromString("-1"), 9)
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
	t.Run("overflow", func(t *testing.T) {
		_, err := ToRaw(MustFromString("18446744073.709551616"), 9)
		assert.ErrorIs(t, err, errs.OverflowUint64)
	})
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "0.000010000", Format(10_000, 9))
	assert.Equal(t, "0.000000000", Format(0, 9))
	assert.Equal(t, "50000000.000000000", Format(50_000_000_000_000_000, 9))
}
