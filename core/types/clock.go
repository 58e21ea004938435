package types

import (
	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/common/errs"
	"github.com/near/borsh-go"
)

// ClockSize is the length of the encoded clock account data.
const ClockSize = 40

// Clock is the trusted time source the host provides to every instruction.
// Field order follows the host's clock account layout.
type Clock struct {
	Slot                uint64
	EpochStartTimestamp int64
	Epoch               uint64
	LeaderScheduleEpoch uint64
	UnixTimestamp       int64
}

// NewClock returns a clock at the given slot and unix timestamp, epoch fields zeroed.
func NewClock(unixTimestamp int64, slot uint64) Clock {
	return Clock{
		Slot:                slot,
		EpochStartTimestamp: unixTimestamp,
		UnixTimestamp:       unixTimestamp,
	}
}

func (c Clock) Marshal() ([]byte, error) {
	data, err := borsh.Serialize(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode clock")
	}
	return data, nil
}

// UnmarshalClock decodes clock account data.
func UnmarshalClock(data []byte) (Clock, error) {
	if len(data) != ClockSize {
		return Clock{}, errors.Wrapf(errs.InvalidArgument, "invalid clock data length %d, expected %d", len(data), ClockSize)
	}
	var c Clock
	if err := borsh.Deserialize(&c, data); err != nil {
		return Clock{}, errors.Wrap(err, "failed to decode clock")
	}
	return c, nil
}
