package types

import (
	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/mr-tron/base58"
	"github.com/mrfresh-network/fresh-program/common/errs"
)

// PubkeySize is the length of an account address in bytes.
const PubkeySize = 32

// Pubkey identifies an account or a program on the ledger.
type Pubkey [PubkeySize]byte

// ClockSysvarID is the address of the ledger clock account.
var ClockSysvarID = utils.Must(ParsePubkey("SysvarC1ock11111111111111111111111111111111"))

// ParsePubkey decodes a base58 encoded address.
func ParsePubkey(s string) (Pubkey, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, errors.Wrapf(errs.InvalidArgument, "invalid base58 pubkey %q: %v", s, err)
	}
	if len(raw) != PubkeySize {
		return Pubkey{}, errors.Wrapf(errs.InvalidArgument, "invalid pubkey length %d, expected %d", len(raw), PubkeySize)
	}
	var pk Pubkey
	copy(pk[:], raw)
	return pk, nil
}

// PubkeyFromSeed derives a deterministic address from a short label. Only meant for local tooling and tests.
func PubkeyFromSeed(seed string) Pubkey {
	var pk Pubkey
	copy(pk[:], seed)
	return pk
}

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// MarshalText implements encoding.TextMarshaler.
func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pubkey) UnmarshalText(text []byte) error {
	pk, err := ParsePubkey(string(text))
	if err != nil {
		return errors.WithStack(err)
	}
	*p = pk
	return nil
}
