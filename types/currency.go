package types

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/colorfulnotion/zkapp/zkerrors"
	"github.com/holiman/uint256"
)

type (
	Amount     uint64
	Balance    uint64
	Nonce      uint32
	GlobalSlot uint32
	Length     uint32
)

// Counters travel as decimal strings so 64-bit values survive JSON consumers
// that parse numbers as doubles.

func marshalUint(v uint64) ([]byte, error) {
	return json.Marshal(strconv.FormatUint(v, 10))
}

func unmarshalUint(data []byte, bits int) (uint64, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", zkerrors.ErrWMalformed, err)
	}
	return v, nil
}

func (a Amount) MarshalJSON() ([]byte, error) { return marshalUint(uint64(a)) }
func (a *Amount) UnmarshalJSON(data []byte) error {
	v, err := unmarshalUint(data, 64)
	*a = Amount(v)
	return err
}

func (b Balance) MarshalJSON() ([]byte, error) { return marshalUint(uint64(b)) }
func (b *Balance) UnmarshalJSON(data []byte) error {
	v, err := unmarshalUint(data, 64)
	*b = Balance(v)
	return err
}

func (n Nonce) MarshalJSON() ([]byte, error) { return marshalUint(uint64(n)) }
func (n *Nonce) UnmarshalJSON(data []byte) error {
	v, err := unmarshalUint(data, 32)
	*n = Nonce(v)
	return err
}

func (s GlobalSlot) MarshalJSON() ([]byte, error) { return marshalUint(uint64(s)) }
func (s *GlobalSlot) UnmarshalJSON(data []byte) error {
	v, err := unmarshalUint(data, 32)
	*s = GlobalSlot(v)
	return err
}

func (l Length) MarshalJSON() ([]byte, error) { return marshalUint(uint64(l)) }
func (l *Length) UnmarshalJSON(data []byte) error {
	v, err := unmarshalUint(data, 32)
	*l = Length(v)
	return err
}

// SignedAmount is a sign-magnitude amount. Zero is always stored positive.
type SignedAmount struct {
	Magnitude Amount
	Negative  bool
}

func Positive(a Amount) SignedAmount {
	return SignedAmount{Magnitude: a}
}

func Negative(a Amount) SignedAmount {
	return SignedAmount{Magnitude: a, Negative: a != 0}
}

func (s SignedAmount) IsZero() bool {
	return s.Magnitude == 0
}

func (s SignedAmount) IsPositive() bool {
	return s.Magnitude != 0 && !s.Negative
}

func (s SignedAmount) IsNegative() bool {
	return s.Magnitude != 0 && s.Negative
}

func (s SignedAmount) Negate() SignedAmount {
	if s.Negative {
		return Positive(s.Magnitude)
	}
	return Negative(s.Magnitude)
}

// Add returns s + o, failing when the magnitude leaves the uint64 range.
func (s SignedAmount) Add(o SignedAmount) (SignedAmount, error) {
	a := uint256.NewInt(uint64(s.Magnitude))
	b := uint256.NewInt(uint64(o.Magnitude))
	if s.Negative == o.Negative {
		sum := new(uint256.Int).Add(a, b)
		if !sum.IsUint64() {
			return SignedAmount{}, zkerrors.ErrBAmountOverflow
		}
		if s.Negative {
			return Negative(Amount(sum.Uint64())), nil
		}
		return Positive(Amount(sum.Uint64())), nil
	}
	if a.Cmp(b) >= 0 {
		diff := new(uint256.Int).Sub(a, b)
		if s.Negative {
			return Negative(Amount(diff.Uint64())), nil
		}
		return Positive(Amount(diff.Uint64())), nil
	}
	diff := new(uint256.Int).Sub(b, a)
	if o.Negative {
		return Negative(Amount(diff.Uint64())), nil
	}
	return Positive(Amount(diff.Uint64())), nil
}

func (s SignedAmount) Sub(o SignedAmount) (SignedAmount, error) {
	return s.Add(o.Negate())
}

func (s SignedAmount) String() string {
	if s.IsNegative() {
		return "-" + strconv.FormatUint(uint64(s.Magnitude), 10)
	}
	return strconv.FormatUint(uint64(s.Magnitude), 10)
}

type signedAmountJSON struct {
	Magnitude Amount `json:"magnitude"`
	Sgn       string `json:"sgn"`
}

func (s SignedAmount) MarshalJSON() ([]byte, error) {
	sgn := "Positive"
	if s.IsNegative() {
		sgn = "Negative"
	}
	return json.Marshal(signedAmountJSON{Magnitude: s.Magnitude, Sgn: sgn})
}

func (s *SignedAmount) UnmarshalJSON(data []byte) error {
	var raw signedAmountJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Sgn {
	case "Positive", "":
		*s = Positive(raw.Magnitude)
	case "Negative":
		*s = Negative(raw.Magnitude)
	default:
		return fmt.Errorf("%w: sign %q", zkerrors.ErrWMalformed, raw.Sgn)
	}
	return nil
}

// AddSigned applies a signed change to a balance.
func (b Balance) AddSigned(s SignedAmount) (Balance, error) {
	cur := uint256.NewInt(uint64(b))
	delta := uint256.NewInt(uint64(s.Magnitude))
	if s.Negative {
		if cur.Lt(delta) {
			return b, zkerrors.ErrBBalanceUnderflow
		}
		return Balance(new(uint256.Int).Sub(cur, delta).Uint64()), nil
	}
	sum := new(uint256.Int).Add(cur, delta)
	if !sum.IsUint64() {
		return b, zkerrors.ErrBBalanceOverflow
	}
	return Balance(sum.Uint64()), nil
}
