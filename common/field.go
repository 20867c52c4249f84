package common

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// FieldBytes is the size of a canonical big-endian field encoding.
const FieldBytes = fr.Bytes

// Field is an element of the scalar field that account state, hashes and
// commitments live in. The zero value is the field element 0 and values are
// comparable with ==.
type Field struct {
	e fr.Element
}

func NewField(v uint64) Field {
	var f Field
	f.e.SetUint64(v)
	return f
}

func BoolField(b bool) Field {
	if b {
		return NewField(1)
	}
	return Field{}
}

// FieldFromBig reduces v modulo the field order.
func FieldFromBig(v *big.Int) Field {
	var f Field
	f.e.SetBigInt(v)
	return f
}

// FieldFromCanonical interprets b as a big-endian integer, reduced modulo the
// field order.
func FieldFromCanonical(b []byte) Field {
	var f Field
	f.e.SetBytes(b)
	return f
}

// FieldFromBytes maps arbitrary data to a field element through blake2b.
func FieldFromBytes(data []byte) Field {
	return FieldFromCanonical(ComputeHash(data))
}

// FieldFromString parses a decimal (or 0x-prefixed hex) integer.
func FieldFromString(s string) (Field, error) {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return Field{}, fmt.Errorf("invalid field element %q", s)
	}
	if v.Sign() < 0 || v.Cmp(fr.Modulus()) >= 0 {
		return Field{}, fmt.Errorf("field element %q out of range", s)
	}
	return FieldFromBig(v), nil
}

func (f Field) IsZero() bool {
	return f.e.IsZero()
}

// Bytes returns the canonical big-endian encoding.
func (f Field) Bytes() [FieldBytes]byte {
	return f.e.Bytes()
}

func (f Field) Big() *big.Int {
	return f.e.BigInt(new(big.Int))
}

// String returns the decimal representation.
func (f Field) String() string {
	return f.Big().String()
}

// Short returns an abbreviated representation for logs.
func (f Field) Short() string {
	s := f.String()
	if len(s) <= 12 {
		return s
	}
	return s[:5] + ".." + s[len(s)-5:]
}

func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *Field) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := FieldFromString(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}
