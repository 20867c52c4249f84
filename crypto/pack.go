package crypto

import (
	"math/big"

	"github.com/colorfulnotion/zkapp/common"
)

// MaxPackedBits is how many packed bits fit one field element without
// wrapping the modulus.
const MaxPackedBits = 253

type packed struct {
	value *big.Int
	bits  int
}

// HashInput collects whole field elements plus small values that are packed
// several to a field before hashing.
type HashInput struct {
	fields []common.Field
	packed []packed
}

func NewHashInput() *HashInput {
	return &HashInput{}
}

func (in *HashInput) AddFields(fs ...common.Field) *HashInput {
	in.fields = append(in.fields, fs...)
	return in
}

func (in *HashInput) AddBool(b bool) *HashInput {
	v := int64(0)
	if b {
		v = 1
	}
	in.packed = append(in.packed, packed{big.NewInt(v), 1})
	return in
}

func (in *HashInput) AddUint32(v uint32) *HashInput {
	in.packed = append(in.packed, packed{new(big.Int).SetUint64(uint64(v)), 32})
	return in
}

func (in *HashInput) AddUint64(v uint64) *HashInput {
	in.packed = append(in.packed, packed{new(big.Int).SetUint64(v), 64})
	return in
}

// Append concatenates other onto in, keeping fields ahead of packed values.
func (in *HashInput) Append(other *HashInput) *HashInput {
	in.fields = append(in.fields, other.fields...)
	in.packed = append(in.packed, other.packed...)
	return in
}

// PackToFields returns the whole fields followed by the packed values, most
// significant first, split into chunks of at most MaxPackedBits.
func (in *HashInput) PackToFields() []common.Field {
	out := make([]common.Field, 0, len(in.fields)+len(in.packed)/4+1)
	out = append(out, in.fields...)
	if len(in.packed) == 0 {
		return out
	}
	current := new(big.Int)
	currentBits := 0
	for _, p := range in.packed {
		if currentBits+p.bits > MaxPackedBits {
			out = append(out, common.FieldFromBig(current))
			current = new(big.Int)
			currentBits = 0
		}
		current.Lsh(current, uint(p.bits))
		current.Or(current, p.value)
		currentBits += p.bits
	}
	return append(out, common.FieldFromBig(current))
}
