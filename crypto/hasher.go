package crypto

import (
	"fmt"
	"hash"

	"github.com/colorfulnotion/zkapp/common"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// MaxDomainTagBytes is the longest tag that fits a single field element.
const MaxDomainTagBytes = common.FieldBytes - 1

// DomainTag separates hash uses from each other.
type DomainTag string

// Field packs the tag bytes little-endian into one field element.
func (t DomainTag) Field() common.Field {
	b := []byte(t)
	if len(b) > MaxDomainTagBytes {
		b = b[:MaxDomainTagBytes]
	}
	be := make([]byte, len(b))
	for i := range b {
		be[len(b)-1-i] = b[i]
	}
	return common.FieldFromCanonical(be)
}

// Hasher is a domain-separated algebraic hash over field elements.
type Hasher interface {
	HashWithDomainTag(tag DomainTag, fields []common.Field) common.Field
}

// MiMCHasher hashes with MiMC over the bn254 scalar field.
type MiMCHasher struct{}

func NewMiMCHasher() *MiMCHasher {
	return &MiMCHasher{}
}

func (MiMCHasher) HashWithDomainTag(tag DomainTag, fields []common.Field) common.Field {
	var h hash.Hash = mimc.NewMiMC()
	write(h, tag.Field())
	for _, f := range fields {
		write(h, f)
	}
	return common.FieldFromCanonical(h.Sum(nil))
}

func write(h hash.Hash, f common.Field) {
	b := f.Bytes()
	if _, err := h.Write(b[:]); err != nil {
		// canonical encodings are always reduced
		panic(fmt.Sprintf("mimc write: %v", err))
	}
}

// ConsHash folds one element onto a running list hash.
func ConsHash(h Hasher, tag DomainTag, acc common.Field, item common.Field) common.Field {
	return h.HashWithDomainTag(tag, []common.Field{acc, item})
}
