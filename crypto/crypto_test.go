package crypto

import (
	"math/big"
	"testing"

	"github.com/colorfulnotion/zkapp/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainTagField(t *testing.T) {
	// "ab" little-endian is 0x6261
	assert.Equal(t, common.NewField(0x6261), DomainTag("ab").Field())
	assert.True(t, DomainTag("").Field().IsZero())
	long := DomainTag("0123456789012345678901234567890123")
	assert.Equal(t, DomainTag(long[:MaxDomainTagBytes]).Field(), long.Field())
}

func TestMiMCHasherSeparatesDomains(t *testing.T) {
	h := NewMiMCHasher()
	in := []common.Field{common.NewField(1), common.NewField(2)}
	a := h.HashWithDomainTag("TagA", in)
	b := h.HashWithDomainTag("TagB", in)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, h.HashWithDomainTag("TagA", in))
	assert.NotEqual(t, a, h.HashWithDomainTag("TagA", []common.Field{common.NewField(2), common.NewField(1)}))
	assert.NotEqual(t, h.HashWithDomainTag("TagA", nil), h.HashWithDomainTag("TagB", nil))
}

func TestConsHash(t *testing.T) {
	h := NewMiMCHasher()
	acc := common.NewField(9)
	item := common.NewField(4)
	assert.Equal(t, h.HashWithDomainTag("Cons", []common.Field{acc, item}), ConsHash(h, "Cons", acc, item))
}

func TestPackToFields(t *testing.T) {
	in := NewHashInput().
		AddFields(common.NewField(42)).
		AddBool(true).
		AddUint32(5)
	out := in.PackToFields()
	require.Len(t, out, 2)
	assert.Equal(t, common.NewField(42), out[0])
	// 1 << 32 | 5
	assert.Equal(t, common.NewField(1<<32|5), out[1])
}

func TestPackToFieldsSplits(t *testing.T) {
	in := NewHashInput()
	for i := 0; i < 4; i++ {
		in.AddUint64(uint64(i + 1))
	}
	out := in.PackToFields()
	// three 64-bit values fit in 253 bits, the fourth starts a new field
	require.Len(t, out, 2)
	expect := new(big.Int).SetUint64(1)
	for i := 2; i <= 3; i++ {
		expect.Lsh(expect, 64)
		expect.Or(expect, big.NewInt(int64(i)))
	}
	assert.Equal(t, common.FieldFromBig(expect), out[0])
	assert.Equal(t, common.NewField(4), out[1])
}

func TestPackEmpty(t *testing.T) {
	assert.Empty(t, NewHashInput().PackToFields())
	other := NewHashInput().AddBool(false)
	in := NewHashInput().AddFields(common.NewField(1)).Append(other)
	assert.Equal(t, []common.Field{common.NewField(1), {}}, in.PackToFields())
}

func TestDomainTagsValidate(t *testing.T) {
	var d DomainTags
	assert.Error(t, d.Validate())
}
