package common

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldBasics(t *testing.T) {
	a := NewField(7)
	assert.True(t, Field{}.IsZero())
	assert.True(t, a == NewField(7))
	assert.Equal(t, BoolField(true), NewField(1))
	assert.Equal(t, "7", a.String())
}

func TestFieldFromBigReduces(t *testing.T) {
	minusOne := new(big.Int).Sub(fr.Modulus(), big.NewInt(1))
	assert.Equal(t, minusOne, FieldFromBig(minusOne).Big())
	assert.True(t, FieldFromBig(fr.Modulus()).IsZero())
}

func TestFieldJSON(t *testing.T) {
	f := NewField(123456789)
	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, `"123456789"`, string(data))

	var g Field
	require.NoError(t, json.Unmarshal(data, &g))
	assert.Equal(t, f, g)

	assert.Error(t, json.Unmarshal([]byte(`"-1"`), &g))
	assert.Error(t, json.Unmarshal([]byte(`"`+fr.Modulus().String()+`"`), &g))
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &g))
}

func TestFieldFromBytes(t *testing.T) {
	a := FieldFromBytes([]byte("memo"))
	b := FieldFromBytes([]byte("memo"))
	c := FieldFromBytes([]byte("other"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestHexRoundTrip(t *testing.T) {
	s := Bytes2Hex([]byte{0xde, 0xad})
	assert.Equal(t, "0xdead", s)
	b, err := Hex2Bytes(s)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad}, b)
	h := Blake2Hash([]byte("x"))
	assert.NotEqual(t, Hash{}, h)
	assert.Len(t, Str(h), 10)
}
