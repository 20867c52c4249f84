package types

import (
	"encoding/json"
	"fmt"

	"github.com/colorfulnotion/zkapp/common"
	"github.com/colorfulnotion/zkapp/zkerrors"
)

// PublicKey is a compressed curve point: the x coordinate and the parity of y.
type PublicKey struct {
	X     common.Field
	IsOdd bool
}

// EmptyPublicKey is the all-zero key used where no key is set.
var EmptyPublicKey = PublicKey{}

func (pk PublicKey) IsEmpty() bool {
	return pk == EmptyPublicKey
}

// Bytes returns x followed by one parity byte.
func (pk PublicKey) Bytes() []byte {
	x := pk.X.Bytes()
	out := make([]byte, 0, len(x)+1)
	out = append(out, x[:]...)
	if pk.IsOdd {
		return append(out, 1)
	}
	return append(out, 0)
}

func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	if len(b) != common.FieldBytes+1 || b[common.FieldBytes] > 1 {
		return PublicKey{}, fmt.Errorf("%w: public key must be %d bytes", zkerrors.ErrWMalformed, common.FieldBytes+1)
	}
	x := common.FieldFromCanonical(b[:common.FieldBytes])
	if x.Bytes() != [common.FieldBytes]byte(b[:common.FieldBytes]) {
		return PublicKey{}, fmt.Errorf("%w: public key x is not reduced", zkerrors.ErrWMalformed)
	}
	return PublicKey{X: x, IsOdd: b[common.FieldBytes] == 1}, nil
}

func (pk PublicKey) Hex() string {
	return common.Bytes2Hex(pk.Bytes())
}

func (pk PublicKey) String() string {
	h := pk.Hex()
	return h[:8] + ".." + h[len(h)-4:]
}

func (pk PublicKey) fields() []common.Field {
	return []common.Field{pk.X, common.BoolField(pk.IsOdd)}
}

func (pk PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(pk.Hex())
}

func (pk *PublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := common.Hex2Bytes(s)
	if err != nil {
		return fmt.Errorf("%w: %v", zkerrors.ErrWMalformed, err)
	}
	v, err := PublicKeyFromBytes(b)
	if err != nil {
		return err
	}
	*pk = v
	return nil
}

// TokenId identifies a token. The native token is DefaultTokenId.
type TokenId struct {
	common.Field
}

var DefaultTokenId = TokenId{common.NewField(1)}

func (t TokenId) IsDefault() bool {
	return t == DefaultTokenId
}

// AccountId is the ledger key of an account.
type AccountId struct {
	PublicKey PublicKey `json:"publicKey"`
	TokenId   TokenId   `json:"tokenId"`
}

func NewAccountId(pk PublicKey, tokenId TokenId) AccountId {
	return AccountId{PublicKey: pk, TokenId: tokenId}
}

func (id AccountId) String() string {
	if id.TokenId.IsDefault() {
		return id.PublicKey.String()
	}
	return fmt.Sprintf("%s/%s", id.PublicKey, id.TokenId.Short())
}
