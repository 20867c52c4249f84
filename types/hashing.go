package types

import (
	"github.com/colorfulnotion/zkapp/common"
	"github.com/colorfulnotion/zkapp/crypto"
)

// Hashing binds a hash function to the domain tags of one network. Everything
// that derives a commitment or list hash goes through it.
type Hashing struct {
	Hasher crypto.Hasher
	Tags   crypto.DomainTags
}

func NewHashing(h crypto.Hasher, tags crypto.DomainTags) Hashing {
	return Hashing{Hasher: h, Tags: tags}
}

func (hs Hashing) EmptyEvents() CommittedList {
	return NewCommittedList(hs.Hasher, hs.Tags.EventTags())
}

func (hs Hashing) EmptyActions() CommittedList {
	return NewCommittedList(hs.Hasher, hs.Tags.ActionTags())
}

// EmptyActionState seeds the action state window of new accounts.
func (hs Hashing) EmptyActionState() common.Field {
	return hs.Hasher.HashWithDomainTag(hs.Tags.ActionStateEmpty, nil)
}

// PushActions folds a non-empty action list onto an action state.
func (hs Hashing) PushActions(state common.Field, actions CommittedList) common.Field {
	return crypto.ConsHash(hs.Hasher, hs.Tags.Actions, state, actions.Hash)
}

// DeriveTokenId returns the id of the token owned by owner.
func (hs Hashing) DeriveTokenId(owner AccountId) TokenId {
	fields := append(owner.PublicKey.fields(), owner.TokenId.Field)
	return TokenId{hs.Hasher.HashWithDomainTag(hs.Tags.DeriveTokenId, fields)}
}

// NewVerificationKey wraps opaque key data with its hash.
func (hs Hashing) NewVerificationKey(data []byte) VerificationKey {
	h := hs.Hasher.HashWithDomainTag(hs.Tags.VerificationKey, []common.Field{common.FieldFromBytes(data)})
	return VerificationKey{Data: append([]byte(nil), data...), Hash: h}
}

func (hs Hashing) MemoHash(memo string) common.Field {
	return hs.Hasher.HashWithDomainTag(hs.Tags.Memo, []common.Field{common.FieldFromBytes([]byte(memo))})
}

// SignatureMessage is the field a signer signs for a commitment on a network.
func (hs Hashing) SignatureMessage(commitment common.Field, networkID string) common.Field {
	return hs.Hasher.HashWithDomainTag(hs.Tags.SignatureMessage, []common.Field{commitment, common.FieldFromBytes([]byte(networkID))})
}
