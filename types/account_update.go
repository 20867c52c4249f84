package types

import (
	"fmt"
	"runtime"

	"github.com/colorfulnotion/zkapp/common"
	"github.com/colorfulnotion/zkapp/zkerrors"
)

// MayUseToken says whether an update may act on a custom token: either the
// direct parent owns the token, or the permission is inherited from the
// parent. Setting both is invalid.
type MayUseToken struct {
	ParentsOwnToken   bool `json:"parentsOwnToken"`
	InheritFromParent bool `json:"inheritFromParent"`
}

func (m MayUseToken) Validate() error {
	if m.ParentsOwnToken && m.InheritFromParent {
		return zkerrors.ErrKMayUseTokenConflict
	}
	return nil
}

// AccountUpdateFields are the optional writes to account fields.
type AccountUpdateFields struct {
	AppState        StateUpdates            `json:"appState"`
	Delegate        Update[PublicKey]       `json:"delegate"`
	VerificationKey Update[VerificationKey] `json:"verificationKey"`
	Permissions     Update[Permissions]     `json:"permissions"`
	ZkappUri        Update[string]          `json:"zkappUri"`
	TokenSymbol     Update[string]          `json:"tokenSymbol"`
	Timing          Update[Timing]          `json:"timing"`
	VotingFor       Update[common.Field]    `json:"votingFor"`
}

// AccountUpdate is one node of a zkapp command: an authorized, conditional
// change to a single account.
type AccountUpdate struct {
	PublicKey                  PublicKey           `json:"publicKey"`
	TokenId                    TokenId             `json:"tokenId"`
	Update                     AccountUpdateFields `json:"update"`
	BalanceChange              SignedAmount        `json:"balanceChange"`
	IncrementNonce             bool                `json:"incrementNonce"`
	Events                     CommittedList       `json:"events"`
	Actions                    CommittedList       `json:"actions"`
	CallData                   common.Field        `json:"callData"`
	Preconditions              Preconditions       `json:"preconditions"`
	UseFullCommitment          bool                `json:"useFullCommitment"`
	ImplicitAccountCreationFee bool                `json:"implicitAccountCreationFee"`
	MayUseToken                MayUseToken         `json:"mayUseToken"`
	AuthorizationKind          AuthorizationKind   `json:"authorizationKind"`
	// VerificationKeyHash is the key hash a proof was made against. It is
	// only meaningful when AuthorizationKind is proved.
	VerificationKeyHash common.Field `json:"verificationKeyHash"`

	Authorization Authorization `json:"-"`
	// CallSite records where the update was constructed, for error traces.
	CallSite string `json:"-"`
}

// NewAccountUpdate returns an update that changes nothing and requires
// nothing, recording the caller as its call site.
func (hs Hashing) NewAccountUpdate(id AccountId) *AccountUpdate {
	u := &AccountUpdate{
		PublicKey: id.PublicKey,
		TokenId:   id.TokenId,
		Events:    hs.EmptyEvents(),
		Actions:   hs.EmptyActions(),
	}
	if _, file, line, ok := runtime.Caller(1); ok {
		u.CallSite = fmt.Sprintf("%s:%d", file, line)
	}
	return u
}

func (u *AccountUpdate) AccountId() AccountId {
	return AccountId{PublicKey: u.PublicKey, TokenId: u.TokenId}
}

func (u *AccountUpdate) PushEvent(hs Hashing, event ...common.Field) {
	u.Events.Push(hs.Hasher, hs.Tags.EventTags(), event...)
}

func (u *AccountUpdate) PushAction(hs Hashing, action ...common.Field) {
	u.Actions.Push(hs.Hasher, hs.Tags.ActionTags(), action...)
}

// Rehash recomputes derived list hashes, used after decoding.
func (u *AccountUpdate) Rehash(hs Hashing) {
	u.Events.Rehash(hs.Hasher, hs.Tags.EventTags())
	u.Actions.Rehash(hs.Hasher, hs.Tags.ActionTags())
}

func (u *AccountUpdate) Clone() *AccountUpdate {
	c := *u
	c.Events = u.Events.Clone()
	c.Actions = u.Actions.Clone()
	c.Update.VerificationKey.Value = u.Update.VerificationKey.Value.Clone()
	c.Authorization = Authorization{
		Signature: append(Signature(nil), u.Authorization.Signature...),
		Proof:     append(Proof(nil), u.Authorization.Proof...),
	}
	return &c
}
