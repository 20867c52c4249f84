package types

import (
	"github.com/colorfulnotion/zkapp/common"
)

// VerificationKey is the key a proof is checked against. Data is opaque.
type VerificationKey struct {
	Data []byte       `json:"data"`
	Hash common.Field `json:"hash"`
}

func (vk VerificationKey) Clone() VerificationKey {
	return VerificationKey{Data: append([]byte(nil), vk.Data...), Hash: vk.Hash}
}

// ZkappAccount is the smart-contract part of an account.
type ZkappAccount struct {
	AppState        AppState        `json:"appState"`
	VerificationKey VerificationKey `json:"verificationKey"`
	// ActionState is a rolling window of recent action-state hashes, newest
	// last.
	ActionState    []common.Field `json:"actionState"`
	LastActionSlot GlobalSlot     `json:"lastActionSlot"`
	IsProven       bool           `json:"provedState"`
	ZkappUri       string         `json:"zkappUri"`
}

// CurrentActionState is the newest entry of the window.
func (z *ZkappAccount) CurrentActionState() common.Field {
	if len(z.ActionState) == 0 {
		return common.Field{}
	}
	return z.ActionState[len(z.ActionState)-1]
}

// HasActionState reports whether h is anywhere in the window.
func (z *ZkappAccount) HasActionState(h common.Field) bool {
	for _, s := range z.ActionState {
		if s == h {
			return true
		}
	}
	return false
}

type Account struct {
	PublicKey        PublicKey    `json:"publicKey"`
	TokenId          TokenId      `json:"tokenId"`
	TokenSymbol      string       `json:"tokenSymbol"`
	Balance          Balance      `json:"balance"`
	Nonce            Nonce        `json:"nonce"`
	ReceiptChainHash common.Field `json:"receiptChainHash"`
	Delegate         *PublicKey   `json:"delegate,omitempty"`
	VotingFor        common.Field `json:"votingFor"`
	Timing           Timing       `json:"timing"`
	Permissions      Permissions  `json:"permissions"`
	Zkapp            ZkappAccount `json:"zkapp"`
	// IsNew is true until the first update is applied to the account.
	IsNew bool `json:"isNew"`
}

// NewEmptyAccount returns the account implied for an id missing from the
// ledger. emptyActionState fills the action state window.
func NewEmptyAccount(id AccountId, emptyActionState common.Field, history int, txnVersion uint32) *Account {
	window := make([]common.Field, history)
	for i := range window {
		window[i] = emptyActionState
	}
	a := &Account{
		PublicKey:   id.PublicKey,
		TokenId:     id.TokenId,
		Permissions: DefaultPermissions(txnVersion),
		Zkapp:       ZkappAccount{ActionState: window},
		IsNew:       true,
	}
	if id.TokenId.IsDefault() {
		// native accounts delegate to themselves
		pk := id.PublicKey
		a.Delegate = &pk
	}
	return a
}

func (a *Account) Id() AccountId {
	return AccountId{PublicKey: a.PublicKey, TokenId: a.TokenId}
}

func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	if a.Delegate != nil {
		d := *a.Delegate
		c.Delegate = &d
	}
	c.Zkapp.VerificationKey = a.Zkapp.VerificationKey.Clone()
	c.Zkapp.ActionState = append([]common.Field(nil), a.Zkapp.ActionState...)
	return &c
}
