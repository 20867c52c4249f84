package types

import (
	"github.com/colorfulnotion/zkapp/common"
	"github.com/colorfulnotion/zkapp/crypto"
)

var testTags = crypto.DomainTags{
	AccountUpdateBody: "TestZkappBody",
	AccountUpdateNode: "TestAcctUpdateNode",
	AccountUpdateCons: "TestAcctUpdateCons",
	FeePayerBody:      "TestFeePayerBody",
	ZkappCommand:      "TestZkappCommand",
	Memo:              "TestZkappMemo",
	Event:             "TestZkappEvent",
	Events:            "TestZkappEvents",
	EventsEmpty:       "TestZkappEventsEmpty",
	Action:            "TestZkappAction",
	Actions:           "TestZkappSeqEvents",
	ActionsEmpty:      "TestZkappActionsEmpty",
	ActionStateEmpty:  "TestZkappActionStateEmpty",
	DeriveTokenId:     "TestDeriveTokenId",
	VerificationKey:   "TestZkappVk",
	SignatureMessage:  "TestSignature",
}

func testHashing() Hashing {
	return NewHashing(crypto.NewMiMCHasher(), testTags)
}

func testKey(n uint64) PublicKey {
	return PublicKey{X: common.NewField(n), IsOdd: n%2 == 1}
}

func testId(n uint64) AccountId {
	return NewAccountId(testKey(n), DefaultTokenId)
}
