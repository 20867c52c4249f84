package types

import "github.com/colorfulnotion/zkapp/common"

type EpochLedgerPreconditions struct {
	Hash          EqualsPrecondition[common.Field] `json:"hash"`
	TotalCurrency RangePrecondition[Amount]        `json:"totalCurrency"`
}

type EpochDataPreconditions struct {
	Ledger          EpochLedgerPreconditions         `json:"ledger"`
	Seed            EqualsPrecondition[common.Field] `json:"seed"`
	StartCheckpoint EqualsPrecondition[common.Field] `json:"startCheckpoint"`
	LockCheckpoint  EqualsPrecondition[common.Field] `json:"lockCheckpoint"`
	EpochLength     RangePrecondition[Length]        `json:"epochLength"`
}

type NetworkPreconditions struct {
	SnarkedLedgerHash      EqualsPrecondition[common.Field] `json:"snarkedLedgerHash"`
	BlockchainLength       RangePrecondition[Length]        `json:"blockchainLength"`
	MinWindowDensity       RangePrecondition[Length]        `json:"minWindowDensity"`
	TotalCurrency          RangePrecondition[Amount]        `json:"totalCurrency"`
	GlobalSlotSinceGenesis RangePrecondition[GlobalSlot]    `json:"globalSlotSinceGenesis"`
	StakingEpochData       EpochDataPreconditions           `json:"stakingEpochData"`
	NextEpochData          EpochDataPreconditions           `json:"nextEpochData"`
}

type AccountPreconditions struct {
	Balance          RangePrecondition[Balance]       `json:"balance"`
	Nonce            RangePrecondition[Nonce]         `json:"nonce"`
	ReceiptChainHash EqualsPrecondition[common.Field] `json:"receiptChainHash"`
	Delegate         EqualsPrecondition[PublicKey]    `json:"delegate"`
	State            StatePreconditions               `json:"state"`
	ActionState      EqualsPrecondition[common.Field] `json:"actionState"`
	IsProven         EqualsPrecondition[bool]         `json:"provedState"`
	IsNew            EqualsPrecondition[bool]         `json:"isNew"`
}

// Preconditions is the zero value when nothing is required.
type Preconditions struct {
	Network    NetworkPreconditions          `json:"network"`
	Account    AccountPreconditions          `json:"account"`
	ValidWhile RangePrecondition[GlobalSlot] `json:"validWhile"`
}
