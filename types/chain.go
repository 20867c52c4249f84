package types

import "github.com/colorfulnotion/zkapp/common"

type EpochLedger struct {
	Hash          common.Field `json:"hash"`
	TotalCurrency Amount       `json:"totalCurrency"`
}

type EpochData struct {
	Ledger          EpochLedger  `json:"ledger"`
	Seed            common.Field `json:"seed"`
	StartCheckpoint common.Field `json:"startCheckpoint"`
	LockCheckpoint  common.Field `json:"lockCheckpoint"`
	EpochLength     Length       `json:"epochLength"`
}

// ChainView is the read-only network state preconditions are checked
// against.
type ChainView struct {
	SnarkedLedgerHash      common.Field `json:"snarkedLedgerHash"`
	BlockchainLength       Length       `json:"blockchainLength"`
	MinWindowDensity       Length       `json:"minWindowDensity"`
	TotalCurrency          Amount       `json:"totalCurrency"`
	GlobalSlotSinceGenesis GlobalSlot   `json:"globalSlotSinceGenesis"`
	StakingEpochData       EpochData    `json:"stakingEpochData"`
	NextEpochData          EpochData    `json:"nextEpochData"`
}
