package statedb

import (
	"testing"

	"github.com/colorfulnotion/zkapp/chainspecs"
	"github.com/colorfulnotion/zkapp/common"
	"github.com/colorfulnotion/zkapp/types"
	"github.com/stretchr/testify/require"
)

func testValidator(t *testing.T) *Validator {
	t.Helper()
	cfg, err := chainspecs.ReadConfig("testnet")
	require.NoError(t, err)
	return NewValidator(cfg)
}

func testChain() *types.ChainView {
	return &types.ChainView{
		SnarkedLedgerHash:      common.NewField(1234),
		BlockchainLength:       50,
		MinWindowDensity:       10,
		TotalCurrency:          1_000_000,
		GlobalSlotSinceGenesis: 100,
		StakingEpochData:       types.EpochData{Seed: common.NewField(7), EpochLength: 20},
		NextEpochData:          types.EpochData{Seed: common.NewField(8), EpochLength: 3},
	}
}

func testId(n uint64) types.AccountId {
	return types.NewAccountId(types.PublicKey{X: common.NewField(n)}, types.DefaultTokenId)
}

// existing returns a funded, non-new account with default permissions.
func existing(v *Validator, n uint64, balance types.Balance) *types.Account {
	a := v.EmptyAccount(testId(n))
	a.Balance = balance
	a.IsNew = false
	return a
}

func signedUpdate(v *Validator, id types.AccountId, delta types.SignedAmount) *types.AccountUpdate {
	u := v.Hashing().NewAccountUpdate(id)
	u.BalanceChange = delta
	u.AuthorizationKind = types.AuthKindSignature
	return u
}
