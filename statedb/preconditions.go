package statedb

import (
	"fmt"

	"github.com/colorfulnotion/zkapp/types"
	"github.com/colorfulnotion/zkapp/zkerrors"
)

// checkNetworkPreconditions reports one error per unsatisfied network field.
func checkNetworkPreconditions(chain *types.ChainView, p *types.NetworkPreconditions, errs *errorList) {
	if !p.SnarkedLedgerHash.IsSatisfied(chain.SnarkedLedgerHash) {
		errs.addf(zkerrors.ErrPSnarkedLedgerHash, "want %s, have %s", p.SnarkedLedgerHash.Value.Short(), chain.SnarkedLedgerHash.Short())
	}
	if !p.BlockchainLength.IsSatisfied(chain.BlockchainLength) {
		errs.addf(zkerrors.ErrPBlockchainLength, "%d not in [%d, %d]", chain.BlockchainLength, p.BlockchainLength.Lower, p.BlockchainLength.Upper)
	}
	if !p.MinWindowDensity.IsSatisfied(chain.MinWindowDensity) {
		errs.addf(zkerrors.ErrPMinWindowDensity, "%d not in [%d, %d]", chain.MinWindowDensity, p.MinWindowDensity.Lower, p.MinWindowDensity.Upper)
	}
	if !p.TotalCurrency.IsSatisfied(chain.TotalCurrency) {
		errs.addf(zkerrors.ErrPTotalCurrency, "%d not in [%d, %d]", chain.TotalCurrency, p.TotalCurrency.Lower, p.TotalCurrency.Upper)
	}
	if !p.GlobalSlotSinceGenesis.IsSatisfied(chain.GlobalSlotSinceGenesis) {
		errs.addf(zkerrors.ErrPGlobalSlotSinceGenesis, "%d not in [%d, %d]", chain.GlobalSlotSinceGenesis, p.GlobalSlotSinceGenesis.Lower, p.GlobalSlotSinceGenesis.Upper)
	}
	checkEpochData(zkerrors.ErrPStakingEpochData, &chain.StakingEpochData, &p.StakingEpochData, errs)
	checkEpochData(zkerrors.ErrPNextEpochData, &chain.NextEpochData, &p.NextEpochData, errs)
}

func checkEpochData(sentinel error, d *types.EpochData, p *types.EpochDataPreconditions, errs *errorList) {
	if !p.Ledger.Hash.IsSatisfied(d.Ledger.Hash) {
		errs.addf(sentinel, "ledger.hash")
	}
	if !p.Ledger.TotalCurrency.IsSatisfied(d.Ledger.TotalCurrency) {
		errs.addf(sentinel, "ledger.totalCurrency %d not in [%d, %d]", d.Ledger.TotalCurrency, p.Ledger.TotalCurrency.Lower, p.Ledger.TotalCurrency.Upper)
	}
	if !p.Seed.IsSatisfied(d.Seed) {
		errs.addf(sentinel, "seed")
	}
	if !p.StartCheckpoint.IsSatisfied(d.StartCheckpoint) {
		errs.addf(sentinel, "startCheckpoint")
	}
	if !p.LockCheckpoint.IsSatisfied(d.LockCheckpoint) {
		errs.addf(sentinel, "lockCheckpoint")
	}
	if !p.EpochLength.IsSatisfied(d.EpochLength) {
		errs.addf(sentinel, "epochLength %d not in [%d, %d]", d.EpochLength, p.EpochLength.Lower, p.EpochLength.Upper)
	}
}

// checkAccountPreconditions reports one error per unsatisfied account field.
func checkAccountPreconditions(account *types.Account, p *types.AccountPreconditions, errs *errorList) {
	if !p.Balance.IsSatisfied(account.Balance) {
		errs.addf(zkerrors.ErrPBalance, "%d not in [%d, %d]", account.Balance, p.Balance.Lower, p.Balance.Upper)
	}
	if !p.Nonce.IsSatisfied(account.Nonce) {
		errs.addf(zkerrors.ErrPNonce, "%d not in [%d, %d]", account.Nonce, p.Nonce.Lower, p.Nonce.Upper)
	}
	if !p.ReceiptChainHash.IsSatisfied(account.ReceiptChainHash) {
		errs.addf(zkerrors.ErrPReceiptChainHash, "want %s", p.ReceiptChainHash.Value.Short())
	}
	// accounts without a delegate have nothing to compare against
	if account.Delegate != nil && !p.Delegate.IsSatisfied(*account.Delegate) {
		errs.addf(zkerrors.ErrPDelegate, "want %s, have %s", p.Delegate.Value, *account.Delegate)
	}
	for i, s := range p.State {
		if !s.IsSatisfied(account.Zkapp.AppState[i]) {
			errs.addf(zkerrors.ErrPState, "state[%d] want %s, have %s", i, s.Value.Short(), account.Zkapp.AppState[i].Short())
		}
	}
	if p.ActionState.IsEnabled && !account.Zkapp.HasActionState(p.ActionState.Value) {
		errs.addf(zkerrors.ErrPActionState, "%s", p.ActionState.Value.Short())
	}
	if !p.IsProven.IsSatisfied(account.Zkapp.IsProven) {
		errs.addf(zkerrors.ErrPIsProven, "want %t", p.IsProven.Value)
	}
	if !p.IsNew.IsSatisfied(account.IsNew) {
		errs.addf(zkerrors.ErrPIsNew, "want %t", p.IsNew.Value)
	}
}

func checkValidWhile(chain *types.ChainView, p *types.RangePrecondition[types.GlobalSlot], errs *errorList) {
	if !p.IsSatisfied(chain.GlobalSlotSinceGenesis) {
		errs.addf(zkerrors.ErrPValidWhile, "slot %d not in [%d, %d]", chain.GlobalSlotSinceGenesis, p.Lower, p.Upper)
	}
}

type errorList []error

func (l *errorList) add(err error) {
	*l = append(*l, err)
}

func (l *errorList) addf(sentinel error, format string, args ...interface{}) {
	*l = append(*l, fmt.Errorf("%w: "+format, append([]interface{}{sentinel}, args...)...))
}
