package statedb

import (
	"fmt"

	"github.com/colorfulnotion/zkapp/chainspecs"
	"github.com/colorfulnotion/zkapp/common"
	"github.com/colorfulnotion/zkapp/log"
	"github.com/colorfulnotion/zkapp/types"
	"github.com/colorfulnotion/zkapp/zkerrors"
)

// Validator checks and applies account updates under one protocol config.
// It holds no mutable state.
type Validator struct {
	cfg     *chainspecs.ProtocolConfig
	hashing types.Hashing
}

func NewValidator(cfg *chainspecs.ProtocolConfig) *Validator {
	return &Validator{cfg: cfg, hashing: cfg.Hashing()}
}

func (v *Validator) Config() *chainspecs.ProtocolConfig {
	return v.cfg
}

func (v *Validator) Hashing() types.Hashing {
	return v.hashing
}

// EmptyAccount is the account assumed for an id the ledger does not hold.
func (v *Validator) EmptyAccount(id types.AccountId) *types.Account {
	return types.NewEmptyAccount(id, v.hashing.EmptyActionState(), v.cfg.ActionStateHistory, v.cfg.TxnVersion)
}

// ApplyResult is Applied when Errors is empty, Failed otherwise. On failure
// Account and FeeExcess must not be used.
type ApplyResult struct {
	Account   *types.Account
	FeeExcess ApplyState[types.SignedAmount]
	Errors    []error
}

func (r ApplyResult) Applied() bool {
	return len(r.Errors) == 0
}

// CheckAndApplyAccountUpdate validates update against account and chain and
// returns the updated account and fee excess. Every check runs and every
// violation is reported. The input account is never modified.
func (v *Validator) CheckAndApplyAccountUpdate(chain *types.ChainView, account *types.Account, update *types.AccountUpdate, feeExcess ApplyState[types.SignedAmount]) ApplyResult {
	var errs errorList

	if account.Id() != update.AccountId() {
		errs.addf(zkerrors.ErrSAccountIdMismatch, "account %s, update %s", account.Id(), update.AccountId())
	}
	if account.Zkapp.VerificationKey.Hash != update.VerificationKeyHash {
		errs.addf(zkerrors.ErrSVerificationKeyHashMismatch, "account %s, update %s", account.Zkapp.VerificationKey.Hash.Short(), update.VerificationKeyHash.Short())
	}

	checkNetworkPreconditions(chain, &update.Preconditions.Network, &errs)
	checkAccountPreconditions(account, &update.Preconditions.Account, &errs)
	checkValidWhile(chain, &update.Preconditions.ValidWhile, &errs)

	checkPermissions(&account.Permissions, update, v.cfg.TxnVersion, &errs)

	next := account.Clone()
	fee := types.Positive(v.cfg.AccountCreationFee)

	// balance
	appliedDelta := Alive(update.BalanceChange)
	if account.IsNew {
		feeExcess = MapApplyState(feeExcess, func(x types.SignedAmount) (types.SignedAmount, error) {
			return x.Sub(fee)
		})
		if update.ImplicitAccountCreationFee {
			appliedDelta = MapApplyState(appliedDelta, func(d types.SignedAmount) (types.SignedAmount, error) {
				return d.Sub(fee)
			})
		}
	}
	if delta, ok := appliedDelta.Value(); ok {
		balance, err := account.Balance.AddSigned(delta)
		if err != nil {
			errs.addf(err, "balance %d, change %s", account.Balance, delta)
		} else {
			next.Balance = balance
		}
		feeExcess = MapApplyState(feeExcess, func(x types.SignedAmount) (types.SignedAmount, error) {
			return x.Sub(delta)
		})
	} else {
		errs.addf(zkerrors.ErrBCreationFee, "balance change %s cannot cover fee %d", update.BalanceChange, v.cfg.AccountCreationFee)
		feeExcess = Dead[types.SignedAmount]()
	}

	v.applyUpdates(chain, next, update)

	// timing
	if locked := next.Timing.MinimumBalanceAtSlot(chain.GlobalSlotSinceGenesis); next.Balance < locked {
		errs.addf(zkerrors.ErrBMinimumBalance, "balance %d below %d at slot %d", next.Balance, locked, chain.GlobalSlotSinceGenesis)
	}

	log.Debug(log.STFMonitoring, "CheckAndApplyAccountUpdate", "account", update.AccountId(), "callSite", update.CallSite, "errors", len(errs), "feeExcess", feeExcess)
	if len(errs) > 0 {
		return ApplyResult{Errors: errs}
	}
	next.IsNew = false
	return ApplyResult{Account: next, FeeExcess: feeExcess}
}

// applyUpdates writes every enabled field of update into next.
func (v *Validator) applyUpdates(chain *types.ChainView, next *types.Account, update *types.AccountUpdate) {
	u := &update.Update
	next.TokenSymbol = u.TokenSymbol.Or(next.TokenSymbol)
	if u.Delegate.IsSome {
		d := u.Delegate.Value
		next.Delegate = &d
	}
	next.VotingFor = u.VotingFor.Or(next.VotingFor)
	if u.Timing.IsSome {
		next.Timing = u.Timing.Value
	}
	next.Permissions = u.Permissions.Or(next.Permissions)
	if u.VerificationKey.IsSome {
		next.Zkapp.VerificationKey = u.VerificationKey.Value.Clone()
	}
	next.Zkapp.ZkappUri = u.ZkappUri.Or(next.Zkapp.ZkappUri)
	if update.IncrementNonce {
		next.Nonce++
	}
	for i, s := range u.AppState {
		next.Zkapp.AppState[i] = s.Or(next.Zkapp.AppState[i])
	}
	next.Zkapp.IsProven = next.Zkapp.IsProven || u.AppState.AllSet()

	if !update.Actions.IsEmpty() {
		v.pushActions(&next.Zkapp, update.Actions, chain.GlobalSlotSinceGenesis)
	}
}

// pushActions folds actions onto the newest action state. The first push in
// a new slot shifts the window so the state at the end of the previous slot
// stays available to preconditions.
func (v *Validator) pushActions(z *types.ZkappAccount, actions types.CommittedList, slot types.GlobalSlot) {
	if missing := v.cfg.ActionStateHistory - len(z.ActionState); missing > 0 {
		padded := make([]common.Field, 0, v.cfg.ActionStateHistory)
		for i := 0; i < missing; i++ {
			padded = append(padded, v.hashing.EmptyActionState())
		}
		z.ActionState = append(padded, z.ActionState...)
	}
	newest := len(z.ActionState) - 1
	state := v.hashing.PushActions(z.ActionState[newest], actions)
	if slot > z.LastActionSlot {
		copy(z.ActionState, z.ActionState[1:])
	}
	z.ActionState[newest] = state
	z.LastActionSlot = slot
}

// CheckAndApplyFeePayment applies the fee payment as a signed account update
// with its own fee excess, which is discarded.
func (v *Validator) CheckAndApplyFeePayment(chain *types.ChainView, account *types.Account, payment types.FeePayment) (*types.Account, []error) {
	update := payment.AccountUpdate(v.hashing)
	// fee payments are never proved, so the account's key binding carries over
	update.VerificationKeyHash = account.Zkapp.VerificationKey.Hash
	res := v.CheckAndApplyAccountUpdate(chain, account, update, Alive(types.SignedAmount{}))
	if !res.Applied() {
		return nil, res.Errors
	}
	log.Debug(log.STFMonitoring, "CheckAndApplyFeePayment", "payer", payment.PublicKey, "fee", payment.Fee, "nonce", payment.Nonce)
	return res.Account, nil
}

// String summarizes the outcome.
func (r ApplyResult) String() string {
	if r.Applied() {
		return fmt.Sprintf("Applied(balance=%d nonce=%d)", r.Account.Balance, r.Account.Nonce)
	}
	return fmt.Sprintf("Failed(%v)", zkerrors.GetErrorNames(r.Errors))
}
