package statedb

import (
	"errors"
	"fmt"

	"github.com/colorfulnotion/zkapp/log"
	"github.com/colorfulnotion/zkapp/types"
	"github.com/colorfulnotion/zkapp/zkerrors"
)

// ZkappCommandContext assembles one command against a ledger. The fee
// payment is applied on creation; trees are then added one at a time and
// each node is applied as soon as it is validated, so later nodes observe
// the effects of earlier ones. Nothing is rolled back: callers discard the
// ledger when Finalize rejects the command.
type ZkappCommandContext struct {
	validator *Validator
	ledger    LedgerView
	chain     *types.ChainView
	feeExcess ApplyState[types.SignedAmount]
	forest    *types.AccountUpdateForest
	trace     *ZkappCommandErrorTrace
	finalized bool
}

// NewZkappCommandContext applies the fee payment. Fee payment failures are
// recorded in the trace; only ledger errors are returned.
func NewZkappCommandContext(v *Validator, ledger LedgerView, chain *types.ChainView, payment types.FeePayment) (*ZkappCommandContext, error) {
	ctx := &ZkappCommandContext{
		validator: v,
		ledger:    ledger,
		chain:     chain,
		feeExcess: Alive(types.SignedAmount{}),
		forest:    types.NewAccountUpdateForest(),
		trace:     &ZkappCommandErrorTrace{},
	}
	payer, found, err := ctx.loadAccount(payment.AccountId())
	if err != nil {
		return nil, err
	}
	updated, errs := v.CheckAndApplyFeePayment(chain, payer, payment)
	if len(errs) > 0 {
		ctx.trace.FeePaymentErrors = errs
		log.Debug(log.ContextMonitoring, "fee payment failed", "payer", payment.PublicKey, "errors", zkerrors.GetErrorNames(errs))
		return ctx, nil
	}
	if err := ctx.store(updated, found); err != nil {
		return nil, err
	}
	return ctx, nil
}

// loadAccount returns the stored account, or a fresh empty one when the
// ledger has none. found reports which.
func (ctx *ZkappCommandContext) loadAccount(id types.AccountId) (account *types.Account, found bool, err error) {
	account, err = ctx.ledger.GetAccount(id)
	if errors.Is(err, zkerrors.ErrWAccountNotFound) {
		return ctx.validator.EmptyAccount(id), false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", zkerrors.ErrWStorage, err)
	}
	return account, true, nil
}

// store writes an applied account back. Stored accounts go through
// UpdateAccount so the ledger checks the id; new ones are inserted.
func (ctx *ZkappCommandContext) store(account *types.Account, found bool) error {
	var err error
	if found {
		err = ctx.ledger.UpdateAccount(account.Id(), func(*types.Account) (*types.Account, error) {
			return account, nil
		})
	} else {
		err = ctx.ledger.SetAccount(account)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", zkerrors.ErrWStorage, err)
	}
	return nil
}

// Add applies a tree bottom-up, children before their parent and siblings
// in order, and records a trace of the same shape.
func (ctx *ZkappCommandContext) Add(tree *types.AccountUpdateTree) error {
	root := ctx.forest.AddTree(types.NoParent, tree)
	var ledgerErr error
	trace := types.Reduce(ctx.forest, root, func(id types.NodeID, children []*AccountUpdateErrorTrace) *AccountUpdateErrorTrace {
		u := ctx.forest.Update(id)
		node := &AccountUpdateErrorTrace{AccountId: u.AccountId(), CallSite: u.CallSite, Children: children}
		if ledgerErr != nil {
			node.Skipped = true
			return node
		}
		var err error
		node.Errors, err = ctx.applyNode(id, u)
		if err != nil {
			ledgerErr = err
			node.Skipped = true
		}
		return node
	})
	ctx.trace.AccountUpdateForest = append(ctx.trace.AccountUpdateForest, trace)
	return ledgerErr
}

// AddUpdate applies a single update with no children.
func (ctx *ZkappCommandContext) AddUpdate(u *types.AccountUpdate) error {
	return ctx.Add(types.NewAccountUpdateTree(u))
}

func (ctx *ZkappCommandContext) applyNode(id types.NodeID, u *types.AccountUpdate) ([]error, error) {
	account, found, err := ctx.loadAccount(u.AccountId())
	if err != nil {
		return nil, err
	}
	tokenErrs := ctx.checkTokenUse(id)
	res := ctx.validator.CheckAndApplyAccountUpdate(ctx.chain, account, u, ctx.feeExcess)
	errs := append(tokenErrs, res.Errors...)
	if len(errs) > 0 {
		log.Debug(log.ContextMonitoring, "account update failed", "account", u.AccountId(), "callSite", u.CallSite, "errors", zkerrors.GetErrorNames(errs))
		return errs, nil
	}
	if err := ctx.store(res.Account, found); err != nil {
		return nil, err
	}
	ctx.feeExcess = res.FeeExcess
	log.Trace(log.ContextMonitoring, "account update applied", "account", u.AccountId(), "balance", res.Account.Balance, "feeExcess", ctx.feeExcess)
	return nil, nil
}

// checkTokenUse requires custom-token updates to be vouched for by their
// parent: either the parent owns the token, or the parent may itself use
// the token and passes that on.
func (ctx *ZkappCommandContext) checkTokenUse(id types.NodeID) []error {
	u := ctx.forest.Update(id)
	var errs []error
	if err := u.MayUseToken.Validate(); err != nil {
		errs = append(errs, err)
	}
	if !ctx.mayUseToken(id) {
		errs = append(errs, fmt.Errorf("%w: token %s", zkerrors.ErrKTokenOwnerNotCaller, u.TokenId.Short()))
	}
	return errs
}

func (ctx *ZkappCommandContext) mayUseToken(id types.NodeID) bool {
	u := ctx.forest.Update(id)
	if u.TokenId.IsDefault() {
		return true
	}
	parent := ctx.forest.Parent(id)
	if parent == types.NoParent {
		return false
	}
	p := ctx.forest.Update(parent)
	switch {
	case u.MayUseToken.ParentsOwnToken:
		return ctx.validator.hashing.DeriveTokenId(p.AccountId()) == u.TokenId
	case u.MayUseToken.InheritFromParent:
		return p.TokenId == u.TokenId && ctx.mayUseToken(parent)
	}
	return false
}

// FeeExcess is the running fee excess of the account updates added so far.
func (ctx *ZkappCommandContext) FeeExcess() ApplyState[types.SignedAmount] {
	return ctx.feeExcess
}

// Forest returns every tree added so far.
func (ctx *ZkappCommandContext) Forest() *types.AccountUpdateForest {
	return ctx.forest
}

func (ctx *ZkappCommandContext) Trace() *ZkappCommandErrorTrace {
	return ctx.trace
}

// Finalize checks that the account updates balance out and returns the
// trace together with its rejection error, if any.
func (ctx *ZkappCommandContext) Finalize() (*ZkappCommandErrorTrace, error) {
	if ctx.finalized {
		return ctx.trace, ctx.trace.Err()
	}
	ctx.finalized = true
	switch excess, ok := ctx.feeExcess.Value(); {
	case !ok:
		ctx.trace.GeneralErrors = append(ctx.trace.GeneralErrors, zkerrors.ErrFFeeExcessDead)
	case !excess.IsZero():
		ctx.trace.GeneralErrors = append(ctx.trace.GeneralErrors, fmt.Errorf("%w: %s", zkerrors.ErrFFeeExcessNotZero, excess))
	}
	err := ctx.trace.Err()
	if err != nil {
		log.Debug(log.ContextMonitoring, "zkapp command rejected", "err", err)
	}
	return ctx.trace, err
}

// ApplyZkappCommand applies cmd to ledger. A rejected command returns a
// *RejectedError; the ledger may have been partly written and should be
// discarded.
func ApplyZkappCommand(v *Validator, ledger LedgerView, chain *types.ChainView, cmd *types.ZkappCommand) (*ZkappCommandErrorTrace, error) {
	ctx, err := NewZkappCommandContext(v, ledger, chain, cmd.FeePayment)
	if err != nil {
		return nil, err
	}
	for _, root := range cmd.AccountUpdates.Roots() {
		if err := ctx.Add(cmd.AccountUpdates.Tree(root)); err != nil {
			return ctx.Trace(), err
		}
	}
	return ctx.Finalize()
}
