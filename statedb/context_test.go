package statedb

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/colorfulnotion/zkapp/common"
	"github.com/colorfulnotion/zkapp/storage"
	"github.com/colorfulnotion/zkapp/types"
	"github.com/colorfulnotion/zkapp/zkerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payerKey = 9

func payerLedger(v *Validator, accounts ...*types.Account) *storage.MemoryLedger {
	return storage.NewMemoryLedger(append(accounts, existing(v, payerKey, 1000))...)
}

func payment(nonce types.Nonce) types.FeePayment {
	return types.FeePayment{PublicKey: testId(payerKey).PublicKey, Fee: 10, Nonce: nonce}
}

func mustGet(t *testing.T, l LedgerView, id types.AccountId) *types.Account {
	t.Helper()
	a, err := l.GetAccount(id)
	require.NoError(t, err)
	return a
}

func nonceBump(v *Validator, id types.AccountId, nonce types.Nonce) *types.AccountUpdate {
	u := signedUpdate(v, id, types.SignedAmount{})
	u.IncrementNonce = true
	u.Preconditions.Account.Nonce = types.InRange(nonce, nonce)
	return u
}

// countingLedger counts writes and fails every write after the first
// failAfter when failAfter is positive.
type countingLedger struct {
	*storage.MemoryLedger
	failAfter int
	sets      int
	updates   int
}

func (l *countingLedger) fail() error {
	if l.failAfter > 0 && l.sets+l.updates > l.failAfter {
		return errors.New("disk full")
	}
	return nil
}

func (l *countingLedger) SetAccount(a *types.Account) error {
	l.sets++
	if err := l.fail(); err != nil {
		return err
	}
	return l.MemoryLedger.SetAccount(a)
}

func (l *countingLedger) UpdateAccount(id types.AccountId, fn func(*types.Account) (*types.Account, error)) error {
	l.updates++
	if err := l.fail(); err != nil {
		return err
	}
	return l.MemoryLedger.UpdateAccount(id, fn)
}

func TestContextWritesThroughUpdateAccount(t *testing.T) {
	v := testValidator(t)
	ledger := &countingLedger{MemoryLedger: payerLedger(v, existing(v, 1, 100))}

	ctx, err := NewZkappCommandContext(v, ledger, testChain(), payment(0))
	require.NoError(t, err)
	require.NoError(t, ctx.AddUpdate(nonceBump(v, testId(1), 0)))
	assert.Equal(t, 2, ledger.updates)
	assert.Equal(t, 0, ledger.sets)

	// an account the ledger has never seen is inserted
	fresh := v.Hashing().NewAccountUpdate(testId(4))
	require.NoError(t, ctx.AddUpdate(fresh))
	assert.Equal(t, 2, ledger.updates)
	assert.Equal(t, 1, ledger.sets)
	assert.Equal(t, types.Nonce(1), mustGet(t, ledger, testId(1)).Nonce)
	assert.False(t, mustGet(t, ledger, testId(4)).IsNew)
}

func TestContextLedgerFailureSkipsRest(t *testing.T) {
	v := testValidator(t)
	ledger := &countingLedger{MemoryLedger: payerLedger(v, existing(v, 1, 100), existing(v, 2, 100)), failAfter: 1}

	ctx, err := NewZkappCommandContext(v, ledger, testChain(), payment(0))
	require.NoError(t, err)
	tree := types.NewAccountUpdateTree(nonceBump(v, testId(1), 0), types.NewAccountUpdateTree(nonceBump(v, testId(2), 0)))
	err = ctx.Add(tree)
	require.Error(t, err)
	assert.True(t, errors.Is(err, zkerrors.ErrWStorage))

	node := ctx.trace.AccountUpdateForest[0]
	assert.True(t, node.Skipped)
	assert.True(t, node.Children[0].Skipped)
	report := ctx.trace.Report()
	assert.Equal(t, 2, strings.Count(report, " skipped"))
	assert.Equal(t, 1, strings.Count(report, " ok"))
	assert.Equal(t, types.Nonce(0), mustGet(t, ledger, testId(1)).Nonce)
	assert.Equal(t, types.Nonce(0), mustGet(t, ledger, testId(2)).Nonce)
}

func TestContextFeeConservation(t *testing.T) {
	v := testValidator(t)
	ledger := payerLedger(v, existing(v, 1, 100), existing(v, 2, 0))

	ctx, err := NewZkappCommandContext(v, ledger, testChain(), payment(0))
	require.NoError(t, err)
	require.NoError(t, ctx.AddUpdate(signedUpdate(v, testId(1), types.Negative(10))))
	receive := v.Hashing().NewAccountUpdate(testId(2))
	receive.BalanceChange = types.Positive(10)
	require.NoError(t, ctx.AddUpdate(receive))

	trace, err := ctx.Finalize()
	require.NoError(t, err)
	assert.False(t, trace.HasErrors())
	assert.Equal(t, types.Balance(990), mustGet(t, ledger, testId(payerKey)).Balance)
	assert.Equal(t, types.Nonce(1), mustGet(t, ledger, testId(payerKey)).Nonce)
	assert.Equal(t, types.Balance(90), mustGet(t, ledger, testId(1)).Balance)
	assert.Equal(t, types.Balance(10), mustGet(t, ledger, testId(2)).Balance)

	// finalizing again returns the same outcome
	again, err := ctx.Finalize()
	require.NoError(t, err)
	assert.Same(t, trace, again)
}

func TestContextRejectsNonzeroFeeExcess(t *testing.T) {
	v := testValidator(t)
	ledger := payerLedger(v, existing(v, 1, 100))

	ctx, err := NewZkappCommandContext(v, ledger, testChain(), payment(0))
	require.NoError(t, err)
	require.NoError(t, ctx.AddUpdate(signedUpdate(v, testId(1), types.Negative(10))))

	trace, err := ctx.Finalize()
	require.Error(t, err)
	assert.True(t, IsRejected(err))
	assert.True(t, errors.Is(err, zkerrors.ErrFFeeExcessNotZero))
	assert.Len(t, trace.GeneralErrors, 1)

	_, err = ctx.Finalize()
	require.Error(t, err)
	assert.Len(t, trace.GeneralErrors, 1, "finalize records the fee excess error once")
}

func TestContextRejectsDeadFeeExcess(t *testing.T) {
	v := testValidator(t)
	most := types.Amount(math.MaxUint64)
	ledger := payerLedger(v, existing(v, 1, types.Balance(most)), existing(v, 2, types.Balance(most)))

	ctx, err := NewZkappCommandContext(v, ledger, testChain(), payment(0))
	require.NoError(t, err)
	require.NoError(t, ctx.AddUpdate(signedUpdate(v, testId(1), types.Negative(most))))
	require.NoError(t, ctx.AddUpdate(signedUpdate(v, testId(2), types.Negative(most))))
	assert.False(t, ctx.FeeExcess().IsAlive())

	_, err = ctx.Finalize()
	assert.True(t, errors.Is(err, zkerrors.ErrFFeeExcessDead))
}

func TestContextSiblingOrder(t *testing.T) {
	v := testValidator(t)

	ledger := payerLedger(v, existing(v, 1, 0))
	ctx, err := NewZkappCommandContext(v, ledger, testChain(), payment(0))
	require.NoError(t, err)
	require.NoError(t, ctx.AddUpdate(nonceBump(v, testId(1), 0)))
	require.NoError(t, ctx.AddUpdate(nonceBump(v, testId(1), 1)))
	_, err = ctx.Finalize()
	require.NoError(t, err)
	assert.Equal(t, types.Nonce(2), mustGet(t, ledger, testId(1)).Nonce)

	ledger = payerLedger(v, existing(v, 1, 0))
	ctx, err = NewZkappCommandContext(v, ledger, testChain(), payment(0))
	require.NoError(t, err)
	require.NoError(t, ctx.AddUpdate(nonceBump(v, testId(1), 1)))
	require.NoError(t, ctx.AddUpdate(nonceBump(v, testId(1), 0)))
	trace, err := ctx.Finalize()
	require.Error(t, err)
	require.Len(t, trace.AccountUpdateForest, 2)
	assert.Equal(t, []string{"P2"}, zkerrors.GetErrorCodes(trace.AccountUpdateForest[0].Errors))
	assert.Empty(t, trace.AccountUpdateForest[1].Errors)
	assert.Equal(t, types.Nonce(1), mustGet(t, ledger, testId(1)).Nonce)
}

func TestContextAppliesChildrenFirst(t *testing.T) {
	v := testValidator(t)
	ledger := payerLedger(v, existing(v, 1, 0))

	ctx, err := NewZkappCommandContext(v, ledger, testChain(), payment(0))
	require.NoError(t, err)
	tree := types.NewAccountUpdateTree(nonceBump(v, testId(1), 1),
		types.NewAccountUpdateTree(nonceBump(v, testId(1), 0)))
	require.NoError(t, ctx.Add(tree))

	trace, err := ctx.Finalize()
	require.NoError(t, err)
	require.Len(t, trace.AccountUpdateForest, 1)
	assert.Len(t, trace.AccountUpdateForest[0].Children, 1)
	assert.Equal(t, types.Nonce(2), mustGet(t, ledger, testId(1)).Nonce)
	assert.Equal(t, 2, ctx.Forest().Len())
}

func TestContextFailedUpdateNotWritten(t *testing.T) {
	v := testValidator(t)
	ledger := payerLedger(v, existing(v, 1, 5))

	ctx, err := NewZkappCommandContext(v, ledger, testChain(), payment(0))
	require.NoError(t, err)
	require.NoError(t, ctx.AddUpdate(signedUpdate(v, testId(1), types.Negative(10))))
	assert.Equal(t, Alive(types.SignedAmount{}), ctx.FeeExcess())
	assert.Equal(t, types.Balance(5), mustGet(t, ledger, testId(1)).Balance)

	trace, err := ctx.Finalize()
	require.Error(t, err)
	assert.True(t, errors.Is(err, zkerrors.ErrBBalanceUnderflow))

	report := trace.Report()
	assert.Contains(t, report, "fee payment ok")
	assert.Contains(t, report, "helpers_test.go")
	assert.Contains(t, report, "BalanceUnderflow")
}

func TestContextFeePaymentFailure(t *testing.T) {
	v := testValidator(t)
	ledger := payerLedger(v)

	ctx, err := NewZkappCommandContext(v, ledger, testChain(), payment(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"P2"}, zkerrors.GetErrorCodes(ctx.Trace().FeePaymentErrors))
	assert.Equal(t, types.Balance(1000), mustGet(t, ledger, testId(payerKey)).Balance)

	_, err = ctx.Finalize()
	assert.True(t, errors.Is(err, zkerrors.ErrPNonce))
}

func TestContextTokenUse(t *testing.T) {
	v := testValidator(t)
	hs := v.Hashing()
	owner := existing(v, 1, 0)
	tokenId := hs.DeriveTokenId(owner.Id())
	holder := v.EmptyAccount(types.NewAccountId(types.PublicKey{X: common.NewField(2)}, tokenId))
	holder.IsNew = false
	stranger := existing(v, 3, 0)

	tokenUpdate := func(m types.MayUseToken) *types.AccountUpdate {
		u := hs.NewAccountUpdate(holder.Id())
		u.MayUseToken = m
		return u
	}

	cases := []struct {
		name  string
		tree  *types.AccountUpdateTree
		codes []string
	}{
		{
			name: "owner parent",
			tree: types.NewAccountUpdateTree(hs.NewAccountUpdate(owner.Id()),
				types.NewAccountUpdateTree(tokenUpdate(types.MayUseToken{ParentsOwnToken: true}))),
		},
		{
			name: "inherited",
			tree: types.NewAccountUpdateTree(hs.NewAccountUpdate(owner.Id()),
				types.NewAccountUpdateTree(tokenUpdate(types.MayUseToken{ParentsOwnToken: true}),
					types.NewAccountUpdateTree(tokenUpdate(types.MayUseToken{InheritFromParent: true})))),
		},
		{
			name:  "root",
			tree:  types.NewAccountUpdateTree(tokenUpdate(types.MayUseToken{ParentsOwnToken: true})),
			codes: []string{"K1"},
		},
		{
			name: "wrong owner",
			tree: types.NewAccountUpdateTree(hs.NewAccountUpdate(stranger.Id()),
				types.NewAccountUpdateTree(tokenUpdate(types.MayUseToken{ParentsOwnToken: true}))),
			codes: []string{"K1"},
		},
		{
			name: "no flag",
			tree: types.NewAccountUpdateTree(hs.NewAccountUpdate(owner.Id()),
				types.NewAccountUpdateTree(tokenUpdate(types.MayUseToken{}))),
			codes: []string{"K1"},
		},
		{
			name: "both flags",
			tree: types.NewAccountUpdateTree(hs.NewAccountUpdate(owner.Id()),
				types.NewAccountUpdateTree(tokenUpdate(types.MayUseToken{ParentsOwnToken: true, InheritFromParent: true}))),
			codes: []string{"K2"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ledger := payerLedger(v, owner, holder, stranger)
			ctx, err := NewZkappCommandContext(v, ledger, testChain(), payment(0))
			require.NoError(t, err)
			require.NoError(t, ctx.Add(tc.tree))

			var codes []string
			var walk func(n *AccountUpdateErrorTrace)
			walk = func(n *AccountUpdateErrorTrace) {
				codes = append(codes, zkerrors.GetErrorCodes(n.Errors)...)
				for _, c := range n.Children {
					walk(c)
				}
			}
			walk(ctx.Trace().AccountUpdateForest[0])
			assert.Equal(t, tc.codes, codes)
		})
	}
}

func TestApplyZkappCommand(t *testing.T) {
	v := testValidator(t)
	store, err := storage.NewMemoryPersistenceStore()
	require.NoError(t, err)
	ledger, err := storage.NewLevelDBLedger(store, 16)
	require.NoError(t, err)
	defer ledger.Close()
	require.NoError(t, ledger.Import([]*types.Account{existing(v, payerKey, 1000), existing(v, 1, 100)}))

	cmd := types.NewZkappCommand(payment(0), "transfer")
	cmd.AccountUpdates.AddRoot(signedUpdate(v, testId(1), types.Negative(40)))
	receive := v.Hashing().NewAccountUpdate(testId(2))
	receive.BalanceChange = types.Positive(40)
	receive.ImplicitAccountCreationFee = true
	cmd.AccountUpdates.AddRoot(receive)

	// the receiver does not exist yet and 40 cannot cover the creation fee
	trace, err := ApplyZkappCommand(v, ledger, testChain(), cmd)
	require.Error(t, err)
	assert.True(t, errors.Is(err, zkerrors.ErrBBalanceUnderflow))
	assert.True(t, trace.AccountUpdateForest[1].HasErrors())

	ledger2 := payerLedger(v, existing(v, 1, 100), existing(v, 2, 0))
	trace, err = ApplyZkappCommand(v, ledger2, testChain(), cmd)
	require.NoError(t, err)
	assert.False(t, trace.HasErrors())
	assert.Equal(t, types.Balance(40), mustGet(t, ledger2, testId(2)).Balance)
}
