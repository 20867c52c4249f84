package types

import (
	"github.com/colorfulnotion/zkapp/common"
	"github.com/colorfulnotion/zkapp/crypto"
)

func stringField(s string) common.Field {
	return common.FieldFromBytes([]byte(s))
}

func addOptionalField(in *crypto.HashInput, u Update[common.Field]) {
	in.AddFields(u.Value).AddBool(u.IsSome)
}

func addEqualsField(in *crypto.HashInput, p EqualsPrecondition[common.Field]) {
	in.AddFields(p.Value).AddBool(p.IsEnabled)
}

func addRange64[T ~uint64](in *crypto.HashInput, p RangePrecondition[T]) {
	in.AddBool(p.IsEnabled).AddUint64(uint64(p.Lower)).AddUint64(uint64(p.Upper))
}

func addRange32[T ~uint32](in *crypto.HashInput, p RangePrecondition[T]) {
	in.AddBool(p.IsEnabled).AddUint32(uint32(p.Lower)).AddUint32(uint32(p.Upper))
}

func addAuthLevel(in *crypto.HashInput, a AuthorizationLevel) {
	constant, necessary, sufficient := a.Flags()
	in.AddBool(constant).AddBool(necessary).AddBool(sufficient)
}

func addPermissions(in *crypto.HashInput, p Permissions) {
	for _, a := range []AuthorizationLevel{
		p.EditState, p.Access, p.Send, p.Receive, p.SetDelegate, p.SetPermissions,
		p.SetVerificationKey.Auth, p.SetZkappUri, p.EditActionState, p.SetTokenSymbol,
		p.IncrementNonce, p.SetVotingFor, p.SetTiming,
	} {
		addAuthLevel(in, a)
	}
	in.AddUint32(p.SetVerificationKey.TxnVersion)
}

func addTiming(in *crypto.HashInput, t Timing) {
	in.AddBool(t.IsTimed).
		AddUint64(uint64(t.InitialMinimumBalance)).
		AddUint32(uint32(t.CliffTime)).
		AddUint64(uint64(t.CliffAmount)).
		AddUint32(uint32(t.VestingPeriod)).
		AddUint64(uint64(t.VestingIncrement))
}

func addEpochData(in *crypto.HashInput, p EpochDataPreconditions) {
	addEqualsField(in, p.Ledger.Hash)
	addRange64(in, p.Ledger.TotalCurrency)
	addEqualsField(in, p.Seed)
	addEqualsField(in, p.StartCheckpoint)
	addEqualsField(in, p.LockCheckpoint)
	addRange32(in, p.EpochLength)
}

func (hs Hashing) bodyInput(u *AccountUpdate) *crypto.HashInput {
	in := crypto.NewHashInput()
	in.AddFields(u.PublicKey.X, u.TokenId.Field).AddBool(u.PublicKey.IsOdd)

	// update
	for _, s := range u.Update.AppState {
		addOptionalField(in, s)
	}
	d := u.Update.Delegate
	in.AddFields(d.Value.X).AddBool(d.Value.IsOdd).AddBool(d.IsSome)
	addOptionalField(in, Update[common.Field]{IsSome: u.Update.VerificationKey.IsSome, Value: u.Update.VerificationKey.Value.Hash})
	in.AddBool(u.Update.Permissions.IsSome)
	addPermissions(in, u.Update.Permissions.Value)
	addOptionalField(in, Update[common.Field]{IsSome: u.Update.ZkappUri.IsSome, Value: stringField(u.Update.ZkappUri.Value)})
	addOptionalField(in, Update[common.Field]{IsSome: u.Update.TokenSymbol.IsSome, Value: stringField(u.Update.TokenSymbol.Value)})
	in.AddBool(u.Update.Timing.IsSome)
	addTiming(in, u.Update.Timing.Value)
	addOptionalField(in, u.Update.VotingFor)

	in.AddUint64(uint64(u.BalanceChange.Magnitude)).AddBool(u.BalanceChange.IsNegative())
	in.AddBool(u.IncrementNonce)
	in.AddFields(u.Events.Hash, u.Actions.Hash, u.CallData)

	// preconditions
	n := u.Preconditions.Network
	addEqualsField(in, n.SnarkedLedgerHash)
	addRange32(in, n.BlockchainLength)
	addRange32(in, n.MinWindowDensity)
	addRange64(in, n.TotalCurrency)
	addRange32(in, n.GlobalSlotSinceGenesis)
	addEpochData(in, n.StakingEpochData)
	addEpochData(in, n.NextEpochData)

	a := u.Preconditions.Account
	addRange64(in, a.Balance)
	addRange32(in, a.Nonce)
	addEqualsField(in, a.ReceiptChainHash)
	in.AddFields(a.Delegate.Value.X).AddBool(a.Delegate.Value.IsOdd).AddBool(a.Delegate.IsEnabled)
	for _, s := range a.State {
		addEqualsField(in, s)
	}
	addEqualsField(in, a.ActionState)
	in.AddBool(a.IsProven.IsEnabled).AddBool(a.IsProven.Value)
	in.AddBool(a.IsNew.IsEnabled).AddBool(a.IsNew.Value)
	addRange32(in, u.Preconditions.ValidWhile)

	in.AddBool(u.UseFullCommitment).AddBool(u.ImplicitAccountCreationFee)
	in.AddBool(u.MayUseToken.ParentsOwnToken).AddBool(u.MayUseToken.InheritFromParent)
	in.AddBool(u.AuthorizationKind.IsSigned).AddBool(u.AuthorizationKind.IsProved)
	in.AddFields(u.VerificationKeyHash)
	return in
}

// BodyHash commits to everything in u except its authorization and call site.
func (hs Hashing) BodyHash(u *AccountUpdate) common.Field {
	return hs.Hasher.HashWithDomainTag(hs.Tags.AccountUpdateBody, hs.bodyInput(u).PackToFields())
}

// NodeHash commits to the update at id and its whole subtree.
func (hs Hashing) NodeHash(f *AccountUpdateForest, id NodeID) common.Field {
	return hs.Hasher.HashWithDomainTag(hs.Tags.AccountUpdateNode, []common.Field{
		hs.BodyHash(f.Update(id)),
		hs.ForestHash(f, f.Children(id)),
	})
}

// ForestHash folds the given siblings right to left; the empty forest hashes
// to zero.
func (hs Hashing) ForestHash(f *AccountUpdateForest, ids []NodeID) common.Field {
	acc := common.Field{}
	for i := len(ids) - 1; i >= 0; i-- {
		acc = crypto.ConsHash(hs.Hasher, hs.Tags.AccountUpdateCons, hs.NodeHash(f, ids[i]), acc)
	}
	return acc
}

// FeePayerHash commits to the fee payment.
func (hs Hashing) FeePayerHash(p FeePayment) common.Field {
	u := p.AccountUpdate(hs)
	in := hs.bodyInput(u)
	return hs.Hasher.HashWithDomainTag(hs.Tags.FeePayerBody, in.PackToFields())
}

// Commitments returns the commitment over the account update forest and the
// full commitment, which also binds the memo and the fee payer.
func (hs Hashing) Commitments(c *ZkappCommand) (commitment, fullCommitment common.Field) {
	commitment = hs.ForestHash(c.AccountUpdates, c.AccountUpdates.Roots())
	fullCommitment = hs.Hasher.HashWithDomainTag(hs.Tags.ZkappCommand, []common.Field{
		hs.MemoHash(c.Memo),
		hs.FeePayerHash(c.FeePayment),
		commitment,
	})
	return commitment, fullCommitment
}
