package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/colorfulnotion/zkapp/common"
	"github.com/colorfulnotion/zkapp/zkerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildForest returns
//
//	a
//	├── b
//	│   └── c
//	└── d
//	e
func buildForest(hs Hashing) *AccountUpdateForest {
	f := NewAccountUpdateForest()
	a := f.AddRoot(hs.NewAccountUpdate(testId(1)))
	b := f.Add(a, hs.NewAccountUpdate(testId(2)))
	f.Add(b, hs.NewAccountUpdate(testId(3)))
	f.Add(a, hs.NewAccountUpdate(testId(4)))
	f.AddRoot(hs.NewAccountUpdate(testId(5)))
	return f
}

func keysOf(f *AccountUpdateForest, ids []NodeID) []uint64 {
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = f.Update(id).PublicKey.X.Big().Uint64()
	}
	return out
}

func TestForestTraversal(t *testing.T) {
	f := buildForest(testHashing())
	require.Equal(t, 5, f.Len())

	var pre, post []NodeID
	var depths []int
	f.ForEachNode(func(id NodeID, depth int) {
		pre = append(pre, id)
		depths = append(depths, depth)
	})
	f.ForEachNodeInverted(func(id NodeID, _ int) { post = append(post, id) })

	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, keysOf(f, pre))
	assert.Equal(t, []int{0, 1, 2, 1, 0}, depths)
	assert.Equal(t, []uint64{3, 2, 4, 1, 5}, keysOf(f, post))
	assert.Equal(t, NoParent, f.Parent(0))
	assert.Equal(t, NodeID(1), f.Parent(2))
}

func TestReduceCountsSubtree(t *testing.T) {
	f := buildForest(testHashing())
	size := Reduce(f, f.Roots()[0], func(_ NodeID, children []int) int {
		n := 1
		for _, c := range children {
			n += c
		}
		return n
	})
	assert.Equal(t, 4, size)
}

func TestTreeRoundTrip(t *testing.T) {
	hs := testHashing()
	f := buildForest(hs)
	tree := f.Tree(f.Roots()[0])
	require.Len(t, tree.Children, 2)
	g := tree.Forest()
	assert.Equal(t, hs.ForestHash(g, g.Roots()), hs.ForestHash(f, f.Roots()[:1]))
}

func TestNewAccountUpdateRecordsCallSite(t *testing.T) {
	u := testHashing().NewAccountUpdate(testId(1))
	assert.Contains(t, u.CallSite, "forest_test.go")
}

func TestCommitmentsBindEverything(t *testing.T) {
	hs := testHashing()
	cmd := NewZkappCommand(FeePayment{PublicKey: testKey(9), Fee: 10, Nonce: 1}, "hello")
	cmd.AccountUpdates = buildForest(hs)
	c1, full1 := hs.Commitments(cmd)

	// the memo and fee payer only reach the full commitment
	cmd.Memo = "bye"
	c2, full2 := hs.Commitments(cmd)
	assert.Equal(t, c1, c2)
	assert.NotEqual(t, full1, full2)

	cmd.FeePayment.Fee = 11
	_, full3 := hs.Commitments(cmd)
	assert.NotEqual(t, full2, full3)

	// a change deep in the tree reaches the commitment
	cmd.AccountUpdates.Update(2).BalanceChange = Positive(1)
	c4, _ := hs.Commitments(cmd)
	assert.NotEqual(t, c2, c4)

	// so does pushing an action
	cmd.AccountUpdates.Update(4).PushAction(hs, common.NewField(1))
	c5, _ := hs.Commitments(cmd)
	assert.NotEqual(t, c4, c5)

	// sibling order matters
	swapped := NewAccountUpdateForest()
	swapped.AddRoot(cmd.AccountUpdates.Update(4))
	swapped.AddTree(NoParent, cmd.AccountUpdates.Tree(0))
	assert.NotEqual(t, c5, hs.ForestHash(swapped, swapped.Roots()))

	assert.True(t, hs.ForestHash(NewAccountUpdateForest(), nil).IsZero())
}

func TestUnflattenRejectsDepthJump(t *testing.T) {
	hs := testHashing()
	us := []*AccountUpdate{hs.NewAccountUpdate(testId(1)), hs.NewAccountUpdate(testId(2))}
	_, err := UnflattenForest(us, []int{0, 2})
	assert.True(t, errors.Is(err, zkerrors.ErrWBadCallDepth))
	_, err = UnflattenForest(us, []int{1, 0})
	assert.True(t, errors.Is(err, zkerrors.ErrWBadCallDepth))
	f, err := UnflattenForest(us, []int{0, 0})
	require.NoError(t, err)
	assert.Len(t, f.Roots(), 2)
}

func TestWireRoundTrip(t *testing.T) {
	hs := testHashing()
	slot := GlobalSlot(100)
	cmd := NewZkappCommand(FeePayment{PublicKey: testKey(9), Fee: 10, Nonce: 1, ValidUntil: &slot}, "memo")
	cmd.AccountUpdates = buildForest(hs)
	u := cmd.AccountUpdates.Update(1)
	u.BalanceChange = Negative(5)
	u.PushEvent(hs, common.NewField(7))
	u.Update.AppState[3] = Set(common.NewField(3))
	u.Preconditions.Account.Nonce = InRange[Nonce](1, 2)
	u.Update.Permissions = Set(DefaultPermissions(1))
	u.AuthorizationKind = AuthKindSignature
	u.Authorization.Signature = Signature{1, 2, 3}

	authorized := &AuthorizedZkappCommand{ZkappCommand: cmd, FeePayerSignature: Signature{9}}
	data, err := json.Marshal(authorized)
	require.NoError(t, err)

	back, err := ParseZkappCommand(data, hs)
	require.NoError(t, err)
	c1, f1 := hs.Commitments(cmd)
	c2, f2 := hs.Commitments(back.ZkappCommand)
	assert.Equal(t, c1, c2)
	assert.Equal(t, f1, f2)
	assert.Equal(t, Signature{9}, back.FeePayerSignature)
	assert.Equal(t, Signature{1, 2, 3}, back.AccountUpdates.Update(1).Authorization.Signature)
	assert.Equal(t, "accountUpdates[1]", back.AccountUpdates.Update(1).CallSite)
	assert.Equal(t, slot, *back.FeePayment.ValidUntil)

	orphan, err := json.Marshal(zkappCommandJSON{AccountUpdates: []accountUpdateJSON{
		{Body: accountUpdateBodyJSON{AccountUpdate: hs.NewAccountUpdate(testId(1)), CallDepth: 1}},
	}})
	require.NoError(t, err)
	_, err = ParseZkappCommand(orphan, hs)
	assert.ErrorIs(t, err, zkerrors.ErrWBadCallDepth)
	_, err = ParseZkappCommand([]byte(`{"accountUpdates":[{"body":{"callDepth":1}}]}`), hs)
	assert.ErrorIs(t, err, zkerrors.ErrWMalformed)
	_, err = ParseZkappCommand([]byte(`{`), hs)
	assert.ErrorIs(t, err, zkerrors.ErrWMalformed)
}

type fakeAuthorizer struct {
	failFor *PublicKey
}

func (a fakeAuthorizer) Sign(signer PublicKey, message common.Field) (Signature, error) {
	if a.failFor != nil && *a.failFor == signer {
		return nil, errors.New("no key")
	}
	b := message.Bytes()
	return Signature(b[:]), nil
}

func (fakeAuthorizer) Prove(u *AccountUpdate, commitment common.Field) (Proof, error) {
	b := commitment.Bytes()
	return Proof(b[:]), nil
}

func TestAuthorizeAndValidate(t *testing.T) {
	hs := testHashing()
	cmd := NewZkappCommand(FeePayment{PublicKey: testKey(9), Fee: 10}, "")
	cmd.AccountUpdates = buildForest(hs)
	cmd.AccountUpdates.Update(0).AuthorizationKind = AuthKindSignature
	cmd.AccountUpdates.Update(1).AuthorizationKind = AuthKindProof
	cmd.AccountUpdates.Update(2).AuthorizationKind = AuthKindSignatureAndProof
	cmd.AccountUpdates.Update(2).UseFullCommitment = true

	authorized, err := Authorize(cmd, hs, "testnet", fakeAuthorizer{})
	require.NoError(t, err)
	assert.Empty(t, authorized.Validate())
	// the input command is left untouched
	assert.Empty(t, cmd.AccountUpdates.Update(0).Authorization.Signature)

	commitment, full := hs.Commitments(authorized.ZkappCommand)
	fullMsg := hs.SignatureMessage(full, "testnet").Bytes()
	assert.Equal(t, Signature(fullMsg[:]), authorized.AccountUpdates.Update(2).Authorization.Signature)
	msg := hs.SignatureMessage(commitment, "testnet").Bytes()
	assert.Equal(t, Signature(msg[:]), authorized.AccountUpdates.Update(0).Authorization.Signature)

	authorized.AccountUpdates.Update(1).Authorization.Proof = nil
	authorized.AccountUpdates.Update(3).Authorization.Signature = Signature{1}
	authorized.Memo = "0123456789012345678901234567890123"
	codes := zkerrors.GetErrorCodes(authorized.Validate())
	assert.ElementsMatch(t, []string{"S3", "Z2", "Z3"}, codes)

	pk := testKey(1)
	_, err = Authorize(cmd, hs, "testnet", fakeAuthorizer{failFor: &pk})
	assert.ErrorIs(t, err, zkerrors.ErrZAuthorizerFailed)
}

func TestMayUseTokenConflict(t *testing.T) {
	assert.ErrorIs(t, MayUseToken{ParentsOwnToken: true, InheritFromParent: true}.Validate(), zkerrors.ErrKMayUseTokenConflict)
	assert.NoError(t, MayUseToken{ParentsOwnToken: true}.Validate())
}
