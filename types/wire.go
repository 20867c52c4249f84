package types

import (
	"encoding/json"
	"fmt"

	"github.com/colorfulnotion/zkapp/zkerrors"
)

// The wire form lists account updates flattened parent-first with a call
// depth on each body, the layout wallets and nodes exchange.

type accountUpdateBodyJSON struct {
	*AccountUpdate
	CallDepth int `json:"callDepth"`
}

type accountUpdateJSON struct {
	Body          accountUpdateBodyJSON `json:"body"`
	Authorization Authorization         `json:"authorization"`
}

type feePayerJSON struct {
	Body          FeePayment `json:"body"`
	Authorization Signature  `json:"authorization"`
}

type zkappCommandJSON struct {
	FeePayer       feePayerJSON        `json:"feePayer"`
	AccountUpdates []accountUpdateJSON `json:"accountUpdates"`
	Memo           string              `json:"memo"`
}

// FlattenForest lists the updates parent-first with their depths.
func FlattenForest(f *AccountUpdateForest) ([]*AccountUpdate, []int) {
	updates := make([]*AccountUpdate, 0, f.Len())
	depths := make([]int, 0, f.Len())
	f.ForEachNode(func(id NodeID, depth int) {
		updates = append(updates, f.Update(id))
		depths = append(depths, depth)
	})
	return updates, depths
}

// UnflattenForest rebuilds a forest from a parent-first listing. Depth may
// grow by at most one from one update to the next.
func UnflattenForest(updates []*AccountUpdate, depths []int) (*AccountUpdateForest, error) {
	if len(updates) != len(depths) {
		return nil, fmt.Errorf("%w: %d updates, %d depths", zkerrors.ErrWMalformed, len(updates), len(depths))
	}
	f := NewAccountUpdateForest()
	var path []NodeID
	for i, u := range updates {
		d := depths[i]
		if d < 0 || d > len(path) {
			return nil, fmt.Errorf("%w: update %d at depth %d after depth %d", zkerrors.ErrWBadCallDepth, i, d, len(path)-1)
		}
		path = path[:d]
		parent := NoParent
		if d > 0 {
			parent = path[d-1]
		}
		path = append(path, f.Add(parent, u))
	}
	return f, nil
}

func (c *AuthorizedZkappCommand) MarshalJSON() ([]byte, error) {
	updates, depths := FlattenForest(c.AccountUpdates)
	out := zkappCommandJSON{
		FeePayer:       feePayerJSON{Body: c.FeePayment, Authorization: c.FeePayerSignature},
		AccountUpdates: make([]accountUpdateJSON, len(updates)),
		Memo:           c.Memo,
	}
	for i, u := range updates {
		out.AccountUpdates[i] = accountUpdateJSON{
			Body:          accountUpdateBodyJSON{AccountUpdate: u, CallDepth: depths[i]},
			Authorization: u.Authorization,
		}
	}
	return json.Marshal(out)
}

// ParseZkappCommand decodes the wire form and recomputes derived hashes.
// Call sites are set to the update's position in the listing.
func ParseZkappCommand(data []byte, hs Hashing) (*AuthorizedZkappCommand, error) {
	var raw zkappCommandJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", zkerrors.ErrWMalformed, err)
	}
	updates := make([]*AccountUpdate, len(raw.AccountUpdates))
	depths := make([]int, len(raw.AccountUpdates))
	for i, a := range raw.AccountUpdates {
		u := a.Body.AccountUpdate
		if u == nil {
			return nil, fmt.Errorf("%w: account update %d has no body", zkerrors.ErrWMalformed, i)
		}
		u.Authorization = a.Authorization
		u.CallSite = fmt.Sprintf("accountUpdates[%d]", i)
		u.Rehash(hs)
		updates[i] = u
		depths[i] = a.Body.CallDepth
	}
	forest, err := UnflattenForest(updates, depths)
	if err != nil {
		return nil, err
	}
	return &AuthorizedZkappCommand{
		ZkappCommand: &ZkappCommand{
			FeePayment:     raw.FeePayer.Body,
			AccountUpdates: forest,
			Memo:           raw.Memo,
		},
		FeePayerSignature: raw.FeePayer.Authorization,
	}, nil
}
