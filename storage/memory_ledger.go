package storage

import (
	"fmt"
	"sort"

	"github.com/colorfulnotion/zkapp/types"
	"github.com/colorfulnotion/zkapp/zkerrors"
)

// MemoryLedger is a map-backed ledger. Accounts are copied on the way in and
// out so callers cannot alias ledger state.
type MemoryLedger struct {
	accounts map[types.AccountId]*types.Account
}

func NewMemoryLedger(accounts ...*types.Account) *MemoryLedger {
	l := &MemoryLedger{accounts: make(map[types.AccountId]*types.Account, len(accounts))}
	for _, a := range accounts {
		l.accounts[a.Id()] = a.Clone()
	}
	return l
}

func (l *MemoryLedger) HasAccount(id types.AccountId) (bool, error) {
	_, ok := l.accounts[id]
	return ok, nil
}

func (l *MemoryLedger) GetAccount(id types.AccountId) (*types.Account, error) {
	a, ok := l.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", zkerrors.ErrWAccountNotFound, id)
	}
	return a.Clone(), nil
}

func (l *MemoryLedger) SetAccount(a *types.Account) error {
	l.accounts[a.Id()] = a.Clone()
	return nil
}

func (l *MemoryLedger) UpdateAccount(id types.AccountId, fn func(*types.Account) (*types.Account, error)) error {
	cur, err := l.GetAccount(id)
	if err != nil {
		return err
	}
	next, err := fn(cur)
	if err != nil {
		return err
	}
	if next.Id() != id {
		return fmt.Errorf("%w: update for %s returned %s", zkerrors.ErrSAccountIdMismatch, id, next.Id())
	}
	return l.SetAccount(next)
}

// Clone copies the ledger so a command can be applied speculatively.
func (l *MemoryLedger) Clone() *MemoryLedger {
	return NewMemoryLedger(l.Accounts()...)
}

// Accounts returns copies of every account, ordered by key.
func (l *MemoryLedger) Accounts() []*types.Account {
	out := make([]*types.Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, a.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return string(accountKey(out[i].Id())) < string(accountKey(out[j].Id()))
	})
	return out
}
