package statedb

import "github.com/colorfulnotion/zkapp/types"

// LedgerView is the mutable account store a command is applied to.
// GetAccount and UpdateAccount report zkerrors.ErrWAccountNotFound for
// missing accounts. Implementations need not be safe for concurrent use.
type LedgerView interface {
	HasAccount(id types.AccountId) (bool, error)
	GetAccount(id types.AccountId) (*types.Account, error)
	SetAccount(account *types.Account) error
	// UpdateAccount replaces the account with fn's result. When fn fails the
	// ledger is left unchanged and the error is returned.
	UpdateAccount(id types.AccountId, fn func(*types.Account) (*types.Account, error)) error
}
