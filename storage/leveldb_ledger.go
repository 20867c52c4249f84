package storage

import (
	"encoding/json"
	"fmt"

	"github.com/colorfulnotion/zkapp/log"
	"github.com/colorfulnotion/zkapp/types"
	"github.com/colorfulnotion/zkapp/zkerrors"
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 1024

// LevelDBLedger persists accounts as JSON in a PersistenceStore, with an LRU
// cache of decoded accounts in front of it.
type LevelDBLedger struct {
	store *PersistenceStore
	cache *lru.Cache[types.AccountId, *types.Account]
}

func NewLevelDBLedger(store *PersistenceStore, cacheSize int) (*LevelDBLedger, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[types.AccountId, *types.Account](cacheSize)
	if err != nil {
		return nil, err
	}
	return &LevelDBLedger{store: store, cache: cache}, nil
}

// OpenLevelDBLedger opens a ledger at path; an empty path is in-memory.
func OpenLevelDBLedger(path string) (*LevelDBLedger, error) {
	store, err := NewPersistenceStore(path)
	if err != nil {
		return nil, err
	}
	return NewLevelDBLedger(store, defaultCacheSize)
}

func (l *LevelDBLedger) HasAccount(id types.AccountId) (bool, error) {
	if l.cache.Contains(id) {
		return true, nil
	}
	return l.store.Has(accountKey(id))
}

func (l *LevelDBLedger) GetAccount(id types.AccountId) (*types.Account, error) {
	if a, ok := l.cache.Get(id); ok {
		return a.Clone(), nil
	}
	data, found, err := l.store.Get(accountKey(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", zkerrors.ErrWStorage, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", zkerrors.ErrWAccountNotFound, id)
	}
	var a types.Account
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", zkerrors.ErrWStorage, id, err)
	}
	l.cache.Add(id, a.Clone())
	return &a, nil
}

func (l *LevelDBLedger) SetAccount(a *types.Account) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", zkerrors.ErrWStorage, a.Id(), err)
	}
	if err := l.store.Put(accountKey(a.Id()), data); err != nil {
		l.cache.Remove(a.Id())
		return fmt.Errorf("%w: %v", zkerrors.ErrWStorage, err)
	}
	l.cache.Add(a.Id(), a.Clone())
	log.Trace(log.LedgerMonitoring, "SetAccount", "account", a.Id(), "balance", a.Balance, "nonce", a.Nonce)
	return nil
}

func (l *LevelDBLedger) UpdateAccount(id types.AccountId, fn func(*types.Account) (*types.Account, error)) error {
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

// Accounts decodes every stored account in key order.
func (l *LevelDBLedger) Accounts() ([]*types.Account, error) {
	pairs, err := l.store.GetWithPrefix(accountPrefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", zkerrors.ErrWStorage, err)
	}
	out := make([]*types.Account, 0, len(pairs))
	for _, kv := range pairs {
		var a types.Account
		if err := json.Unmarshal(kv[1], &a); err != nil {
			return nil, fmt.Errorf("%w: decode %x: %v", zkerrors.ErrWStorage, kv[0], err)
		}
		out = append(out, &a)
	}
	return out, nil
}

// Import writes accounts in one batch, used to seed a ledger.
func (l *LevelDBLedger) Import(accounts []*types.Account) error {
	pairs := make([][2][]byte, 0, len(accounts))
	for _, a := range accounts {
		data, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("%w: encode %s: %v", zkerrors.ErrWStorage, a.Id(), err)
		}
		pairs = append(pairs, [2][]byte{accountKey(a.Id()), data})
	}
	if err := l.store.PutBatch(pairs); err != nil {
		return fmt.Errorf("%w: %v", zkerrors.ErrWStorage, err)
	}
	l.cache.Purge()
	log.Info(log.LedgerMonitoring, "imported accounts", "n", len(accounts))
	return nil
}

func (l *LevelDBLedger) Close() error {
	l.cache.Purge()
	return l.store.Close()
}
