package storage

import (
	"github.com/colorfulnotion/zkapp/types"
)

var accountPrefix = []byte("acct|")

// accountKey is prefix || pk.x || parity || tokenId, so one owner's accounts
// sort together.
func accountKey(id types.AccountId) []byte {
	pk := id.PublicKey.Bytes()
	tok := id.TokenId.Bytes()
	key := make([]byte, 0, len(accountPrefix)+len(pk)+len(tok))
	key = append(key, accountPrefix...)
	key = append(key, pk...)
	return append(key, tok[:]...)
}
