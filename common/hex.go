package common

import (
	"encoding/json"
	"fmt"

	ethereumCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Hash is a 32-byte digest, based on Ethereum's common.Hash
type Hash ethereumCommon.Hash

func (h Hash) Bytes() []byte {
	return ethereumCommon.Hash(h).Bytes()
}

func (h Hash) Hex() string {
	return ethereumCommon.Hash(h).Hex()
}

func (h Hash) String() string {
	return h.Hex()
}

// BytesToHash converts a byte slice to a Hash.
func BytesToHash(b []byte) Hash {
	return Hash(ethereumCommon.BytesToHash(b))
}

// Str skips "0x" and prints the first and last four hex characters
func Str(hash Hash) string {
	hex := hash.Hex()
	return fmt.Sprintf("%s..%s", hex[2:6], hex[len(hex)-4:])
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Hex())
}

func (h *Hash) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	*h = Hash(ethereumCommon.HexToHash(hexStr))
	return nil
}

func Bytes2Hex(d []byte) string {
	return hexutil.Encode(d)
}

// Hex2Bytes decodes a 0x-prefixed hex string.
func Hex2Bytes(s string) ([]byte, error) {
	return hexutil.Decode(s)
}
