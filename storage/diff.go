package storage

import (
	"encoding/json"
	"fmt"

	"github.com/colorfulnotion/zkapp/types"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// DiffAccounts renders an ASCII diff between two account snapshots, keyed by
// account id. It returns "" when nothing changed.
func DiffAccounts(before, after []*types.Account, coloring bool) (string, error) {
	left, err := snapshotJSON(before)
	if err != nil {
		return "", err
	}
	right, err := snapshotJSON(after)
	if err != nil {
		return "", err
	}
	delta, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return "", fmt.Errorf("diffing JSON: %w", err)
	}
	if !delta.Modified() {
		return "", nil
	}
	var leftObj interface{}
	if err := json.Unmarshal(left, &leftObj); err != nil {
		return "", err
	}
	cfg := formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       coloring,
	}
	return formatter.NewAsciiFormatter(leftObj, cfg).Format(delta)
}

func snapshotJSON(accounts []*types.Account) ([]byte, error) {
	// map keys marshal sorted, which keeps the diff stable
	m := make(map[string]*types.Account, len(accounts))
	for _, a := range accounts {
		m[a.PublicKey.Hex()+"/"+a.TokenId.String()] = a
	}
	return json.Marshal(m)
}
