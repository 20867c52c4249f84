package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/colorfulnotion/zkapp/common"
	"github.com/colorfulnotion/zkapp/types"
)

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// readCommand parses a command file and returns it with the blake2b digest
// of the file, used as the command id in logs.
func readCommand(path string, hs types.Hashing) (*types.AuthorizedZkappCommand, common.Hash, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.Hash{}, err
	}
	tx, err := types.ParseZkappCommand(data, hs)
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("%s: %w", path, err)
	}
	return tx, common.Blake2Hash(data), nil
}
