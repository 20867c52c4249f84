package main

import (
	"fmt"
	"io"

	"github.com/colorfulnotion/zkapp/chainspecs"
	"github.com/spf13/cobra"
)

func newCommitmentCmd() *cobra.Command {
	var network, tx string
	cmd := &cobra.Command{
		Use:   "commitment",
		Short: "Print the commitments a zkapp command is signed over",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommitment(network, tx, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&network, "network", "mainnet", "network name or config file")
	cmd.Flags().StringVar(&tx, "tx", "", "zkapp command JSON file")
	cmd.MarkFlagRequired("tx")
	return cmd
}

func runCommitment(network, path string, out io.Writer) error {
	cfg, err := chainspecs.ReadConfig(network)
	if err != nil {
		return err
	}
	hs := cfg.Hashing()
	tx, txHash, err := readCommand(path, hs)
	if err != nil {
		return err
	}
	commitment, full := hs.Commitments(tx.ZkappCommand)
	fmt.Fprintf(out, "tx:             %s\n", txHash)
	fmt.Fprintf(out, "commitment:     %s\n", commitment)
	fmt.Fprintf(out, "fullCommitment: %s\n", full)
	for _, root := range tx.AccountUpdates.Roots() {
		fmt.Fprintf(out, "tree %d:         %s\n", root, hs.NodeHash(tx.AccountUpdates, root))
	}
	return nil
}
