package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/colorfulnotion/zkapp/chainspecs"
	"github.com/colorfulnotion/zkapp/common"
	"github.com/colorfulnotion/zkapp/log"
	"github.com/colorfulnotion/zkapp/statedb"
	"github.com/colorfulnotion/zkapp/storage"
	"github.com/colorfulnotion/zkapp/types"
	"github.com/colorfulnotion/zkapp/zkerrors"
	"github.com/spf13/cobra"
)

type applyOptions struct {
	network  string
	chain    string
	accounts string
	db       string
	tx       string
	out      string
	diff     bool
}

func newApplyCmd() *cobra.Command {
	var opts applyOptions
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a zkapp command to a ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(&opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.network, "network", "mainnet", "network name or config file")
	cmd.Flags().StringVar(&opts.chain, "chain", "", "chain view JSON file")
	cmd.Flags().StringVar(&opts.accounts, "accounts", "", "ledger JSON file (list of accounts)")
	cmd.Flags().StringVar(&opts.db, "db", "", "LevelDB ledger directory")
	cmd.Flags().StringVar(&opts.tx, "tx", "", "zkapp command JSON file")
	cmd.Flags().StringVar(&opts.out, "out", "", "write the resulting ledger JSON here when accepted")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "print account diffs")
	cmd.MarkFlagRequired("chain")
	cmd.MarkFlagRequired("tx")
	cmd.MarkFlagsMutuallyExclusive("accounts", "db")
	cmd.MarkFlagsOneRequired("accounts", "db")
	return cmd
}

// runApply applies the command to a copy of the ledger. The copy is written
// back only when the command is accepted.
func runApply(opts *applyOptions, out io.Writer) error {
	cfg, err := chainspecs.ReadConfig(opts.network)
	if err != nil {
		return err
	}
	v := statedb.NewValidator(cfg)

	var chain types.ChainView
	if err := readJSONFile(opts.chain, &chain); err != nil {
		return err
	}
	tx, txHash, err := readCommand(opts.tx, v.Hashing())
	if err != nil {
		return err
	}
	if errs := tx.Validate(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(out, "✗ %v\n", e)
		}
		return fmt.Errorf("malformed command: %w", errors.Join(errs...))
	}

	var (
		accounts []*types.Account
		db       *storage.LevelDBLedger
	)
	if opts.db != "" {
		if db, err = storage.OpenLevelDBLedger(opts.db); err != nil {
			return err
		}
		defer db.Close()
		if accounts, err = db.Accounts(); err != nil {
			return err
		}
	} else if err := readJSONFile(opts.accounts, &accounts); err != nil {
		return err
	}
	ledger := storage.NewMemoryLedger(accounts...)
	before := ledger.Accounts()

	log.Info(log.CmdMonitoring, "applying zkapp command", "tx", common.Str(txHash), "network", cfg.NetworkID, "accounts", len(accounts), "updates", tx.AccountUpdates.Len())
	trace, applyErr := statedb.ApplyZkappCommand(v, ledger, &chain, tx.ZkappCommand)
	if applyErr != nil && !statedb.IsRejected(applyErr) {
		return applyErr
	}
	fmt.Fprintln(out, trace.Report())

	if opts.diff {
		d, err := storage.DiffAccounts(before, ledger.Accounts(), false)
		if err != nil {
			return err
		}
		fmt.Fprint(out, d)
	}
	if applyErr != nil {
		log.Warn(log.CmdMonitoring, "zkapp command rejected", "tx", common.Str(txHash), "codes", zkerrors.GetErrorCodes(trace.Errors()))
		return applyErr
	}

	if db != nil {
		if err := db.Import(ledger.Accounts()); err != nil {
			return err
		}
	}
	if opts.out != "" {
		if err := writeJSONFile(opts.out, ledger.Accounts()); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, "accepted")
	return nil
}
