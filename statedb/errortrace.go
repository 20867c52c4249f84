package statedb

import (
	"errors"
	"fmt"
	"strings"

	"github.com/colorfulnotion/zkapp/types"
	"github.com/colorfulnotion/zkapp/zkerrors"
	"github.com/xlab/treeprint"
)

// AccountUpdateErrorTrace mirrors one node of the applied forest. Skipped
// marks nodes that were never applied because the ledger failed.
type AccountUpdateErrorTrace struct {
	AccountId types.AccountId
	CallSite  string
	Errors    []error
	Skipped   bool
	Children  []*AccountUpdateErrorTrace
}

// HasErrors reports whether this node or any descendant failed.
func (t *AccountUpdateErrorTrace) HasErrors() bool {
	if len(t.Errors) > 0 {
		return true
	}
	for _, c := range t.Children {
		if c.HasErrors() {
			return true
		}
	}
	return false
}

func (t *AccountUpdateErrorTrace) addTo(tree treeprint.Tree) {
	label := t.AccountId.String()
	if t.CallSite != "" {
		label += " @ " + t.CallSite
	}
	switch {
	case t.Skipped:
		label += " skipped"
	case len(t.Errors) == 0:
		label += " ok"
	}
	branch := tree.AddBranch(label)
	for _, err := range t.Errors {
		branch.AddNode("✗ " + err.Error())
	}
	for _, c := range t.Children {
		c.addTo(branch)
	}
}

// ZkappCommandErrorTrace collects everything that went wrong while applying
// one command.
type ZkappCommandErrorTrace struct {
	FeePaymentErrors    []error
	GeneralErrors       []error
	AccountUpdateForest []*AccountUpdateErrorTrace
}

func (t *ZkappCommandErrorTrace) HasErrors() bool {
	if len(t.FeePaymentErrors) > 0 || len(t.GeneralErrors) > 0 {
		return true
	}
	for _, c := range t.AccountUpdateForest {
		if c.HasErrors() {
			return true
		}
	}
	return false
}

// Report renders the trace as an indented tree.
func (t *ZkappCommandErrorTrace) Report() string {
	tree := treeprint.New()
	tree.SetValue("zkapp command")
	fee := tree.AddBranch("fee payment")
	if len(t.FeePaymentErrors) == 0 {
		fee.SetValue("fee payment ok")
	}
	for _, err := range t.FeePaymentErrors {
		fee.AddNode("✗ " + err.Error())
	}
	for _, err := range t.GeneralErrors {
		tree.AddNode("✗ " + err.Error())
	}
	updates := tree.AddBranch("account updates")
	for _, c := range t.AccountUpdateForest {
		c.addTo(updates)
	}
	return tree.String()
}

// Errors lists every recorded error: fee payment first, then general
// errors, then account updates in pre-order.
func (t *ZkappCommandErrorTrace) Errors() []error {
	var all []error
	all = append(all, t.FeePaymentErrors...)
	all = append(all, t.GeneralErrors...)
	var walk func(n *AccountUpdateErrorTrace)
	walk = func(n *AccountUpdateErrorTrace) {
		all = append(all, n.Errors...)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, n := range t.AccountUpdateForest {
		walk(n)
	}
	return all
}

// Err returns nil for a clean trace and a *RejectedError otherwise.
func (t *ZkappCommandErrorTrace) Err() error {
	if !t.HasErrors() {
		return nil
	}
	return &RejectedError{Trace: t}
}

// RejectedError rejects a whole command. It unwraps to every error in the
// trace so errors.Is finds individual causes.
type RejectedError struct {
	Trace *ZkappCommandErrorTrace
}

func (e *RejectedError) Error() string {
	all := e.Unwrap()
	names := zkerrors.GetErrorNames(all)
	return fmt.Sprintf("zkapp command rejected with %d errors: %s", len(all), strings.Join(names, ", "))
}

func (e *RejectedError) Unwrap() []error {
	return e.Trace.Errors()
}

// IsRejected reports whether err rejects a command.
func IsRejected(err error) bool {
	var r *RejectedError
	return errors.As(err, &r)
}
