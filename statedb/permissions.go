package statedb

import (
	"fmt"

	"github.com/colorfulnotion/zkapp/types"
)

// touchedFacets lists the permissions an update needs. Access is always
// first since every update touches its account.
func touchedFacets(u *types.AccountUpdate) []types.Facet {
	facets := []types.Facet{types.FacetAccess}
	if u.BalanceChange.IsNegative() {
		facets = append(facets, types.FacetSend)
	}
	if u.BalanceChange.IsPositive() {
		facets = append(facets, types.FacetReceive)
	}
	if u.Update.AppState.AnySet() {
		facets = append(facets, types.FacetEditState)
	}
	if u.Update.Delegate.IsSome {
		facets = append(facets, types.FacetSetDelegate)
	}
	if u.Update.Permissions.IsSome {
		facets = append(facets, types.FacetSetPermissions)
	}
	if u.Update.VerificationKey.IsSome {
		facets = append(facets, types.FacetSetVerificationKey)
	}
	if u.Update.ZkappUri.IsSome {
		facets = append(facets, types.FacetSetZkappUri)
	}
	if !u.Actions.IsEmpty() {
		facets = append(facets, types.FacetEditActionState)
	}
	if u.Update.TokenSymbol.IsSome {
		facets = append(facets, types.FacetSetTokenSymbol)
	}
	if u.IncrementNonce {
		facets = append(facets, types.FacetIncrementNonce)
	}
	if u.Update.VotingFor.IsSome {
		facets = append(facets, types.FacetSetVotingFor)
	}
	if u.Update.Timing.IsSome {
		facets = append(facets, types.FacetSetTiming)
	}
	return facets
}

func checkPermissions(perms *types.Permissions, u *types.AccountUpdate, txnVersion uint32, errs *errorList) {
	for _, f := range touchedFacets(u) {
		required := perms.Required(f, txnVersion)
		if !required.IsSatisfied(u.AuthorizationKind) {
			errs.add(fmt.Errorf("%w: requires %s, authorized by %s", f.Err(), required, u.AuthorizationKind))
		}
	}
}
