package types

import (
	"encoding/json"
	"fmt"

	"github.com/colorfulnotion/zkapp/zkerrors"
)

// AuthorizationLevel is what a permission facet demands.
type AuthorizationLevel uint8

const (
	AuthNone AuthorizationLevel = iota
	AuthSignature
	AuthProof
	AuthEither
	AuthImpossible
)

var authorizationLevelNames = map[AuthorizationLevel]string{
	AuthNone:       "None",
	AuthSignature:  "Signature",
	AuthProof:      "Proof",
	AuthEither:     "Either",
	AuthImpossible: "Impossible",
}

func (a AuthorizationLevel) String() string {
	if s, ok := authorizationLevelNames[a]; ok {
		return s
	}
	return fmt.Sprintf("AuthorizationLevel(%d)", uint8(a))
}

// IsSatisfied reports whether an update authorized by kind meets a.
func (a AuthorizationLevel) IsSatisfied(kind AuthorizationKind) bool {
	switch a {
	case AuthNone:
		return true
	case AuthSignature:
		return kind.IsSigned
	case AuthProof:
		return kind.IsProved
	case AuthEither:
		return kind.IsSigned || kind.IsProved
	default:
		return false
	}
}

// Flags returns the three-bit encoding used inside commitments.
func (a AuthorizationLevel) Flags() (constant, signatureNecessary, signatureSufficient bool) {
	switch a {
	case AuthNone:
		return true, false, true
	case AuthSignature:
		return false, true, true
	case AuthProof:
		return false, false, false
	case AuthEither:
		return false, false, true
	default:
		return true, true, false
	}
}

func (a AuthorizationLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *AuthorizationLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for lvl, name := range authorizationLevelNames {
		if name == s {
			*a = lvl
			return nil
		}
	}
	return fmt.Errorf("%w: authorization level %q", zkerrors.ErrWMalformed, s)
}

// VerificationKeyPermission guards verification key changes. Once the
// protocol transaction version moves past TxnVersion, Proof and Impossible
// relax to Signature so keys can be rotated.
type VerificationKeyPermission struct {
	Auth       AuthorizationLevel `json:"auth"`
	TxnVersion uint32             `json:"txnVersion,string"`
}

func (p VerificationKeyPermission) Effective(currentTxnVersion uint32) AuthorizationLevel {
	if p.TxnVersion < currentTxnVersion && (p.Auth == AuthProof || p.Auth == AuthImpossible) {
		return AuthSignature
	}
	return p.Auth
}

// Permissions maps each account facet to the authorization it requires.
type Permissions struct {
	EditState          AuthorizationLevel        `json:"editState"`
	Access             AuthorizationLevel        `json:"access"`
	Send               AuthorizationLevel        `json:"send"`
	Receive            AuthorizationLevel        `json:"receive"`
	SetDelegate        AuthorizationLevel        `json:"setDelegate"`
	SetPermissions     AuthorizationLevel        `json:"setPermissions"`
	SetVerificationKey VerificationKeyPermission `json:"setVerificationKey"`
	SetZkappUri        AuthorizationLevel        `json:"setZkappUri"`
	EditActionState    AuthorizationLevel        `json:"editActionState"`
	SetTokenSymbol     AuthorizationLevel        `json:"setTokenSymbol"`
	IncrementNonce     AuthorizationLevel        `json:"incrementNonce"`
	SetVotingFor       AuthorizationLevel        `json:"setVotingFor"`
	SetTiming          AuthorizationLevel        `json:"setTiming"`
}

// DefaultPermissions is what a freshly created account gets: everything
// needs a signature except receiving and access.
func DefaultPermissions(txnVersion uint32) Permissions {
	return Permissions{
		EditState:          AuthSignature,
		Access:             AuthNone,
		Send:               AuthSignature,
		Receive:            AuthNone,
		SetDelegate:        AuthSignature,
		SetPermissions:     AuthSignature,
		SetVerificationKey: VerificationKeyPermission{Auth: AuthSignature, TxnVersion: txnVersion},
		SetZkappUri:        AuthSignature,
		EditActionState:    AuthSignature,
		SetTokenSymbol:     AuthSignature,
		IncrementNonce:     AuthSignature,
		SetVotingFor:       AuthSignature,
		SetTiming:          AuthSignature,
	}
}

// UniformPermissions sets every facet to level.
func UniformPermissions(level AuthorizationLevel, txnVersion uint32) Permissions {
	return Permissions{
		EditState:          level,
		Access:             level,
		Send:               level,
		Receive:            level,
		SetDelegate:        level,
		SetPermissions:     level,
		SetVerificationKey: VerificationKeyPermission{Auth: level, TxnVersion: txnVersion},
		SetZkappUri:        level,
		EditActionState:    level,
		SetTokenSymbol:     level,
		IncrementNonce:     level,
		SetVotingFor:       level,
		SetTiming:          level,
	}
}

// Facet names one permission of an account.
type Facet int

const (
	FacetAccess Facet = iota
	FacetSend
	FacetReceive
	FacetEditState
	FacetSetDelegate
	FacetSetPermissions
	FacetSetVerificationKey
	FacetSetZkappUri
	FacetEditActionState
	FacetSetTokenSymbol
	FacetIncrementNonce
	FacetSetVotingFor
	FacetSetTiming
)

var facetInfo = [...]struct {
	name string
	err  error
}{
	FacetAccess:             {"access", zkerrors.ErrAAccess},
	FacetSend:               {"send", zkerrors.ErrASend},
	FacetReceive:            {"receive", zkerrors.ErrAReceive},
	FacetEditState:          {"editState", zkerrors.ErrAEditState},
	FacetSetDelegate:        {"setDelegate", zkerrors.ErrASetDelegate},
	FacetSetPermissions:     {"setPermissions", zkerrors.ErrASetPermissions},
	FacetSetVerificationKey: {"setVerificationKey", zkerrors.ErrASetVerificationKey},
	FacetSetZkappUri:        {"setZkappUri", zkerrors.ErrASetZkappUri},
	FacetEditActionState:    {"editActionState", zkerrors.ErrAEditActionState},
	FacetSetTokenSymbol:     {"setTokenSymbol", zkerrors.ErrASetTokenSymbol},
	FacetIncrementNonce:     {"incrementNonce", zkerrors.ErrAIncrementNonce},
	FacetSetVotingFor:       {"setVotingFor", zkerrors.ErrASetVotingFor},
	FacetSetTiming:          {"setTiming", zkerrors.ErrASetTiming},
}

func (f Facet) String() string {
	return facetInfo[f].name
}

// Err is the sentinel reported when the facet is not satisfied.
func (f Facet) Err() error {
	return facetInfo[f].err
}

// Required returns the level p demands for facet f.
func (p Permissions) Required(f Facet, txnVersion uint32) AuthorizationLevel {
	switch f {
	case FacetAccess:
		return p.Access
	case FacetSend:
		return p.Send
	case FacetReceive:
		return p.Receive
	case FacetEditState:
		return p.EditState
	case FacetSetDelegate:
		return p.SetDelegate
	case FacetSetPermissions:
		return p.SetPermissions
	case FacetSetVerificationKey:
		return p.SetVerificationKey.Effective(txnVersion)
	case FacetSetZkappUri:
		return p.SetZkappUri
	case FacetEditActionState:
		return p.EditActionState
	case FacetSetTokenSymbol:
		return p.SetTokenSymbol
	case FacetIncrementNonce:
		return p.IncrementNonce
	case FacetSetVotingFor:
		return p.SetVotingFor
	case FacetSetTiming:
		return p.SetTiming
	}
	return AuthImpossible
}
