package types

// AuthorizationKind declares how an account update will be authorized.
type AuthorizationKind struct {
	IsSigned bool `json:"isSigned"`
	IsProved bool `json:"isProved"`
}

var (
	AuthKindNone              = AuthorizationKind{}
	AuthKindSignature         = AuthorizationKind{IsSigned: true}
	AuthKindProof             = AuthorizationKind{IsProved: true}
	AuthKindSignatureAndProof = AuthorizationKind{IsSigned: true, IsProved: true}
)

func (k AuthorizationKind) String() string {
	switch k {
	case AuthKindSignature:
		return "Signature"
	case AuthKindProof:
		return "Proof"
	case AuthKindSignatureAndProof:
		return "SignatureAndProof"
	}
	return "None"
}

// Signature and Proof are opaque to validation; only their presence is
// checked against the declared AuthorizationKind.
type (
	Signature []byte
	Proof     []byte
)

// Authorization is what gets attached to an update once it is authorized.
type Authorization struct {
	Signature Signature `json:"signature,omitempty"`
	Proof     Proof     `json:"proof,omitempty"`
}
