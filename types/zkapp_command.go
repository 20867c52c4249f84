package types

import (
	"fmt"

	"github.com/colorfulnotion/zkapp/common"
	"github.com/colorfulnotion/zkapp/zkerrors"
)

// MaxMemoBytes bounds the memo length.
const MaxMemoBytes = 32

// FeePayment pays the command fee from a native-token account.
type FeePayment struct {
	PublicKey  PublicKey   `json:"publicKey"`
	Fee        Amount      `json:"fee"`
	ValidUntil *GlobalSlot `json:"validUntil,omitempty"`
	Nonce      Nonce       `json:"nonce"`
}

// AccountUpdate is the account update the fee payment is applied as: a
// signed debit of the fee that bumps the nonce, checked against the exact
// nonce and the optional expiry slot.
func (p FeePayment) AccountUpdate(hs Hashing) *AccountUpdate {
	u := &AccountUpdate{
		PublicKey:                  p.PublicKey,
		TokenId:                    DefaultTokenId,
		Events:                     hs.EmptyEvents(),
		Actions:                    hs.EmptyActions(),
		BalanceChange:              Negative(p.Fee),
		IncrementNonce:             true,
		UseFullCommitment:          true,
		ImplicitAccountCreationFee: true,
		AuthorizationKind:          AuthKindSignature,
		CallSite:                   "fee payer",
	}
	u.Preconditions.Account.Nonce = InRange(p.Nonce, p.Nonce)
	if p.ValidUntil != nil {
		u.Preconditions.Network.GlobalSlotSinceGenesis = AtMost(*p.ValidUntil)
	}
	return u
}

func (p FeePayment) AccountId() AccountId {
	return AccountId{PublicKey: p.PublicKey, TokenId: DefaultTokenId}
}

// ZkappCommand is a fee payment plus a forest of account updates.
type ZkappCommand struct {
	FeePayment     FeePayment
	AccountUpdates *AccountUpdateForest
	Memo           string
}

func NewZkappCommand(fee FeePayment, memo string) *ZkappCommand {
	return &ZkappCommand{FeePayment: fee, AccountUpdates: NewAccountUpdateForest(), Memo: memo}
}

// AuthorizedZkappCommand is a command whose updates carry their
// authorizations.
type AuthorizedZkappCommand struct {
	*ZkappCommand
	FeePayerSignature Signature
}

// Authorizer produces signatures and proofs for a command. Keys and provers
// live behind it.
type Authorizer interface {
	Sign(signer PublicKey, message common.Field) (Signature, error)
	Prove(update *AccountUpdate, commitment common.Field) (Proof, error)
}

// Authorize signs and proves a copy of c. Each update signs the full
// commitment when it uses it and the forest commitment otherwise.
func Authorize(c *ZkappCommand, hs Hashing, networkID string, a Authorizer) (*AuthorizedZkappCommand, error) {
	out := &ZkappCommand{FeePayment: c.FeePayment, AccountUpdates: c.AccountUpdates.Clone(), Memo: c.Memo}
	commitment, full := hs.Commitments(out)

	feeSig, err := a.Sign(c.FeePayment.PublicKey, hs.SignatureMessage(full, networkID))
	if err != nil {
		return nil, fmt.Errorf("%w: fee payer: %v", zkerrors.ErrZAuthorizerFailed, err)
	}

	var authErr error
	out.AccountUpdates.ForEachNode(func(id NodeID, _ int) {
		if authErr != nil {
			return
		}
		u := out.AccountUpdates.Update(id)
		msg := commitment
		if u.UseFullCommitment {
			msg = full
		}
		u.Authorization = Authorization{}
		if u.AuthorizationKind.IsSigned {
			sig, err := a.Sign(u.PublicKey, hs.SignatureMessage(msg, networkID))
			if err != nil {
				authErr = fmt.Errorf("%w: %s: %v", zkerrors.ErrZAuthorizerFailed, u.AccountId(), err)
				return
			}
			u.Authorization.Signature = sig
		}
		if u.AuthorizationKind.IsProved {
			proof, err := a.Prove(u, msg)
			if err != nil {
				authErr = fmt.Errorf("%w: %s: %v", zkerrors.ErrZAuthorizerFailed, u.AccountId(), err)
				return
			}
			u.Authorization.Proof = proof
		}
	})
	if authErr != nil {
		return nil, authErr
	}
	return &AuthorizedZkappCommand{ZkappCommand: out, FeePayerSignature: feeSig}, nil
}

// Validate checks the command shape: memo size, token flags and that every
// declared authorization is attached. It does not verify signatures or
// proofs.
func (c *AuthorizedZkappCommand) Validate() []error {
	var errs []error
	if len(c.Memo) > MaxMemoBytes {
		errs = append(errs, fmt.Errorf("%w: %d bytes", zkerrors.ErrSMemoTooLong, len(c.Memo)))
	}
	if len(c.FeePayerSignature) == 0 {
		errs = append(errs, fmt.Errorf("%w: fee payer", zkerrors.ErrZMissingSignature))
	}
	c.AccountUpdates.ForEachNode(func(id NodeID, _ int) {
		u := c.AccountUpdates.Update(id)
		if err := u.MayUseToken.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s", err, u.AccountId()))
		}
		auth := u.Authorization
		switch {
		case u.AuthorizationKind.IsSigned && len(auth.Signature) == 0:
			errs = append(errs, fmt.Errorf("%w: %s", zkerrors.ErrZMissingSignature, u.AccountId()))
		case !u.AuthorizationKind.IsSigned && len(auth.Signature) != 0:
			errs = append(errs, fmt.Errorf("%w: signature on %s", zkerrors.ErrZUnexpectedAuth, u.AccountId()))
		}
		switch {
		case u.AuthorizationKind.IsProved && len(auth.Proof) == 0:
			errs = append(errs, fmt.Errorf("%w: %s", zkerrors.ErrZMissingProof, u.AccountId()))
		case !u.AuthorizationKind.IsProved && len(auth.Proof) != 0:
			errs = append(errs, fmt.Errorf("%w: proof on %s", zkerrors.ErrZUnexpectedAuth, u.AccountId()))
		}
	})
	return errs
}
