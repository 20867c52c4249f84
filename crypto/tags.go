package crypto

import "fmt"

// DomainTags lists every domain separator used by commitments.
type DomainTags struct {
	AccountUpdateBody DomainTag `json:"account_update_body" yaml:"account_update_body"`
	AccountUpdateNode DomainTag `json:"account_update_node" yaml:"account_update_node"`
	AccountUpdateCons DomainTag `json:"account_update_cons" yaml:"account_update_cons"`
	FeePayerBody      DomainTag `json:"fee_payer_body" yaml:"fee_payer_body"`
	ZkappCommand      DomainTag `json:"zkapp_command" yaml:"zkapp_command"`
	Memo              DomainTag `json:"memo" yaml:"memo"`
	Event             DomainTag `json:"event" yaml:"event"`
	Events            DomainTag `json:"events" yaml:"events"`
	EventsEmpty       DomainTag `json:"events_empty" yaml:"events_empty"`
	Action            DomainTag `json:"action" yaml:"action"`
	Actions           DomainTag `json:"actions" yaml:"actions"`
	ActionsEmpty      DomainTag `json:"actions_empty" yaml:"actions_empty"`
	ActionStateEmpty  DomainTag `json:"action_state_empty" yaml:"action_state_empty"`
	DeriveTokenId     DomainTag `json:"derive_token_id" yaml:"derive_token_id"`
	VerificationKey   DomainTag `json:"verification_key" yaml:"verification_key"`
	SignatureMessage  DomainTag `json:"signature_message" yaml:"signature_message"`
}

// ListTags is the triple used by one committed list.
type ListTags struct {
	Empty DomainTag
	Item  DomainTag
	Cons  DomainTag
}

func (d DomainTags) EventTags() ListTags {
	return ListTags{Empty: d.EventsEmpty, Item: d.Event, Cons: d.Events}
}

func (d DomainTags) ActionTags() ListTags {
	return ListTags{Empty: d.ActionsEmpty, Item: d.Action, Cons: d.Actions}
}

// Validate checks that every tag is set and fits one field element.
func (d DomainTags) Validate() error {
	for name, tag := range map[string]DomainTag{
		"account_update_body": d.AccountUpdateBody,
		"account_update_node": d.AccountUpdateNode,
		"account_update_cons": d.AccountUpdateCons,
		"fee_payer_body":      d.FeePayerBody,
		"zkapp_command":       d.ZkappCommand,
		"memo":                d.Memo,
		"event":               d.Event,
		"events":              d.Events,
		"events_empty":        d.EventsEmpty,
		"action":              d.Action,
		"actions":             d.Actions,
		"actions_empty":       d.ActionsEmpty,
		"action_state_empty":  d.ActionStateEmpty,
		"derive_token_id":     d.DeriveTokenId,
		"verification_key":    d.VerificationKey,
		"signature_message":   d.SignatureMessage,
	} {
		if tag == "" {
			return fmt.Errorf("domain tag %s is empty", name)
		}
		if len(tag) > MaxDomainTagBytes {
			return fmt.Errorf("domain tag %s is longer than %d bytes", name, MaxDomainTagBytes)
		}
	}
	return nil
}
