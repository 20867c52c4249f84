package zkerrors

import (
	"errors"
	"strings"
)

// Structural (S) Errors
var (
	ErrSAccountIdMismatch           = errors.New("S1|AccountIdMismatch: Account update targets a different account than the one supplied.")
	ErrSVerificationKeyHashMismatch = errors.New("S2|VerificationKeyHashMismatch: Account update expects a verification key hash the account does not carry.")
	ErrSMemoTooLong                 = errors.New("S3|MemoTooLong: Memo exceeds 32 bytes.")
	ErrSStateLayout                 = errors.New("S4|StateLayout: State layout does not fit the account's state fields.")
	ErrSStateFieldUnknown           = errors.New("S5|StateFieldUnknown: State layout has no field with this name.")
	ErrSStateFieldWidth             = errors.New("S6|StateFieldWidth: Value count differs from the state field width.")
)

// Precondition (P) Errors
var (
	ErrPBalance                = errors.New("P1|BalancePrecondition: Account balance is outside the required range.")
	ErrPNonce                  = errors.New("P2|NoncePrecondition: Account nonce is outside the required range.")
	ErrPReceiptChainHash       = errors.New("P3|ReceiptChainHashPrecondition: Account receipt chain hash differs from the required value.")
	ErrPDelegate               = errors.New("P4|DelegatePrecondition: Account delegate differs from the required value.")
	ErrPState                  = errors.New("P5|StatePrecondition: Account state field differs from the required value.")
	ErrPActionState            = errors.New("P6|ActionStatePrecondition: Required action state is not in the account's action state history.")
	ErrPIsProven               = errors.New("P7|IsProvenPrecondition: Account isProven flag differs from the required value.")
	ErrPIsNew                  = errors.New("P8|IsNewPrecondition: Account isNew flag differs from the required value.")
	ErrPSnarkedLedgerHash      = errors.New("P9|SnarkedLedgerHashPrecondition: Snarked ledger hash differs from the required value.")
	ErrPBlockchainLength       = errors.New("P10|BlockchainLengthPrecondition: Blockchain length is outside the required range.")
	ErrPMinWindowDensity       = errors.New("P11|MinWindowDensityPrecondition: Minimum window density is outside the required range.")
	ErrPTotalCurrency          = errors.New("P12|TotalCurrencyPrecondition: Total currency is outside the required range.")
	ErrPGlobalSlotSinceGenesis = errors.New("P13|GlobalSlotSinceGenesisPrecondition: Global slot since genesis is outside the required range.")
	ErrPStakingEpochData       = errors.New("P14|StakingEpochDataPrecondition: Staking epoch data does not satisfy the precondition.")
	ErrPNextEpochData          = errors.New("P15|NextEpochDataPrecondition: Next epoch data does not satisfy the precondition.")
	ErrPValidWhile             = errors.New("P16|ValidWhilePrecondition: Global slot is outside the validity window.")
)

// Authorization (A) Errors
var (
	ErrAAccess             = errors.New("A1|AccessDenied: Authorization does not satisfy the access permission.")
	ErrASend               = errors.New("A2|SendDenied: Authorization does not satisfy the send permission.")
	ErrAReceive            = errors.New("A3|ReceiveDenied: Authorization does not satisfy the receive permission.")
	ErrAEditState          = errors.New("A4|EditStateDenied: Authorization does not satisfy the editState permission.")
	ErrASetDelegate        = errors.New("A5|SetDelegateDenied: Authorization does not satisfy the setDelegate permission.")
	ErrASetPermissions     = errors.New("A6|SetPermissionsDenied: Authorization does not satisfy the setPermissions permission.")
	ErrASetVerificationKey = errors.New("A7|SetVerificationKeyDenied: Authorization does not satisfy the setVerificationKey permission.")
	ErrASetZkappUri        = errors.New("A8|SetZkappUriDenied: Authorization does not satisfy the setZkappUri permission.")
	ErrAEditActionState    = errors.New("A9|EditActionStateDenied: Authorization does not satisfy the editActionState permission.")
	ErrASetTokenSymbol     = errors.New("A10|SetTokenSymbolDenied: Authorization does not satisfy the setTokenSymbol permission.")
	ErrAIncrementNonce     = errors.New("A11|IncrementNonceDenied: Authorization does not satisfy the incrementNonce permission.")
	ErrASetVotingFor       = errors.New("A12|SetVotingForDenied: Authorization does not satisfy the setVotingFor permission.")
	ErrASetTiming          = errors.New("A13|SetTimingDenied: Authorization does not satisfy the setTiming permission.")
)

// Balance (B) Errors
var (
	ErrBBalanceUnderflow = errors.New("B1|BalanceUnderflow: Balance change would make the balance negative.")
	ErrBBalanceOverflow  = errors.New("B2|BalanceOverflow: Balance change overflows the balance.")
	ErrBAmountOverflow   = errors.New("B3|AmountOverflow: Signed amount arithmetic overflows.")
	ErrBCreationFee      = errors.New("B4|CreationFeeNotCovered: New account cannot pay the account creation fee.")
	ErrBMinimumBalance   = errors.New("B5|MinimumBalanceViolation: Balance falls below the vesting minimum balance.")
)

// Fee (F) Errors
var (
	ErrFFeeExcessNotZero = errors.New("F1|FeeExcessNotZero: Fee excess is not zero at the end of the command.")
	ErrFFeeExcessDead    = errors.New("F2|FeeExcessDead: Fee excess could not be computed.")
)

// Token (K) Errors
var (
	ErrKTokenOwnerNotCaller = errors.New("K1|TokenOwnerNotCaller: Account update uses a custom token whose owner did not authorize it.")
	ErrKMayUseTokenConflict = errors.New("K2|MayUseTokenConflict: parentsOwnToken and inheritFromParent are both set.")
)

// Authorization presence (Z) Errors
var (
	ErrZMissingSignature = errors.New("Z1|MissingSignature: Account update requires a signature but none was attached.")
	ErrZMissingProof     = errors.New("Z2|MissingProof: Account update requires a proof but none was attached.")
	ErrZUnexpectedAuth   = errors.New("Z3|UnexpectedAuthorization: Authorization attached that the authorization kind does not declare.")
	ErrZAuthorizerFailed = errors.New("Z4|AuthorizerFailed: Authorizer could not produce an authorization.")
)

// Wire & Ledger (W) Errors
var (
	ErrWBadCallDepth    = errors.New("W1|BadCallDepth: Flattened account update call depth increases by more than one.")
	ErrWAccountNotFound = errors.New("W2|AccountNotFound: Account does not exist in the ledger.")
	ErrWStorage         = errors.New("W3|Storage: Ledger storage failure.")
	ErrWMalformed       = errors.New("W4|Malformed: Malformed zkapp command encoding.")
)

// GetErrorName extracts the error name from the error message.
func GetErrorName(err error) string {
	if err == nil {
		return "No Error"
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "|") || !strings.Contains(errStr, ":") {
		return errStr
	}
	parts := strings.SplitN(errStr, "|", 2)
	nameParts := strings.SplitN(parts[1], ":", 2)
	return strings.TrimSpace(nameParts[0])
}

func GetErrorNames(errs []error) []string {
	errStrs := make([]string, len(errs))
	for i, err := range errs {
		errStrs[i] = GetErrorName(err)
	}
	return errStrs
}

// GetErrorCode extracts the error code from the error message.
func GetErrorCode(err error) string {
	if err == nil {
		return ""
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "|") {
		return ""
	}
	parts := strings.SplitN(errStr, "|", 2)
	return strings.TrimSpace(parts[0])
}

// GetErrorCodes returns the codes of errs in order, mapping wrapped errors to
// the code of the sentinel they wrap.
func GetErrorCodes(errs []error) []string {
	codes := make([]string, len(errs))
	for i, err := range errs {
		codes[i] = GetErrorCode(err)
	}
	return codes
}

// GetErrorCodeWithName returns the error code and name in the format "Code_ErrorName".
func GetErrorCodeWithName(err error) string {
	code := GetErrorCode(err)
	name := GetErrorName(err)
	if code == "" || name == "" {
		return ""
	}
	return code + "_" + name
}

// GetErrorDesc extracts the error description from the error message.
func GetErrorDesc(err error) string {
	if err == nil {
		return ""
	}
	errStr := err.Error()
	parts := strings.SplitN(errStr, ":", 2)
	if len(parts) < 2 {
		return "DESC NOT SET"
	}
	return strings.TrimSpace(parts[1])
}
