package reconcile

// ProjectedResult is the operator-facing view of a ValidationResult.
// The raw userAccountControl value is never part of any view. Fields
// absent from the selected view stay nil and are dropped from json
// output.
type ProjectedResult struct {
	Server           string `json:"server"`
	ServerIdentity   string `json:"server_identity"`
	Domain           string `json:"domain"`
	AccountName      string `json:"account_name"`
	Kind             string `json:"kind"`
	Found            bool   `json:"found"`
	DisabledOnServer bool   `json:"disabled_on_server"`

	Enabled             *bool `json:"enabled,omitempty"`
	PasswordExpired     *bool `json:"password_expired,omitempty"`
	LockedOut           *bool `json:"locked_out,omitempty"`
	PasswordNotRequired *bool `json:"password_not_required,omitempty"`

	// detailed view only
	CannotChangePassword        *bool `json:"cannot_change_password,omitempty"`
	ReversibleEncryptionAllowed *bool `json:"reversible_encryption_allowed,omitempty"`
	PasswordNeverExpires        *bool `json:"password_never_expires,omitempty"`
	SmartcardRequired           *bool `json:"smartcard_required,omitempty"`
	TrustedForDelegation        *bool `json:"trusted_for_delegation,omitempty"`
	AccountNotDelegated         *bool `json:"account_not_delegated,omitempty"`
	Script                      *bool `json:"script,omitempty"`
	HomedirRequired             *bool `json:"homedir_required,omitempty"`
	NormalAccount               *bool `json:"normal_account,omitempty"`
}

// Project shapes a result for display without touching the result
// itself. The default view hides the operationally sensitive decoded
// attributes, the detailed view shows every decoded attribute but still
// hides the raw flags value.
func Project(result ValidationResult, detailed bool) ProjectedResult {
	projected := ProjectedResult{
		Server:           result.Server,
		ServerIdentity:   result.ServerIdentity,
		Domain:           result.Domain,
		AccountName:      result.AccountName,
		Kind:             result.Kind.String(),
		Found:            result.Found,
		DisabledOnServer: result.DisabledOnServer,

		Enabled:             result.Enabled,
		PasswordExpired:     result.PasswordExpired,
		LockedOut:           result.LockedOut,
		PasswordNotRequired: result.PasswordNotRequired,
	}
	if detailed {
		projected.CannotChangePassword = result.CannotChangePassword
		projected.ReversibleEncryptionAllowed = result.ReversibleEncryptionAllowed
		projected.PasswordNeverExpires = result.PasswordNeverExpires
		projected.SmartcardRequired = result.SmartcardRequired
		projected.TrustedForDelegation = result.TrustedForDelegation
		projected.AccountNotDelegated = result.AccountNotDelegated
		projected.Script = result.Script
		projected.HomedirRequired = result.HomedirRequired
		projected.NormalAccount = result.NormalAccount
	}
	return projected
}
