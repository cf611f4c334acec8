package accountcontrol

// userAccountControl bit values, per the ADS_USER_FLAG_ENUM registry.
// Reserved bits outside this set are ignored.
const (
	Script                       uint32 = 0x00000001 // The logon script is executed.
	AccountDisable               uint32 = 0x00000002 // The account is disabled.
	HomedirRequired              uint32 = 0x00000008 // The home directory is required.
	Lockout                      uint32 = 0x00000010 // The account is currently locked out.
	PasswdNotreqd                uint32 = 0x00000020 // No password is required.
	PasswdCantChange             uint32 = 0x00000040 // The user cannot change the password.
	EncryptedTextPasswordAllowed uint32 = 0x00000080 // The user can send an encrypted password.
	NormalAccount                uint32 = 0x00000200 // Default account type for a typical user.
	DontExpirePasswd             uint32 = 0x00010000 // The password for this account never expires.
	SmartcardRequired            uint32 = 0x00040000 // The user must log on using a smart card.
	TrustedForDelegation         uint32 = 0x00080000 // The account is trusted for Kerberos delegation.
	NotDelegated                 uint32 = 0x00100000 // The security context is never delegated to a service.
	PasswordExpired              uint32 = 0x00800000 // The user password has expired.
)

// Attributes is the decoded form of a userAccountControl value. Fields
// are tri-state: nil means the flags value was not available, which is
// not the same thing as a verified false.
type Attributes struct {
	Script                      *bool
	Enabled                     *bool
	HomedirRequired             *bool
	LockedOut                   *bool
	PasswordNotRequired         *bool
	CannotChangePassword        *bool
	ReversibleEncryptionAllowed *bool
	NormalAccount               *bool
	PasswordNeverExpires        *bool
	SmartcardRequired           *bool
	TrustedForDelegation        *bool
	AccountNotDelegated         *bool
	PasswordExpired             *bool
}

// Decode maps a userAccountControl value into named attributes. A nil
// flags value yields all-nil attributes. Enabled is the negation of the
// disable bit, every other attribute is a direct bit test.
func Decode(flags *uint32) Attributes {
	if flags == nil {
		return Attributes{}
	}
	enabled := *flags&AccountDisable == 0
	return Attributes{
		Script:                      flagSet(*flags, Script),
		Enabled:                     &enabled,
		HomedirRequired:             flagSet(*flags, HomedirRequired),
		LockedOut:                   flagSet(*flags, Lockout),
		PasswordNotRequired:         flagSet(*flags, PasswdNotreqd),
		CannotChangePassword:        flagSet(*flags, PasswdCantChange),
		ReversibleEncryptionAllowed: flagSet(*flags, EncryptedTextPasswordAllowed),
		NormalAccount:               flagSet(*flags, NormalAccount),
		PasswordNeverExpires:        flagSet(*flags, DontExpirePasswd),
		SmartcardRequired:           flagSet(*flags, SmartcardRequired),
		TrustedForDelegation:        flagSet(*flags, TrustedForDelegation),
		AccountNotDelegated:         flagSet(*flags, NotDelegated),
		PasswordExpired:             flagSet(*flags, PasswordExpired),
	}
}

func flagSet(flags uint32, bit uint32) *bool {
	set := flags&bit != 0
	return &set
}
