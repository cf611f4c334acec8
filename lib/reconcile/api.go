package reconcile

import (
	"strings"

	"github.com/Symantec/sql-login-validation/lib/accountcontrol"
	"github.com/Symantec/sql-login-validation/lib/directory"
)

// PrincipalType is the sys.server_principals type code.
type PrincipalType string

const (
	TypeSQLLogin      PrincipalType = "S"
	TypeWindowsUser   PrincipalType = "U"
	TypeWindowsGroup  PrincipalType = "G"
	TypeServerRole    PrincipalType = "R"
	TypeCertificate   PrincipalType = "C"
	TypeAsymmetricKey PrincipalType = "K"
)

// SecurityPrincipal is one login or group as registered on a target
// server. SID is the binary security identifier the server recorded
// when the principal was created.
type SecurityPrincipal struct {
	Server           string
	Name             string
	Type             PrincipalType
	SID              []byte
	DisabledOnServer bool
}

// DirectoryBacked reports whether the server says this principal came
// from a Windows domain, only those can be validated against a
// directory.
func (p *SecurityPrincipal) DirectoryBacked() bool {
	return p.Type == TypeWindowsUser || p.Type == TypeWindowsGroup
}

func (p *SecurityPrincipal) Kind() directory.ObjectKind {
	if p.Type == TypeWindowsGroup {
		return directory.KindGroup
	}
	return directory.KindUser
}

// ValidationResult is the per-principal outcome of a reconciliation
// run. Found is only true when the directory lookup succeeded and the
// directory SID matched the server-recorded one. The embedded
// attributes are nil for groups and for any principal that was not
// found.
type ValidationResult struct {
	Server             string
	ServerIdentity     string
	Domain             string
	AccountName        string
	Kind               directory.ObjectKind
	Found              bool
	DisabledOnServer   bool
	UserAccountControl *uint32
	accountcontrol.Attributes
}

type KindFilter int

const (
	KindFilterNone KindFilter = iota
	KindFilterUsersOnly
	KindFilterGroupsOnly
)

type Options struct {
	IncludeNames    []string
	ExcludeNames    []string
	KindFilter      KindFilter
	ExcludedDomains []string
	Detailed        bool
}

// SplitQualifiedName splits DOMAIN\account on the first separator.
// Names without a separator are not domain-qualified and are out of
// scope.
func SplitQualifiedName(name string) (string, string, bool) {
	separatorIndex := strings.Index(name, "\\")
	if separatorIndex < 0 {
		return "", "", false
	}
	return name[:separatorIndex], name[separatorIndex+1:], true
}
