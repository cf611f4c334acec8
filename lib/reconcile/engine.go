package reconcile

import (
	"log"
	"strings"

	"github.com/Symantec/sql-login-validation/lib/accountcontrol"
	"github.com/Symantec/sql-login-validation/lib/directory"
)

// Engine validates server-side principals against a directory. One
// engine is used per target server, principals are processed one at a
// time in input order.
type Engine struct {
	Resolver directory.Resolver
	Options  Options
	// Logger receives the per-principal warnings (lookup failures and
	// SID mismatches). nil means the default logger.
	Logger *log.Logger
}

func NewEngine(resolver directory.Resolver, options Options) *Engine {
	return &Engine{Resolver: resolver, Options: options}
}

func (e *Engine) logf(format string, args ...interface{}) {
	if e.Logger != nil {
		e.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func domainExcluded(domain string, excludedDomains []string) bool {
	for _, excluded := range excludedDomains {
		if strings.EqualFold(domain, excluded) {
			return true
		}
	}
	return false
}

// Reconcile emits one ValidationResult per filtered principal, in input
// order, skipping principals whose domain is excluded. Per-principal
// lookup failures degrade that principal to not-found and never abort
// the run.
func (e *Engine) Reconcile(principals []SecurityPrincipal) []ValidationResult {
	var results []ValidationResult
	for _, principal := range principals {
		domain, account, ok := SplitQualifiedName(principal.Name)
		if !ok {
			// filtered input always carries a qualifier, but a caller
			// may bypass FilterPrincipals
			e.logf("skipping %s on %s: not domain-qualified", principal.Name, principal.Server)
			continue
		}
		if domainExcluded(domain, e.Options.ExcludedDomains) {
			continue
		}

		found := false
		var control *uint32
		object, err := e.Resolver.LookupPrincipal(principal.Name, principal.Kind())
		switch {
		case err == directory.ObjectDoesNotExist:
			e.logf("%s on %s: no directory object for %s", principal.Name, principal.Server, account)
		case err != nil:
			e.logf("%s on %s: directory lookup failed, treating as not found: %s",
				principal.Name, principal.Server, err)
		case !directory.EqualSID(object.SID, principal.SID):
			e.logf("%s on %s: SID mismatch, server has %s, directory has %s",
				principal.Name, principal.Server,
				directory.SIDStringOrHex(principal.SID), directory.SIDStringOrHex(object.SID))
		default:
			found = true
			if principal.Kind() == directory.KindUser {
				control = object.UserAccountControl
			}
		}

		results = append(results, ValidationResult{
			Server:             principal.Server,
			ServerIdentity:     principal.Name,
			Domain:             domain,
			AccountName:        account,
			Kind:               principal.Kind(),
			Found:              found,
			DisabledOnServer:   principal.DisabledOnServer,
			UserAccountControl: control,
			Attributes:         accountcontrol.Decode(control),
		})
	}
	return results
}
