package reconcile

import (
	"strings"
)

// Logins the server itself creates, these have no directory-side record
// to validate against.
var reservedPrefixes = []string{
	"NT SERVICE\\",
	"NT AUTHORITY\\",
	"BUILTIN\\",
	"##",
}

func hasReservedPrefix(name string) bool {
	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			return true
		}
	}
	return false
}

func nameInList(name string, list []string) bool {
	for _, entry := range list {
		if entry == name {
			return true
		}
	}
	return false
}

// FilterPrincipals selects the principals that are in scope for a
// reconciliation run: directory-backed, domain-qualified, not a
// server-reserved login, and allowed by the include/exclude name lists
// and the kind filter. Domain exclusion is not applied here, the engine
// applies it after splitting the name. An empty result is valid.
func FilterPrincipals(principals []SecurityPrincipal, options Options) []SecurityPrincipal {
	var filtered []SecurityPrincipal
	for _, principal := range principals {
		if !principal.DirectoryBacked() {
			continue
		}
		if _, _, ok := SplitQualifiedName(principal.Name); !ok {
			continue
		}
		if hasReservedPrefix(principal.Name) {
			continue
		}
		if len(options.IncludeNames) > 0 && !nameInList(principal.Name, options.IncludeNames) {
			continue
		}
		if len(options.ExcludeNames) > 0 && nameInList(principal.Name, options.ExcludeNames) {
			continue
		}
		if options.KindFilter == KindFilterUsersOnly && principal.Type != TypeWindowsUser {
			continue
		}
		if options.KindFilter == KindFilterGroupsOnly && principal.Type != TypeWindowsGroup {
			continue
		}
		filtered = append(filtered, principal)
	}
	return filtered
}
