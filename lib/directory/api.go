package directory

import (
	"errors"
)

var ObjectDoesNotExist = errors.New("Object does not exist in the directory")

type ObjectKind int

const (
	KindUser  ObjectKind = 1
	KindGroup ObjectKind = 2
)

func (kind ObjectKind) String() string {
	switch kind {
	case KindUser:
		return "User"
	case KindGroup:
		return "Group"
	}
	return "Unknown"
}

// Object is what a directory lookup returns for a security principal.
// UserAccountControl is only fetched for user objects, groups carry no
// account-control value.
type Object struct {
	SID                []byte
	UserAccountControl *uint32
}

// Resolver looks up a domain-qualified account (DOMAIN\name) in the
// directory. A clean miss returns ObjectDoesNotExist, any other error
// means the lookup itself failed.
type Resolver interface {
	LookupPrincipal(qualifiedName string, kind ObjectKind) (*Object, error)
}
