package reconcile

import (
	"encoding/binary"

	"github.com/Symantec/sql-login-validation/lib/directory"
)

type mockResolver struct {
	objects map[string]*directory.Object
	errors  map[string]error
	calls   []string
}

func newMockResolver() *mockResolver {
	return &mockResolver{
		objects: make(map[string]*directory.Object),
		errors:  make(map[string]error),
	}
}

func (m *mockResolver) LookupPrincipal(qualifiedName string, kind directory.ObjectKind) (*directory.Object, error) {
	m.calls = append(m.calls, qualifiedName)
	if err, ok := m.errors[qualifiedName]; ok {
		return nil, err
	}
	if object, ok := m.objects[qualifiedName]; ok {
		return object, nil
	}
	return nil, directory.ObjectDoesNotExist
}

func testSID(rid uint32) []byte {
	sid := []byte{1, 5, 0, 0, 0, 0, 0, 5}
	for _, subAuthority := range []uint32{21, 1111, 2222, 3333, rid} {
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], subAuthority)
		sid = append(sid, buf[:]...)
	}
	return sid
}

func uint32Ptr(value uint32) *uint32 {
	return &value
}

func testPrincipal(name string, principalType PrincipalType, rid uint32) SecurityPrincipal {
	return SecurityPrincipal{
		Server: "sqlprod01",
		Name:   name,
		Type:   principalType,
		SID:    testSID(rid),
	}
}
