package directory

import (
	"bytes"
	"errors"
	"fmt"
)

// EqualSID compares two binary security identifiers byte for byte.
// An empty or absent identifier on either side never matches: two
// malformed records must not be reported as the same identity.
func EqualSID(a []byte, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return bytes.Equal(a, b)
}

// SIDString renders a binary objectSid in its S-1-... form for
// diagnostics and audit trails.
func SIDString(sid []byte) (string, error) {
	if len(sid) < 8 {
		return "", errors.New("sid value too short")
	}
	revision := int(sid[0])
	subAuthorityCount := int(sid[1]) & 0xFF
	if len(sid) < 8+4*subAuthorityCount {
		return "", errors.New("sid value truncated")
	}
	var authority int
	for i := 2; i <= 7; i++ {
		authority = authority | int(sid[i])<<(8*(5-(i-2)))
	}
	result := fmt.Sprintf("S-%d-%d", revision, authority)
	offset := 8
	for i := 0; i < subAuthorityCount; i++ {
		var subAuthority uint32
		for k := 0; k < 4; k++ {
			subAuthority = subAuthority | (uint32(sid[offset+k]))<<(8*k)
		}
		result = result + fmt.Sprintf("-%d", subAuthority)
		offset += 4
	}
	return result, nil
}

// SIDStringOrHex is the diagnostic form used in warnings: the decoded
// S-1-... value when the identifier parses, a hex dump when it does not.
func SIDStringOrHex(sid []byte) string {
	if len(sid) == 0 {
		return "(absent)"
	}
	value, err := SIDString(sid)
	if err != nil {
		return fmt.Sprintf("%x", sid)
	}
	return value
}
