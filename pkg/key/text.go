package key

import (
	"fmt"
	"strings"

	"github.com/agenthands/statekey/pkg/core"
	"github.com/agenthands/statekey/pkg/uref"
	hex "github.com/tmthrgd/go-hex"
)

const hexPrefix = "0x"

// ParseAddr decodes an optionally "0x"-prefixed lowercase hex string into an
// address. Inputs shorter than 32 bytes are left-aligned and zero-filled;
// longer inputs, odd lengths and characters outside [0-9a-f] are rejected.
func ParseAddr(s string) (core.Addr, bool) {
	var addr core.Addr
	s = strings.TrimPrefix(s, hexPrefix)
	if len(s)%2 != 0 || len(s) > 2*core.AddrSize || !isLowerHex(s) {
		return addr, false
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return core.Addr{}, false
	}
	copy(addr[:], b)
	return addr, true
}

func isLowerHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// ParseHash builds a Hash key from hex text.
func ParseHash(s string) (Key, bool) {
	addr, ok := ParseAddr(s)
	if !ok {
		return Key{}, false
	}
	return NewHash(addr), true
}

// ParseURef builds a Reference key carrying rights from hex text.
func ParseURef(s string, rights uref.AccessRights) (Key, bool) {
	addr, ok := ParseAddr(s)
	if !ok {
		return Key{}, false
	}
	return NewURef(uref.New(addr, rights)), true
}

// ParseLocal builds a Local key; both fields must parse.
func ParseLocal(seed, keyHash string) (Key, bool) {
	s, ok := ParseAddr(seed)
	if !ok {
		return Key{}, false
	}
	h, ok := ParseAddr(keyHash)
	if !ok {
		return Key{}, false
	}
	return NewLocal(s, h), true
}

func (k Key) String() string {
	switch k.tag {
	case TagURef:
		return fmt.Sprintf("%s(%s, %s)", k.tag, k.ref.Addr(), k.ref.RightsString())
	case TagLocal:
		return fmt.Sprintf("%s(%s, %s)", k.tag, k.addr, k.keyHash)
	default:
		return fmt.Sprintf("%s(%s)", k.tag, k.addr)
	}
}

// GoString keeps %#v on the single display form.
func (k Key) GoString() string {
	return k.String()
}
