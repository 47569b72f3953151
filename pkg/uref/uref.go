// Package uref provides URef, an address paired with an optional set of access
// rights, and its canonical byte encoding:
//
//	addr[32] | 0x00                 (no rights)
//	addr[32] | 0x01 | rights[1]     (with rights)
package uref

import (
	"bytes"
	"fmt"

	"github.com/agenthands/statekey/pkg/bytesrepr"
	"github.com/agenthands/statekey/pkg/core"
)

const (
	SerializedLengthMin = core.AddrSize + bytesrepr.U8Size
	SerializedLengthMax = core.AddrSize + bytesrepr.U8Size + bytesrepr.U8Size
)

// URef is comparable; two URefs are equal only if both the address and the
// rights (including their presence) match.
type URef struct {
	addr      core.Addr
	rights    AccessRights
	hasRights bool
}

func New(addr core.Addr, rights AccessRights) URef {
	return URef{addr: addr, rights: rights, hasRights: true}
}

func NewWithoutRights(addr core.Addr) URef {
	return URef{addr: addr}
}

func (u URef) Addr() core.Addr {
	return u.addr
}

// AccessRights returns the rights and whether any are attached.
func (u URef) AccessRights() (AccessRights, bool) {
	return u.rights, u.hasRights
}

// RemoveAccessRights returns a copy of u without rights.
func (u URef) RemoveAccessRights() URef {
	return NewWithoutRights(u.addr)
}

// Compare orders by address, then absent rights before present ones, then by
// rights bits.
func (u URef) Compare(o URef) int {
	if c := bytes.Compare(u.addr[:], o.addr[:]); c != 0 {
		return c
	}
	switch {
	case u.hasRights != o.hasRights:
		if !u.hasRights {
			return -1
		}
		return 1
	case u.rights < o.rights:
		return -1
	case u.rights > o.rights:
		return 1
	}
	return 0
}

// RightsString renders the rights, or "None" when absent.
func (u URef) RightsString() string {
	if !u.hasRights {
		return "None"
	}
	return u.rights.String()
}

func (u URef) String() string {
	return fmt.Sprintf("URef(%s, %s)", u.addr, u.RightsString())
}

func (u URef) SerializedLength() int {
	if u.hasRights {
		return SerializedLengthMax
	}
	return SerializedLengthMin
}

// AppendBytes appends the canonical encoding of u to dst.
func (u URef) AppendBytes(dst []byte) []byte {
	dst = bytesrepr.AppendArray32(dst, u.addr)
	if !u.hasRights {
		return bytesrepr.AppendU8(dst, bytesrepr.OptionNone)
	}
	dst = bytesrepr.AppendU8(dst, bytesrepr.OptionSome)
	return bytesrepr.AppendU8(dst, uint8(u.rights))
}

func (u URef) ToBytes() []byte {
	return u.AppendBytes(make([]byte, 0, u.SerializedLength()))
}

// FromBytes decodes a URef from the front of b.
func FromBytes(b []byte) (URef, []byte, error) {
	addr, rest, err := bytesrepr.Array32FromBytes(b)
	if err != nil {
		return URef{}, nil, err
	}
	some, rest, err := bytesrepr.OptionTagFromBytes(rest)
	if err != nil {
		return URef{}, nil, err
	}
	if !some {
		return NewWithoutRights(addr), rest, nil
	}
	rights, rest, err := AccessRightsFromBytes(rest)
	if err != nil {
		return URef{}, nil, err
	}
	return New(addr, rights), rest, nil
}
