// Package pointer defines typed storage pointers derived from keys.
package pointer

import (
	"fmt"

	"github.com/agenthands/statekey/pkg/core"
	"github.com/agenthands/statekey/pkg/uref"
)

// UPointer is a URef that is known to carry access rights.
type UPointer struct {
	Addr   core.Addr
	Rights uref.AccessRights
}

// FromURef validates u and returns the pointer. A URef without rights cannot
// be used as a pointer.
func FromURef(u uref.URef) (UPointer, error) {
	rights, ok := u.AccessRights()
	if !ok {
		return UPointer{}, fmt.Errorf("%w: uref %s", core.ErrNoAccessRights, u.Addr())
	}
	return UPointer{Addr: u.Addr(), Rights: rights}, nil
}

func (p UPointer) ToURef() uref.URef {
	return uref.New(p.Addr, p.Rights)
}

func (p UPointer) String() string {
	return fmt.Sprintf("UPointer(%s, %s)", p.Addr, p.Rights)
}

// ContractPointer addresses a contract either by hash or by URef.
type ContractPointer struct {
	isHash bool
	hash   core.Addr
	uptr   UPointer
}

func Hash(addr core.Addr) ContractPointer {
	return ContractPointer{isHash: true, hash: addr}
}

func URef(p UPointer) ContractPointer {
	return ContractPointer{uptr: p}
}

func (c ContractPointer) IsHash() bool {
	return c.isHash
}

func (c ContractPointer) HashAddr() (core.Addr, bool) {
	return c.hash, c.isHash
}

func (c ContractPointer) UPointer() (UPointer, bool) {
	return c.uptr, !c.isHash
}

func (c ContractPointer) String() string {
	if c.isHash {
		return fmt.Sprintf("Hash(%s)", c.hash)
	}
	return c.uptr.String()
}
