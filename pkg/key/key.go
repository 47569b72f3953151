// Package key defines Key, the addressing key of the global state store.
//
// A Key is exactly one of four variants:
//
//	Account   32-byte account address
//	Hash      32-byte content hash (e.g. contract code)
//	Reference URef: 32-byte address plus optional access rights
//	Local     32-byte seed plus 32-byte key hash
//
// Keys are comparable values: == and Equal agree, and a Key can be used as a
// map key. The canonical byte form is described in codec.go and the text form
// in text.go.
package key

import (
	"bytes"
	"cmp"
	"fmt"

	"github.com/agenthands/statekey/pkg/core"
	"github.com/agenthands/statekey/pkg/pointer"
	"github.com/agenthands/statekey/pkg/uref"
	"github.com/cespare/xxhash/v2"
)

// Tag is the variant discriminant and the first byte of the canonical encoding.
// The values are persisted and must never be renumbered or reused.
type Tag uint8

const (
	TagAccount Tag = 0
	TagHash    Tag = 1
	TagURef    Tag = 2
	TagLocal   Tag = 3
)

func (t Tag) String() string {
	switch t {
	case TagAccount:
		return "Account"
	case TagHash:
		return "Hash"
	case TagURef:
		return "Reference"
	case TagLocal:
		return "Local"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// Key is immutable. The zero Key is the Account key of the zero address.
type Key struct {
	tag Tag
	// addr holds the Account/Hash address or the Local seed.
	addr core.Addr
	ref  uref.URef
	// keyHash is only set for Local keys.
	keyHash core.Addr
}

func NewAccount(addr core.Addr) Key {
	return Key{tag: TagAccount, addr: addr}
}

func NewHash(addr core.Addr) Key {
	return Key{tag: TagHash, addr: addr}
}

func NewURef(u uref.URef) Key {
	return Key{tag: TagURef, ref: u}
}

func NewLocal(seed, keyHash core.Addr) Key {
	return Key{tag: TagLocal, addr: seed, keyHash: keyHash}
}

func (k Key) Tag() Tag {
	return k.tag
}

// AsAccount returns the account address if k is an Account key.
func (k Key) AsAccount() (core.Addr, bool) {
	if k.tag != TagAccount {
		return core.Addr{}, false
	}
	return k.addr, true
}

func (k Key) AsHash() (core.Addr, bool) {
	if k.tag != TagHash {
		return core.Addr{}, false
	}
	return k.addr, true
}

func (k Key) AsURef() (uref.URef, bool) {
	if k.tag != TagURef {
		return uref.URef{}, false
	}
	return k.ref, true
}

func (k Key) AsLocal() (seed, keyHash core.Addr, ok bool) {
	if k.tag != TagLocal {
		return core.Addr{}, core.Addr{}, false
	}
	return k.addr, k.keyHash, true
}

// Normalize drops the access rights of a Reference key so that keys obtained
// with different rights compare equal. Other variants are returned unchanged.
func (k Key) Normalize() Key {
	if k.tag == TagURef {
		return NewURef(k.ref.RemoveAccessRights())
	}
	return k
}

func (k Key) Equal(o Key) bool {
	return k == o
}

// Compare orders keys by tag and then by payload. The order matches
// bytes.Compare over the canonical encodings.
func (k Key) Compare(o Key) int {
	if c := cmp.Compare(k.tag, o.tag); c != 0 {
		return c
	}
	switch k.tag {
	case TagURef:
		return k.ref.Compare(o.ref)
	case TagLocal:
		if c := bytes.Compare(k.addr[:], o.addr[:]); c != 0 {
			return c
		}
		return bytes.Compare(k.keyHash[:], o.keyHash[:])
	default:
		return bytes.Compare(k.addr[:], o.addr[:])
	}
}

// Hash64 is a 64-bit xxhash of the canonical encoding. Equal keys always hash
// equally; useful for sharding and bloom filters.
func (k Key) Hash64() uint64 {
	var buf [maxSerializedLength]byte
	return xxhash.Sum64(k.AppendBytes(buf[:0]))
}

// ToUPointer returns a validated pointer for Reference keys that carry access
// rights.
func (k Key) ToUPointer() (pointer.UPointer, bool) {
	if k.tag != TagURef {
		return pointer.UPointer{}, false
	}
	p, err := pointer.FromURef(k.ref)
	if err != nil {
		return pointer.UPointer{}, false
	}
	return p, true
}

// ToContractPointer resolves Reference keys (with rights) and Hash keys to a
// contract pointer.
func (k Key) ToContractPointer() (pointer.ContractPointer, bool) {
	switch k.tag {
	case TagURef:
		p, ok := k.ToUPointer()
		if !ok {
			return pointer.ContractPointer{}, false
		}
		return pointer.URef(p), true
	case TagHash:
		return pointer.Hash(k.addr), true
	default:
		return pointer.ContractPointer{}, false
	}
}
