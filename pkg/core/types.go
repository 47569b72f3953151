package core

import (
	hex "github.com/tmthrgd/go-hex"
)

// AddrSize is the length of every address-like field carried by a key.
const AddrSize = 32

// Addr is a raw 32-byte address, hash, seed or key hash.
type Addr [AddrSize]byte

// String returns the address as 64 lowercase hex characters.
func (a Addr) String() string {
	return hex.EncodeToString(a[:])
}
