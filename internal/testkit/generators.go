package testkit

import (
	"math/rand"
	"strings"
	"time"

	"github.com/agenthands/statekey/pkg/core"
	"github.com/agenthands/statekey/pkg/uref"
)

const hexDigits = "0123456789abcdef"

// RNG provides a deterministic random number generator.
// If seed is 0, it uses the current time.
func RNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandomBytes generates a slice of random bytes of the given length.
func RandomBytes(r *rand.Rand, length int) []byte {
	b := make([]byte, length)
	for i := range b {
		b[i] = byte(r.Intn(256))
	}
	return b
}

// RandomAddr returns a random 32-byte address.
func RandomAddr(r *rand.Rand) core.Addr {
	var a core.Addr
	copy(a[:], RandomBytes(r, core.AddrSize))
	return a
}

// RandomRights returns one of the valid access rights combinations, NONE included.
func RandomRights(r *rand.Rand) uref.AccessRights {
	return uref.AccessRights(r.Intn(int(uref.AccessRightsReadAddWrite) + 1))
}

// RandomURef returns a URef that carries rights about half of the time.
func RandomURef(r *rand.Rand) uref.URef {
	addr := RandomAddr(r)
	if r.Intn(2) == 0 {
		return uref.NewWithoutRights(addr)
	}
	return uref.New(addr, RandomRights(r))
}

// HexString returns n random characters from [0-9a-f].
func HexString(r *rand.Rand, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(hexDigits[r.Intn(len(hexDigits))])
	}
	return sb.String()
}

// NonHexString returns n random characters from [f-z], at least one of which
// is outside [0-9a-f].
func NonHexString(r *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('f' + r.Intn('z'-'f'+1))
	}
	if n > 0 {
		b[r.Intn(n)] = byte('g' + r.Intn('z'-'g'+1))
	}
	return string(b)
}
