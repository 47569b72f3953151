// Package bytesrepr implements the primitive pieces of the canonical byte
// format: single bytes, little-endian u32 counts, fixed 32-byte arrays, option
// tags and u32-prefixed sequences.
//
// Decoders take the input slice and return the decoded value together with the
// unconsumed remainder. Every failure wraps core.ErrFormatting.
package bytesrepr

import (
	"encoding/binary"
	"fmt"

	"github.com/agenthands/statekey/pkg/core"
)

const (
	U8Size  = 1
	U32Size = 4
)

// Option tags written ahead of an optional value.
const (
	OptionNone byte = 0
	OptionSome byte = 1
)

// Decoder decodes one T from the front of b.
type Decoder[T any] func(b []byte) (T, []byte, error)

// Encoder appends the canonical encoding of v to dst.
type Encoder[T any] func(dst []byte, v T) []byte

func AppendU8(dst []byte, v uint8) []byte {
	return append(dst, v)
}

func AppendU32(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

func AppendArray32(dst []byte, v core.Addr) []byte {
	return append(dst, v[:]...)
}

func U8FromBytes(b []byte) (uint8, []byte, error) {
	if len(b) < U8Size {
		return 0, nil, fmt.Errorf("%w: need 1 byte, have 0", core.ErrFormatting)
	}
	return b[0], b[1:], nil
}

func U32FromBytes(b []byte) (uint32, []byte, error) {
	if len(b) < U32Size {
		return 0, nil, fmt.Errorf("%w: need %d bytes for u32, have %d", core.ErrFormatting, U32Size, len(b))
	}
	return binary.LittleEndian.Uint32(b), b[U32Size:], nil
}

func Array32FromBytes(b []byte) (core.Addr, []byte, error) {
	var out core.Addr
	if len(b) < core.AddrSize {
		return out, nil, fmt.Errorf("%w: need %d bytes for array, have %d", core.ErrFormatting, core.AddrSize, len(b))
	}
	copy(out[:], b[:core.AddrSize])
	return out, b[core.AddrSize:], nil
}

// OptionTagFromBytes reads an option tag and reports whether a value follows.
func OptionTagFromBytes(b []byte) (bool, []byte, error) {
	tag, rest, err := U8FromBytes(b)
	if err != nil {
		return false, nil, err
	}
	switch tag {
	case OptionNone:
		return false, rest, nil
	case OptionSome:
		return true, rest, nil
	default:
		return false, nil, fmt.Errorf("%w: invalid option tag %d", core.ErrFormatting, tag)
	}
}

// AppendSlice writes len(items) as a u32 followed by each encoded item.
func AppendSlice[T any](dst []byte, items []T, enc Encoder[T]) []byte {
	dst = AppendU32(dst, uint32(len(items)))
	for _, it := range items {
		dst = enc(dst, it)
	}
	return dst
}

// SliceFromBytes reads a u32 count and then exactly that many items. minSize is
// the smallest possible encoded item and bounds the preallocation, so a forged
// count cannot reserve more memory than the input could describe. The first
// element error fails the whole sequence.
func SliceFromBytes[T any](b []byte, minSize int, dec Decoder[T]) ([]T, []byte, error) {
	return SliceFromBytesLimit(b, minSize, 0, dec)
}

// SliceFromBytesLimit is SliceFromBytes with an upper bound on the count.
// A zero limit disables the bound.
func SliceFromBytesLimit[T any](b []byte, minSize int, limit uint32, dec Decoder[T]) ([]T, []byte, error) {
	n, rest, err := U32FromBytes(b)
	if err != nil {
		return nil, nil, err
	}
	if limit > 0 && n > limit {
		return nil, nil, fmt.Errorf("%w: sequence length %d exceeds limit %d", core.ErrFormatting, n, limit)
	}

	capHint := int(n)
	if minSize > 0 && capHint > len(rest)/minSize {
		// Fewer bytes remain than n items could occupy; decoding fails below.
		capHint = len(rest) / minSize
	}

	out := make([]T, 0, capHint)
	for i := uint32(0); i < n; i++ {
		v, r, err := dec(rest)
		if err != nil {
			return nil, nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, v)
		rest = r
	}
	return out, rest, nil
}

// Deserialize decodes a single value and requires that b is consumed exactly.
func Deserialize[T any](b []byte, dec Decoder[T]) (T, error) {
	v, rest, err := dec(b)
	if err != nil {
		var zero T
		return zero, err
	}
	if len(rest) != 0 {
		var zero T
		return zero, fmt.Errorf("%w: %d trailing bytes", core.ErrLeftOverBytes, len(rest))
	}
	return v, nil
}
