package key

import (
	"fmt"

	"github.com/agenthands/statekey/pkg/bytesrepr"
	"github.com/agenthands/statekey/pkg/core"
	"github.com/agenthands/statekey/pkg/uref"
	"github.com/fxamacker/cbor/v2"
)

// Canonical encoding: tag byte followed by the variant payload.
//
//	Account  0x00 | addr[32]
//	Hash     0x01 | addr[32]
//	URef     0x02 | uref (33 or 34 bytes)
//	Local    0x03 | seed[32] | key_hash[32]
//
// A sequence of keys is a little-endian u32 count followed by the keys.
const (
	tagSize = bytesrepr.U8Size

	accountSerializedLength = tagSize + core.AddrSize
	hashSerializedLength    = tagSize + core.AddrSize
	localSerializedLength   = tagSize + 2*core.AddrSize

	minSerializedLength = accountSerializedLength
	maxSerializedLength = localSerializedLength
)

func (k Key) SerializedLength() int {
	switch k.tag {
	case TagURef:
		return tagSize + k.ref.SerializedLength()
	case TagLocal:
		return localSerializedLength
	case TagHash:
		return hashSerializedLength
	default:
		return accountSerializedLength
	}
}

// AppendBytes appends the canonical encoding of k to dst.
func (k Key) AppendBytes(dst []byte) []byte {
	dst = bytesrepr.AppendU8(dst, uint8(k.tag))
	switch k.tag {
	case TagURef:
		return k.ref.AppendBytes(dst)
	case TagLocal:
		dst = bytesrepr.AppendArray32(dst, k.addr)
		return bytesrepr.AppendArray32(dst, k.keyHash)
	default:
		return bytesrepr.AppendArray32(dst, k.addr)
	}
}

func (k Key) ToBytes() []byte {
	return k.AppendBytes(make([]byte, 0, k.SerializedLength()))
}

// FromBytes decodes one key from the front of b and returns the remainder.
// An unknown tag is a formatting error; the decoder never falls back to a
// default variant.
func FromBytes(b []byte) (Key, []byte, error) {
	t, rest, err := bytesrepr.U8FromBytes(b)
	if err != nil {
		return Key{}, nil, err
	}

	switch Tag(t) {
	case TagAccount:
		addr, rest, err := bytesrepr.Array32FromBytes(rest)
		if err != nil {
			return Key{}, nil, err
		}
		return NewAccount(addr), rest, nil
	case TagHash:
		addr, rest, err := bytesrepr.Array32FromBytes(rest)
		if err != nil {
			return Key{}, nil, err
		}
		return NewHash(addr), rest, nil
	case TagURef:
		u, rest, err := uref.FromBytes(rest)
		if err != nil {
			return Key{}, nil, err
		}
		return NewURef(u), rest, nil
	case TagLocal:
		seed, rest, err := bytesrepr.Array32FromBytes(rest)
		if err != nil {
			return Key{}, nil, err
		}
		keyHash, rest, err := bytesrepr.Array32FromBytes(rest)
		if err != nil {
			return Key{}, nil, err
		}
		return NewLocal(seed, keyHash), rest, nil
	default:
		return Key{}, nil, fmt.Errorf("%w: unknown key tag %d", core.ErrFormatting, t)
	}
}

func appendKey(dst []byte, k Key) []byte {
	return k.AppendBytes(dst)
}

// Serialize is ToBytes for callers that work with free functions.
func Serialize(k Key) []byte {
	return k.ToBytes()
}

// Deserialize decodes a key that must occupy all of b.
func Deserialize(b []byte) (Key, error) {
	return bytesrepr.Deserialize[Key](b, FromBytes)
}

func (k Key) MarshalBinary() ([]byte, error) {
	return k.ToBytes(), nil
}

func (k *Key) UnmarshalBinary(data []byte) error {
	v, err := Deserialize(data)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// MarshalCBOR encodes k as a CBOR byte string holding the canonical encoding.
func (k Key) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(k.ToBytes())
}

func (k *Key) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: key is not a cbor byte string: %v", core.ErrFormatting, err)
	}
	return k.UnmarshalBinary(raw)
}

// SliceToBytes encodes keys as a u32 count followed by each key.
func SliceToBytes(keys []Key) []byte {
	size := bytesrepr.U32Size
	for _, k := range keys {
		size += k.SerializedLength()
	}
	return bytesrepr.AppendSlice[Key](make([]byte, 0, size), keys, appendKey)
}

// SliceFromBytes decodes a key sequence. Any malformed element fails the whole
// sequence.
func SliceFromBytes(b []byte) ([]Key, []byte, error) {
	return SliceFromBytesLimit(b, 0)
}

// SliceFromBytesLimit is SliceFromBytes with a maximum element count; zero
// means no limit beyond the input length.
func SliceFromBytesLimit(b []byte, limit uint32) ([]Key, []byte, error) {
	return bytesrepr.SliceFromBytesLimit[Key](b, minSerializedLength, limit, FromBytes)
}

// DeserializeSlice decodes a key sequence that must occupy all of b.
func DeserializeSlice(b []byte, limit uint32) ([]Key, error) {
	return bytesrepr.Deserialize[[]Key](b, func(b []byte) ([]Key, []byte, error) {
		return SliceFromBytesLimit(b, limit)
	})
}
