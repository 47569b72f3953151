// Package cidutil converts between Hash keys and CIDv1 content identifiers.
// The 32 bytes of a Hash key are taken to be a sha2-256 digest; no hashing is
// performed here.
package cidutil

import (
	"fmt"

	"github.com/agenthands/statekey/pkg/core"
	"github.com/agenthands/statekey/pkg/key"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// CIDFromHashKey wraps the address of a Hash key in a CIDv1 with the raw
// codec and a sha2-256 multihash.
func CIDFromHashKey(k key.Key) (cid.Cid, error) {
	addr, ok := k.AsHash()
	if !ok {
		return cid.Undef, fmt.Errorf("%w: %s is not a Hash key", core.ErrInvalidInput, k.Tag())
	}

	mh, err := multihash.Encode(addr[:], multihash.SHA2_256)
	if err != nil {
		return cid.Undef, fmt.Errorf("failed to encode multihash: %w", err)
	}
	return cid.NewCidV1(cid.Raw, mh), nil
}

// HashKeyFromCID extracts the digest of a sha2-256 CID as a Hash key.
func HashKeyFromCID(c cid.Cid) (key.Key, error) {
	if !c.Defined() {
		return key.Key{}, fmt.Errorf("%w: undefined CID", core.ErrInvalidInput)
	}

	decoded, err := multihash.Decode(c.Hash())
	if err != nil {
		return key.Key{}, fmt.Errorf("%w: invalid multihash: %v", core.ErrInvalidInput, err)
	}
	if decoded.Code != multihash.SHA2_256 {
		return key.Key{}, fmt.Errorf("%w: unsupported multihash code %#x", core.ErrInvalidInput, decoded.Code)
	}
	if len(decoded.Digest) != core.AddrSize {
		return key.Key{}, fmt.Errorf("%w: digest is %d bytes, want %d", core.ErrInvalidInput, len(decoded.Digest), core.AddrSize)
	}

	var addr core.Addr
	copy(addr[:], decoded.Digest)
	return key.NewHash(addr), nil
}

// ParseCID decodes a CID string (any multibase) into a Hash key.
func ParseCID(s string) (key.Key, error) {
	c, err := cid.Decode(s)
	if err != nil {
		return key.Key{}, fmt.Errorf("%w: invalid CID: %v", core.ErrInvalidInput, err)
	}
	return HashKeyFromCID(c)
}
