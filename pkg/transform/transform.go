// Package transform wraps encoded key sequences for transport or archival.
// The zstd transform writes a small envelope ahead of the compressed payload:
//
//	"SKEY" | version | flags | alg | payload
package transform

import (
	"fmt"

	"github.com/agenthands/statekey/pkg/core"
	"github.com/klauspost/compress/zstd"
)

const (
	Magic   = "SKEY"
	Version = 1

	envelopeSize = len(Magic) + 3
)

const (
	FlagCompressed = 1 << 0
)

const (
	AlgZstd = 1
)

// maxDecodedSize bounds the memory a single envelope may expand into.
const maxDecodedSize = 256 << 20

// Transform defines the interface for encoding/decoding sequence payloads.
type Transform interface {
	Name() string
	Encode(plain []byte) ([]byte, error)
	Decode(stored []byte) ([]byte, error)
}

// New returns the transform named in cfg. An empty name selects "none".
func New(cfg core.TransformConfig) (Transform, error) {
	switch cfg.Name {
	case "none", "":
		return NewNone(), nil
	case "zstd":
		return NewZstd(cfg.ZstdLevel)
	default:
		return nil, fmt.Errorf("%w: unsupported transform: %s", core.ErrInvalidInput, cfg.Name)
	}
}

type noneTransform struct{}

func NewNone() Transform {
	return &noneTransform{}
}

func (t *noneTransform) Name() string                         { return "none" }
func (t *noneTransform) Encode(plain []byte) ([]byte, error)  { return plain, nil }
func (t *noneTransform) Decode(stored []byte) ([]byte, error) { return stored, nil }

type zstdTransform struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func NewZstd(level int) (Transform, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %w", err)
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecodedSize))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	return &zstdTransform{
		encoder: enc,
		decoder: dec,
	}, nil
}

func (t *zstdTransform) Name() string { return "zstd" }

func (t *zstdTransform) Encode(plain []byte) ([]byte, error) {
	envelope := make([]byte, 0, envelopeSize+len(plain)/2)
	envelope = append(envelope, Magic...)
	envelope = append(envelope, Version, FlagCompressed, AlgZstd)
	return t.encoder.EncodeAll(plain, envelope), nil
}

func (t *zstdTransform) Decode(stored []byte) ([]byte, error) {
	if len(stored) < envelopeSize {
		return nil, fmt.Errorf("%w: payload too small for envelope", core.ErrFormatting)
	}

	if string(stored[:len(Magic)]) != Magic {
		return nil, fmt.Errorf("%w: invalid magic", core.ErrFormatting)
	}

	if v := stored[len(Magic)]; v != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", core.ErrFormatting, v)
	}

	flags := stored[len(Magic)+1]
	alg := stored[len(Magic)+2]
	payload := stored[envelopeSize:]

	if flags&FlagCompressed == 0 {
		return payload, nil
	}
	if alg != AlgZstd {
		return nil, fmt.Errorf("%w: unsupported compression algorithm %d", core.ErrFormatting, alg)
	}

	plain, err := t.decoder.DecodeAll(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", core.ErrFormatting, err)
	}
	return plain, nil
}
