package transform

import (
	"bytes"
	"errors"
	"testing"

	"github.com/agenthands/statekey/internal/testkit"
	"github.com/agenthands/statekey/pkg/core"
	"github.com/agenthands/statekey/pkg/key"
)

func mustZstd(t testing.TB, level int) Transform {
	t.Helper()
	tr, err := NewZstd(level)
	if err != nil {
		t.Fatalf("NewZstd failed: %v", err)
	}
	return tr
}

func keySequence(n int) []byte {
	r := testkit.RNG(7)
	// Keys sharing a seed compress well, as Local keys of one contract do.
	seed := testkit.RandomAddr(r)
	keys := make([]key.Key, n)
	for i := range keys {
		var h core.Addr
		h[31] = byte(i)
		keys[i] = key.NewLocal(seed, h)
	}
	return key.SliceToBytes(keys)
}

func TestTransformNone(t *testing.T) {
	tr := NewNone()

	if tr.Name() != "none" {
		t.Errorf("expected none, got %s", tr.Name())
	}

	data := keySequence(4)
	encoded, err := tr.Encode(data)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := tr.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Error("none transform should not change data")
	}
}

func TestTransformZstd(t *testing.T) {
	tr := mustZstd(t, 3)

	if tr.Name() != "zstd" {
		t.Errorf("expected zstd, got %s", tr.Name())
	}

	t.Run("Roundtrip", func(t *testing.T) {
		data := keySequence(200)

		encoded, err := tr.Encode(data)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if len(encoded) >= len(data) {
			t.Errorf("expected zstd to compress data, %d >= %d", len(encoded), len(data))
		}
		if string(encoded[:4]) != Magic {
			t.Errorf("missing magic, got %q", encoded[:4])
		}

		decoded, err := tr.Decode(encoded)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		keys, err := key.DeserializeSlice(decoded, 0)
		if err != nil {
			t.Fatalf("decoded payload is not a key sequence: %v", err)
		}
		if len(keys) != 200 {
			t.Errorf("expected 200 keys, got %d", len(keys))
		}
	})

	t.Run("Empty", func(t *testing.T) {
		encoded, err := tr.Encode(nil)
		if err != nil {
			t.Fatalf("Encode nil failed: %v", err)
		}
		decoded, err := tr.Decode(encoded)
		if err != nil {
			t.Fatalf("Decode empty failed: %v", err)
		}
		if len(decoded) != 0 {
			t.Errorf("expected empty output, got %d bytes", len(decoded))
		}
	})

	t.Run("Uncompressed", func(t *testing.T) {
		envelope := append([]byte(Magic), Version, 0x00, 0x00)
		envelope = append(envelope, "raw payload"...)
		decoded, err := tr.Decode(envelope)
		if err != nil {
			t.Fatalf("Decode uncompressed failed: %v", err)
		}
		if string(decoded) != "raw payload" {
			t.Errorf("expected 'raw payload', got %q", decoded)
		}
	})

	t.Run("Corruption", func(t *testing.T) {
		encoded, _ := tr.Encode(keySequence(8))

		cases := map[string][]byte{
			"Truncated": encoded[:6],
			"Magic":     testkit.FlipByte(encoded, 0),
			"Version":   testkit.FlipByte(encoded, 4),
			"Alg":       testkit.FlipByte(encoded, 6),
			"Payload":   testkit.FlipByte(encoded, len(encoded)-1),
		}
		for name, in := range cases {
			if _, err := tr.Decode(in); !errors.Is(err, core.ErrFormatting) {
				t.Errorf("%s: expected ErrFormatting, got %v", name, err)
			}
		}
	})
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "none", "zstd"} {
		tr, err := New(core.TransformConfig{Name: name, ZstdLevel: 1})
		if err != nil {
			t.Fatalf("New(%q) failed: %v", name, err)
		}
		if name != "" && tr.Name() != name {
			t.Errorf("expected %s, got %s", name, tr.Name())
		}
	}

	if _, err := New(core.TransformConfig{Name: "gzip"}); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
