package uref

import (
	"bytes"
	"errors"
	"testing"

	"github.com/agenthands/statekey/pkg/core"
)

func TestAccessRightsPredicates(t *testing.T) {
	cases := []struct {
		rights                       AccessRights
		readable, writeable, addable bool
	}{
		{AccessRightsRead, true, false, false},
		{AccessRightsWrite, false, true, false},
		{AccessRightsAdd, false, false, true},
		{AccessRightsReadAdd, true, false, true},
		{AccessRightsReadWrite, true, true, false},
		{AccessRightsAddWrite, false, true, true},
		{AccessRightsReadAddWrite, true, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.rights.String(), func(t *testing.T) {
			if tc.rights.IsReadable() != tc.readable {
				t.Errorf("IsReadable: expected %v", tc.readable)
			}
			if tc.rights.IsWriteable() != tc.writeable {
				t.Errorf("IsWriteable: expected %v", tc.writeable)
			}
			if tc.rights.IsAddable() != tc.addable {
				t.Errorf("IsAddable: expected %v", tc.addable)
			}
		})
	}
}

func TestAccessRightsNames(t *testing.T) {
	for r := AccessRights(0); r <= accessRightsMask; r++ {
		parsed, err := ParseAccessRights(r.String())
		if err != nil {
			t.Fatalf("ParseAccessRights(%q) failed: %v", r.String(), err)
		}
		if parsed != r {
			t.Errorf("expected %v, got %v", r, parsed)
		}
	}

	if got := AccessRights(0b1000).String(); got != "UNKNOWN" {
		t.Errorf("expected UNKNOWN, got %s", got)
	}

	if _, err := ParseAccessRights("read"); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for lowercase name, got %v", err)
	}
}

func TestURefCodec(t *testing.T) {
	var addr core.Addr
	addr[0], addr[31] = 0xab, 0xcd

	t.Run("WithRights", func(t *testing.T) {
		u := New(addr, AccessRightsReadWrite)
		enc := u.ToBytes()
		if len(enc) != SerializedLengthMax {
			t.Fatalf("expected %d bytes, got %d", SerializedLengthMax, len(enc))
		}
		if enc[32] != 1 || enc[33] != byte(AccessRightsReadWrite) {
			t.Errorf("unexpected option/rights bytes %x", enc[32:])
		}

		got, rest, err := FromBytes(enc)
		if err != nil {
			t.Fatalf("FromBytes failed: %v", err)
		}
		if got != u || len(rest) != 0 {
			t.Errorf("roundtrip mismatch: %v rest=%x", got, rest)
		}
	})

	t.Run("WithoutRights", func(t *testing.T) {
		u := NewWithoutRights(addr)
		enc := u.ToBytes()
		if len(enc) != SerializedLengthMin || enc[32] != 0 {
			t.Fatalf("unexpected encoding %x", enc)
		}

		got, _, err := FromBytes(enc)
		if err != nil {
			t.Fatalf("FromBytes failed: %v", err)
		}
		if _, ok := got.AccessRights(); ok {
			t.Error("expected no rights after decode")
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		valid := New(addr, AccessRightsRead).ToBytes()

		badTag := append([]byte(nil), valid...)
		badTag[32] = 2

		badRights := append([]byte(nil), valid...)
		badRights[33] = 0xf0

		inputs := map[string][]byte{
			"Empty":     nil,
			"ShortAddr": valid[:20],
			"NoTag":     valid[:32],
			"NoRights":  valid[:33],
			"BadTag":    badTag,
			"BadRights": badRights,
		}
		for name, in := range inputs {
			if _, _, err := FromBytes(in); !errors.Is(err, core.ErrFormatting) {
				t.Errorf("%s: expected ErrFormatting, got %v", name, err)
			}
		}
	})
}

func TestURefEquality(t *testing.T) {
	var addr core.Addr
	read := New(addr, AccessRightsRead)
	write := New(addr, AccessRightsWrite)
	none := NewWithoutRights(addr)

	if read == write {
		t.Error("URefs with different rights must differ")
	}
	if read.RemoveAccessRights() != none || write.RemoveAccessRights() != none {
		t.Error("RemoveAccessRights should produce the rights-free URef")
	}
	if read == none {
		t.Error("URef with rights must differ from one without")
	}

	if none.Compare(read) >= 0 {
		t.Error("absent rights should order before present rights")
	}
	if read.Compare(write) >= 0 || write.Compare(read) <= 0 || read.Compare(read) != 0 {
		t.Error("rights ordering is inconsistent")
	}

	var other core.Addr
	other[0] = 1
	if New(other, AccessRightsRead).Compare(New(addr, AccessRightsReadAddWrite)) <= 0 {
		t.Error("address should dominate rights in ordering")
	}

	if !bytes.Equal(none.ToBytes()[:32], addr[:]) {
		t.Error("address must lead the encoding")
	}
}

func TestURefString(t *testing.T) {
	var addr core.Addr
	zeros := "0000000000000000000000000000000000000000000000000000000000000000"

	if got := New(addr, AccessRightsRead).String(); got != "URef("+zeros+", READ)" {
		t.Errorf("unexpected rendering %s", got)
	}
	if got := NewWithoutRights(addr).RightsString(); got != "None" {
		t.Errorf("expected None, got %s", got)
	}
}
