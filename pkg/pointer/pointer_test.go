package pointer

import (
	"errors"
	"testing"

	"github.com/agenthands/statekey/pkg/core"
	"github.com/agenthands/statekey/pkg/uref"
)

func TestFromURef(t *testing.T) {
	var addr core.Addr
	addr[5] = 0x55

	p, err := FromURef(uref.New(addr, uref.AccessRightsReadAdd))
	if err != nil {
		t.Fatalf("FromURef failed: %v", err)
	}
	if p.Addr != addr || p.Rights != uref.AccessRightsReadAdd {
		t.Errorf("unexpected pointer %v", p)
	}
	if p.ToURef() != uref.New(addr, uref.AccessRightsReadAdd) {
		t.Error("ToURef should restore the original URef")
	}

	_, err = FromURef(uref.NewWithoutRights(addr))
	if !errors.Is(err, core.ErrNoAccessRights) {
		t.Errorf("expected ErrNoAccessRights, got %v", err)
	}
}

func TestContractPointer(t *testing.T) {
	var addr core.Addr
	addr[0] = 1

	h := Hash(addr)
	if !h.IsHash() {
		t.Fatal("expected hash pointer")
	}
	if got, ok := h.HashAddr(); !ok || got != addr {
		t.Errorf("HashAddr mismatch: %v %v", got, ok)
	}
	if _, ok := h.UPointer(); ok {
		t.Error("hash pointer must not yield a UPointer")
	}

	u := URef(UPointer{Addr: addr, Rights: uref.AccessRightsRead})
	if u.IsHash() {
		t.Fatal("expected uref pointer")
	}
	if _, ok := u.HashAddr(); ok {
		t.Error("uref pointer must not yield a hash")
	}
	if p, ok := u.UPointer(); !ok || p.Rights != uref.AccessRightsRead {
		t.Errorf("UPointer mismatch: %v %v", p, ok)
	}
}
