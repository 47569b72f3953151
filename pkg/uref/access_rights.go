package uref

import (
	"fmt"

	"github.com/agenthands/statekey/pkg/bytesrepr"
	"github.com/agenthands/statekey/pkg/core"
)

// AccessRights is the permission-set attached to a URef.
type AccessRights uint8

const (
	AccessRightsNone         AccessRights = 0
	AccessRightsRead         AccessRights = 0b001
	AccessRightsWrite        AccessRights = 0b010
	AccessRightsAdd          AccessRights = 0b100
	AccessRightsReadAdd                   = AccessRightsRead | AccessRightsAdd
	AccessRightsReadWrite                 = AccessRightsRead | AccessRightsWrite
	AccessRightsAddWrite                  = AccessRightsAdd | AccessRightsWrite
	AccessRightsReadAddWrite              = AccessRightsRead | AccessRightsAdd | AccessRightsWrite

	accessRightsMask = AccessRightsReadAddWrite
)

var accessRightsNames = map[AccessRights]string{
	AccessRightsNone:         "NONE",
	AccessRightsRead:         "READ",
	AccessRightsWrite:        "WRITE",
	AccessRightsAdd:          "ADD",
	AccessRightsReadAdd:      "READ_ADD",
	AccessRightsReadWrite:    "READ_WRITE",
	AccessRightsAddWrite:     "ADD_WRITE",
	AccessRightsReadAddWrite: "READ_ADD_WRITE",
}

func (r AccessRights) IsReadable() bool  { return r&AccessRightsRead != 0 }
func (r AccessRights) IsWriteable() bool { return r&AccessRightsWrite != 0 }
func (r AccessRights) IsAddable() bool   { return r&AccessRightsAdd != 0 }

// Valid reports whether r only uses known bits.
func (r AccessRights) Valid() bool {
	return r&^accessRightsMask == 0
}

func (r AccessRights) String() string {
	if name, ok := accessRightsNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseAccessRights is the inverse of String.
func ParseAccessRights(s string) (AccessRights, error) {
	for r, name := range accessRightsNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown access rights %q", core.ErrInvalidInput, s)
}

func AccessRightsFromBytes(b []byte) (AccessRights, []byte, error) {
	v, rest, err := bytesrepr.U8FromBytes(b)
	if err != nil {
		return 0, nil, err
	}
	r := AccessRights(v)
	if !r.Valid() {
		return 0, nil, fmt.Errorf("%w: invalid access rights bits %#08b", core.ErrFormatting, v)
	}
	return r, rest, nil
}
