package core

import (
	"errors"
)

var (
	ErrFormatting     = errors.New("statekey: formatting error")
	ErrLeftOverBytes  = errors.New("statekey: left over bytes")
	ErrNoAccessRights = errors.New("statekey: no access rights")
	ErrInvalidInput   = errors.New("statekey: invalid input")
)
