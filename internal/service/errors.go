package service

import (
	"errors"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/grindtracker/internal/auth"
	"github.com/mmynk/grindtracker/internal/ledger"
)

// ErrInternal is the only detail a client sees for a store failure.
var ErrInternal = errors.New("internal server error")

// Code maps a core error to its Connect code.
func Code(err error) connect.Code {
	switch {
	case ledger.IsValidation(err), errors.Is(err, auth.ErrWeakPassword):
		return connect.CodeInvalidArgument
	case errors.Is(err, auth.ErrUserExists):
		return connect.CodeAlreadyExists
	case errors.Is(err, ledger.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, ledger.ErrUnauthenticated):
		return connect.CodeUnauthenticated
	default:
		return connect.CodeInternal
	}
}

func toConnectError(err error) error {
	code := Code(err)
	if code == connect.CodeInternal {
		return connect.NewError(code, ErrInternal)
	}
	return connect.NewError(code, err)
}

// ParseAsOf parses the optional stats reference time. Empty means now.
func ParseAsOf(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &ledger.ValidationError{Fields: []string{"asOf"}}
	}
	return t, nil
}
