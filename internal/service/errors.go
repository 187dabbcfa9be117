package service

import (
	"errors"
	"fmt"

	"github.com/mmynk/tripsplit/internal/storage"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidTripID   = errors.New("invalid trip id")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrAdminDisabled   = errors.New("admin login disabled")
)

// invalid returns an ErrInvalidArgument with a message for the caller.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// fromStore translates storage sentinel errors into service errors, keeping the message.
func fromStore(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, storage.ErrAlreadyExists):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		return err
	}
}
