package oled

import (
	"errors"
	"fmt"
)

// ErrUnsupportedSize is returned by the driver constructors for dimensions the controller can't drive.
var ErrUnsupportedSize = errors.New("oled: unsupported display size")

// ValidationError is returned when a request is rejected before any I/O is done.
type ValidationError struct {
	Op     string
	Reason string
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("oled: %s: %s", err.Op, err.Reason)
}

// InitError is returned when the controller initialization sequence fails.
type InitError struct {
	Chipset string
	Err     error
}

func (err *InitError) Error() string {
	return fmt.Sprintf("oled: failed to initialize %s display driver: %v", err.Chipset, err.Err)
}

func (err *InitError) Unwrap() error {
	return err.Err
}
