package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrSaleExists is returned when a sale has already been recorded in the ledger.
var ErrSaleExists = errors.New("sale already exists")

// InvalidTooltipError reports a tooltip payload that could not be decoded or
// lacked a required field.
type InvalidTooltipError struct {
	ID   uuid.UUID
	Name string
	Err  error
}

func (e *InvalidTooltipError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid tooltip for auction %s of type %s", e.ID, e.Name)
	}
	return fmt.Sprintf("invalid tooltip for auction %s of type %s: %v", e.ID, e.Name, e.Err)
}

func (e *InvalidTooltipError) Unwrap() error { return e.Err }

// InvalidEndDateError is returned when the system clock cannot be related to
// the Unix epoch while classifying a timed auction.
type InvalidEndDateError struct {
	End uint64
	Err error
}

func (e *InvalidEndDateError) Error() string {
	return fmt.Sprintf("invalid end date (%d): %v", e.End, e.Err)
}

func (e *InvalidEndDateError) Unwrap() error { return e.Err }
