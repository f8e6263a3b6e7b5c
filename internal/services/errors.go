package services

import (
	"errors"
	"fmt"

	"tableside/internal/models"
)

var (
	ErrNoSession     = errors.New("no order session bound")
	ErrTableInactive = errors.New("table is not active")
)

// InvalidStateError rejects an operation the order's lifecycle state no
// longer permits (e.g. editing lines on a closed order). It is raised
// before any remote call is made.
type InvalidStateError struct {
	Op     string
	Status models.OrderStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s not permitted while order is %s", e.Op, e.Status)
}

func IsInvalidState(err error) bool {
	var ise *InvalidStateError
	return errors.As(err, &ise)
}

// SubmitError reports which staged line a batch submission failed on.
// Lines before it are committed remotely; lines from it onward are still
// staged, so the caller can retry just the remainder.
type SubmitError struct {
	ItemID int64
	Err    error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submitting staged item %d: %v", e.ItemID, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }
