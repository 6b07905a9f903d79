package comanda

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrTicketNotOpen   = errors.New("ticket is not open")
	ErrItemNotFound    = errors.New("line item not found")
	ErrInvalidNumber   = errors.New("invalid ticket number")
	ErrProductInactive = errors.New("product is not active")
	ErrInvalidMethod   = errors.New("invalid payment method")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// ConflictError is returned when a number is already taken by an open ticket.
type ConflictError struct {
	Number int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("ticket %d is already open", e.Number)
}

// EmptyTicketError blocks closing a ticket whose total is zero.
type EmptyTicketError struct {
	Number int
}

func (e *EmptyTicketError) Error() string {
	if e.Number == 0 {
		return "cannot close a ticket with no items"
	}
	return fmt.Sprintf("cannot close ticket %d: it has no items", e.Number)
}

// InsufficientPaymentError is returned when cash tendered is below the total.
type InsufficientPaymentError struct {
	Total    decimal.Decimal
	Tendered decimal.Decimal
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("tendered %s is below total %s", e.Tendered.StringFixed(2), e.Total.StringFixed(2))
}

// Missing returns how much is still owed.
func (e *InsufficientPaymentError) Missing() decimal.Decimal {
	return e.Total.Sub(e.Tendered)
}

type RepositoryErrorKind int

const (
	KindFailure RepositoryErrorKind = iota
	KindNotFound
	KindConflict
)

func (k RepositoryErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "failure"
	}
}

// RepositoryError wraps any backing store failure. Code carries the backend specific
// code (a SQLSTATE for Postgres) when one is known.
type RepositoryError struct {
	Op   string
	Kind RepositoryErrorKind
	Code string
	Err  error
}

func NewRepositoryError(op string, kind RepositoryErrorKind, code string, err error) *RepositoryError {
	return &RepositoryError{Op: op, Kind: kind, Code: code, Err: err}
}

func (e *RepositoryError) Error() string {
	msg := fmt.Sprintf("repository %s: %s", e.Op, e.Kind)
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	var re *RepositoryError
	return errors.As(err, &re) && re.Kind == KindNotFound
}

func IsConflict(err error) bool {
	var re *RepositoryError
	return errors.As(err, &re) && re.Kind == KindConflict
}

// RevertedError reports an optimistic mutation that was rolled back after its write failed.
type RevertedError struct {
	Op  string
	Err error
}

func (e *RevertedError) Error() string {
	return fmt.Sprintf("%s reverted: %v", e.Op, e.Err)
}

func (e *RevertedError) Unwrap() error {
	return e.Err
}
