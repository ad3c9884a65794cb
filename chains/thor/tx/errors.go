package tx

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind int

const (
	InvalidDataType ErrorKind = iota + 1
	InvalidTransactionField
	InvalidSecp256k1PrivateKey
	NotDelegatedTransaction
	UnavailableTransactionField
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidDataType:
		return "invalid data type"
	case InvalidTransactionField:
		return "invalid transaction field"
	case InvalidSecp256k1PrivateKey:
		return "invalid secp256k1 private key"
	case NotDelegatedTransaction:
		return "not delegated transaction"
	case UnavailableTransactionField:
		return "unavailable transaction field"
	}

	return fmt.Sprintf("unknown error kind %d", int(k))
}

// Error is the single error type returned by this package. Field is the dotted path of the
// offending field (e.g. "clauses.#1.to") and Value a printable form of the offending value.
type Error struct {
	Kind  ErrorKind
	Field string
	Value string
	Msg   string
	Err   error
}

var (
	// Kind-only sentinels for errors.Is.
	ErrInvalidDataType             = &Error{Kind: InvalidDataType}
	ErrInvalidTransactionField     = &Error{Kind: InvalidTransactionField}
	ErrInvalidSecp256k1PrivateKey  = &Error{Kind: InvalidSecp256k1PrivateKey}
	ErrNotDelegatedTransaction     = &Error{Kind: NotDelegatedTransaction}
	ErrUnavailableTransactionField = &Error{Kind: UnavailableTransactionField}
)

func (e *Error) Error() string {
	parts := []string{e.Kind.String()}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	if e.Msg != "" {
		parts = append(parts, e.Msg)
	}
	if e.Value != "" {
		parts = append(parts, "value "+e.Value)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind when target carries no context, so that
// errors.Is(err, ErrNotDelegatedTransaction) works for every not-delegated failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	if t.Field == "" && t.Msg == "" && t.Value == "" && t.Err == nil {
		return t.Kind == e.Kind
	}

	return t == e
}

// KindOf returns the kind of a tx error, or 0 if err was not produced by this package.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}

func newError(kind ErrorKind, field, msg string) *Error {
	return &Error{Kind: kind, Field: field, Msg: msg}
}

func fieldError(field, msg string) *Error {
	return newError(InvalidTransactionField, field, msg)
}

func dataTypeError(field, msg string) *Error {
	return newError(InvalidDataType, field, msg)
}
