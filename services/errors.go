// services/errors.go - error kinds the HTTP layer maps onto status codes
package services

import "errors"

var (
	// ErrNotFound marks lookups of rows that do not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks ownership rejections.
	ErrForbidden = errors.New("forbidden")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func notFound(msg string) error  { return &kindError{kind: ErrNotFound, msg: msg} }
func forbidden(msg string) error { return &kindError{kind: ErrForbidden, msg: msg} }
