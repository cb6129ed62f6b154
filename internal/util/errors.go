package util

import (
	"errors"
)

// ValidationError rejects malformed input. It is always returned before
// anything was written.
type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

// NotFoundError signals an operation referencing a player or match that does
// not exist.
type NotFoundError string

func (e NotFoundError) Error() string {
	return string(e)
}

// ConflictError signals a uniqueness violation, eg. a taken player name.
type ConflictError string

func (e ConflictError) Error() string {
	return string(e)
}

func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var v NotFoundError
	return errors.As(err, &v)
}

func IsConflict(err error) bool {
	var v ConflictError
	return errors.As(err, &v)
}
