package leave

import "errors"

var (
	ErrLeaveNotFound   = errors.New("leave request not found")
	ErrAlreadyResolved = errors.New("leave request has already been processed")
	ErrPastDate        = errors.New("cannot apply leave for past dates")
	ErrInvertedRange   = errors.New("to date must be the same or after from date")
	ErrUnknownType     = errors.New("unknown leave type")
)
