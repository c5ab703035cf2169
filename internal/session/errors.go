package session

import "errors"

var (
	// ErrUnauthenticated means no identity has been established.
	ErrUnauthenticated = errors.New("no authenticated identity established")

	// ErrForbidden means the identity lacks the required role.
	ErrForbidden = errors.New("identity is not in the admin allow-list")
)
