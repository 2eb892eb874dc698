package auth

import "errors"

var (
	// ErrUnsupportedProvider is returned when a callback or initiation
	// path names a provider this service does not know.
	ErrUnsupportedProvider = errors.New("unsupported oauth provider")

	// ErrMalformedPayload is returned when a provider payload is missing
	// a field its contract guarantees.
	ErrMalformedPayload = errors.New("malformed provider payload")

	// ErrPersistence is returned when the identity store is unavailable
	// or a uniqueness race could not be resolved.
	ErrPersistence = errors.New("identity persistence failed")

	// ErrUnauthorized is returned for requests without a valid session,
	// or with a session bound to a different resource owner.
	ErrUnauthorized = errors.New("unauthorized")
)
