package url

//go:generate go tool errtrace -w .

import "errors"

// Error is a URL parsing or mutation error.
type Error string

func (e Error) Error() string { return string(e) }

// URL marks the error as produced by this package.
func (Error) URL() bool { return true }

const (
	ErrEmptyInput            Error = "empty input"
	ErrInvalidURL            Error = "invalid URL"
	ErrMissingScheme         Error = "missing scheme"
	ErrInvalidScheme         Error = "invalid scheme"
	ErrInvalidCredentials    Error = "invalid credentials"
	ErrInvalidHost           Error = "invalid host"
	ErrInvalidIPv4           Error = "invalid IPv4 address"
	ErrInvalidIPv6           Error = "invalid IPv6 address"
	ErrInvalidPort           Error = "invalid port"
	ErrInvalidBase           Error = "invalid base URL"
	ErrOpaquePath            Error = "URL has an opaque path"
	ErrCannotHaveCredentials Error = "URL cannot have credentials or port"
	ErrTooLong               Error = "input is too long"
)

// IsURLError reports whether err or any error it wraps was produced by this package.
func IsURLError(err error) bool {
	var e interface{ URL() bool }
	return errors.As(err, &e) && e.URL()
}
