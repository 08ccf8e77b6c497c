package classifier

import "errors"

var (
	// ErrEmptyEndpoint is returned when the client is constructed without
	// a predict endpoint.
	ErrEmptyEndpoint = errors.New("classifier endpoint cannot be empty")

	// ErrInvalidProxyAddress is returned when the SOCKS5 proxy address is
	// not in "host:port" format.
	ErrInvalidProxyAddress = errors.New("invalid proxy address format (expected host:port)")

	// ErrUnexpectedStatus is returned when the service responds with a
	// non-200 status code.
	ErrUnexpectedStatus = errors.New("classifier returned unexpected status")

	// ErrUnexpectedPrediction is returned when the service responds with a
	// prediction outside {0, 1}.
	ErrUnexpectedPrediction = errors.New("classifier returned unexpected prediction value")
)
