package service

import "errors"

// Error kinds shared by the backend, the cache and the store.
// Callers classify with errors.Is; the concrete errors wrap these.
var (
	// ErrInvalidURL indicates an endpoint could not be constructed.
	ErrInvalidURL = errors.New("invalid url")

	// ErrNetwork indicates a transport failure (connectivity, timeout).
	ErrNetwork = errors.New("network error")

	// ErrInvalidResponse indicates an unexpected HTTP status code.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrDecoding indicates the payload did not match the expected schema.
	ErrDecoding = errors.New("decoding error")

	// ErrIndexOutOfRange indicates a stale or invalid collection index.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrStorage indicates a local cache read or write failure.
	ErrStorage = errors.New("storage error")

	// ErrFetchInFlight is returned when a hydration or pagination fetch is
	// requested while another one is still running.
	ErrFetchInFlight = errors.New("fetch already in flight")

	// ErrNotReady is returned by store mutations issued before hydration
	// has settled.
	ErrNotReady = errors.New("store not ready")

	// ErrClosed is returned by a store that has been discarded.
	ErrClosed = errors.New("store closed")
)
