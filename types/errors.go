package types

import "errors"

// Error taxonomy. Handlers map these to HTTP statuses; services wrap them with
// fmt.Errorf("...: %w", ...) so callers can errors.Is against the sentinel.
var (
	// ErrValidation means malformed or missing caller input. Never retried.
	ErrValidation = errors.New("validation error")
	// ErrStoreRead means the vector store failed during a read.
	ErrStoreRead = errors.New("store read error")
	// ErrStoreWrite means the vector store failed during a write.
	ErrStoreWrite = errors.New("store write error")
	// ErrGeneration means the language model call failed. Fatal for the request,
	// there is no trustworthy fallback answer.
	ErrGeneration = errors.New("generation error")
	// ErrLogging means the query log append failed. Non-fatal, the answer is
	// still returned.
	ErrLogging = errors.New("logging error")
)
