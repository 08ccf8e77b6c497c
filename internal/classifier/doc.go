// Package classifier calls the remotely hosted URL classification service.
//
// The service exposes a single predict endpoint: the client POSTs the raw
// URL as JSON and receives a binary prediction (0 = benign, 1 = malicious).
// Anything else is surfaced as an explicit error with a VerdictUnknown
// result; the client never guesses.
//
// Design decision: The locally computed feature vector is NOT sent to the
// service. The service consumes the raw URL alone and derives its own
// features; the local vector exists for explanation and display.
package classifier
