// Package domain defines the core domain types and interfaces.
//
// This package contains concept-oriented files (poll.go, response.go, sentiment.go, results.go, errors.go)
// with shared types and the storage ports. Only small value helpers, no I/O.
// Keeps interfaces on the consumer side so adapters never import each other.
package domain
