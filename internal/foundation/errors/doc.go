// Package errors provides foundational, type-safe error primitives used across rawassets.
//
// This package contains classified error types and helpers for robust error handling,
// including a fluent builder API for constructing ClassifiedError values with context.
//
// Key features:
//   - ErrorCategory: Broad error classification (config, asset, build, etc.)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - RetryStrategy: Retry behavior (never, backoff, user action)
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLI adapter for error presentation and exit codes
//
// Example usage:
//
//	err := errors.AssetError("read asset").
//		WithContext("module_id", id).
//		WithCause(readErr).
//		Build()
package errors
