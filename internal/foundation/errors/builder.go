package errors

// ErrorBuilder provides a fluent API for creating ClassifiedError instances.
type ErrorBuilder struct {
	category ErrorCategory
	severity ErrorSeverity
	retry    RetryStrategy
	message  string
	cause    error
	context  ErrorContext
}

// NewError creates a new ErrorBuilder with the specified category and message.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{
		category: category,
		severity: SeverityError,
		retry:    RetryNever,
		message:  message,
		context:  make(ErrorContext),
	}
}

// WrapError creates a new ErrorBuilder that wraps an existing error.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	return NewError(category, message).WithCause(err)
}

// WithSeverity sets the error severity.
func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.severity = severity
	return b
}

// WithRetry sets the retry strategy.
func (b *ErrorBuilder) WithRetry(strategy RetryStrategy) *ErrorBuilder {
	b.retry = strategy
	return b
}

// WithCause sets the underlying error.
func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.cause = err
	return b
}

// WithContext adds a context key-value pair.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.context = b.context.Set(key, value)
	return b
}

// Fatal sets the severity to fatal.
func (b *ErrorBuilder) Fatal() *ErrorBuilder {
	return b.WithSeverity(SeverityFatal)
}

// Retryable sets the retry strategy to backoff.
func (b *ErrorBuilder) Retryable() *ErrorBuilder {
	return b.WithRetry(RetryBackoff)
}

// UserAction sets the retry strategy to require user action.
func (b *ErrorBuilder) UserAction() *ErrorBuilder {
	return b.WithRetry(RetryUserAction)
}

// Build creates the final ClassifiedError.
func (b *ErrorBuilder) Build() *ClassifiedError {
	return &ClassifiedError{
		category: b.category,
		severity: b.severity,
		retry:    b.retry,
		message:  b.message,
		cause:    b.cause,
		context:  b.context,
	}
}

// Convenience constructors for common error patterns

// ConfigError creates a configuration error.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal().UserAction()
}

// ValidationError creates a validation error.
func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message).Fatal().UserAction()
}

// AssetError creates an asset read error. A missing or unreadable asset is a
// fatal build input error and is never retried.
func AssetError(message string) *ErrorBuilder {
	return NewError(CategoryAsset, message).Fatal()
}

// BuildError creates a build processing error.
func BuildError(message string) *ErrorBuilder {
	return NewError(CategoryBuild, message).Fatal()
}

// FileSystemError creates a retryable filesystem error.
func FileSystemError(message string) *ErrorBuilder {
	return NewError(CategoryFileSystem, message).Retryable()
}

// RuntimeError creates a runtime error.
func RuntimeError(message string) *ErrorBuilder {
	return NewError(CategoryRuntime, message).Fatal()
}

// InternalError creates an internal error.
func InternalError(message string) *ErrorBuilder {
	return NewError(CategoryInternal, message).Fatal()
}
