package codeql

// Result is the outcome of a name lookup: either a resolved record or a
// human-readable not-found message. A missing symbol is data, not an error;
// the message is meant to be forwarded verbatim to the tool-calling layer.
// I/O failures are reported separately as *AccessError.
type Result[T any] struct {
	record  *T
	message string
}

// Found wraps a resolved record.
func Found[T any](record T) Result[T] {
	return Result[T]{record: &record}
}

// NotFound wraps a descriptive miss message.
func NotFound[T any](message string) Result[T] {
	return Result[T]{message: message}
}

// Found reports whether the lookup resolved a record.
func (r Result[T]) Found() bool { return r.record != nil }

// Record returns the resolved record, or nil on a miss.
func (r Result[T]) Record() *T { return r.record }

// Message returns the not-found message, empty when a record was resolved.
func (r Result[T]) Message() string { return r.message }
