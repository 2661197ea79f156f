package arguments

import "strings"

// Buffer accumulates tokens for one logical command.
//
// Every mutating method returns the receiver itself so calls can be chained;
// callers may rely on the identity of the returned pointer. A Buffer is not
// safe for concurrent mutation.
type Buffer struct {
	tokens []string
}

// NewBuffer constructs an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append trims token and appends it. An empty token is ignored; a whitespace-only token is appended
// as an empty argument.
func (buffer *Buffer) Append(token string) *Buffer {
	if len(token) == 0 {
		return buffer
	}
	buffer.tokens = append(buffer.tokens, strings.TrimSpace(token))
	return buffer
}

// AppendAll appends tokens verbatim, preserving order and any explicit empty tokens.
func (buffer *Buffer) AppendAll(tokens ...string) *Buffer {
	if len(tokens) == 0 {
		return buffer
	}
	buffer.tokens = append(buffer.tokens, tokens...)
	return buffer
}

// AppendLine tokenizes rawLine and appends the resulting tokens.
func (buffer *Buffer) AppendLine(rawLine string) *Buffer {
	if len(rawLine) == 0 {
		return buffer
	}
	return buffer.AppendAll(Tokenize(rawLine)...)
}

// AppendIf invokes predicate and appends tokens only when it reports true.
// A single token follows Append semantics; several tokens follow AppendAll.
func (buffer *Buffer) AppendIf(predicate func() bool, tokens ...string) *Buffer {
	if predicate == nil || !predicate() {
		return buffer
	}
	if len(tokens) == 1 {
		return buffer.Append(tokens[0])
	}
	return buffer.AppendAll(tokens...)
}

// Clear removes every token.
func (buffer *Buffer) Clear() *Buffer {
	buffer.tokens = nil
	return buffer
}

// Snapshot returns an independent copy of the current tokens.
func (buffer *Buffer) Snapshot() []string {
	snapshot := make([]string, len(buffer.tokens))
	copy(snapshot, buffer.tokens)
	return snapshot
}

// Len reports the number of buffered tokens.
func (buffer *Buffer) Len() int {
	return len(buffer.tokens)
}
