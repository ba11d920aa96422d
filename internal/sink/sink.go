// Package sink is the remote document write-sink the wizard reports to.
// Writes are keyed by visitor id, merge into the existing document, and are
// strictly best-effort: failures are logged by callers, never surfaced to
// the user, and never retried.
package sink

import "context"

// Document is an opaque partial update merged into the visitor's document.
type Document map[string]interface{}

// Sink accepts merge-style partial updates keyed by a visitor id. No read
// contract is consumed by the wizard core.
type Sink interface {
	Write(ctx context.Context, visitorID string, doc Document) error
}
