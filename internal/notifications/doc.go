// Package notifications pushes shift and audit events to an ntfy topic.
//
// When no topic is configured the constructor returns a noop implementation,
// so callers can notify unconditionally without nil checks. Per-event config
// toggles are honoured inside the service.
package notifications
