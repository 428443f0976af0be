// Package event provides a small synchronous publish/subscribe bus.
//
// Events are plain values that name their own topic through the
// TopicProvider interface. Topics are hierarchical dot-separated paths
// ("document.change"), and subscriptions may use wildcard patterns: "*"
// matches exactly one segment, "**" matches any number.
//
// Delivery is synchronous on the publisher's goroutine, in subscription
// order. A handler that panics propagates to the publisher. Subscribe,
// Cancel, and Publish are safe to call concurrently; handlers that
// mutate shared state must synchronize themselves.
package event
