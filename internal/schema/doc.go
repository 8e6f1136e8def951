// Package schema defines the shapes exchanged with API clients: the create
// payloads they send, the read shapes they receive, and the validation rules
// applied before anything reaches the store.
package schema
