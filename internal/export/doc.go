// Package export renders a merged model for consumers outside the process:
// a YAML summary for humans and CI logs, and a JSON document validated
// against an embedded schema for traversal engines.
package export
