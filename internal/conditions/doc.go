// Package conditions holds the stop conditions a traversal engine polls to
// decide when a generated test run is complete.
//
// A condition is a read-only predicate over engine state. It never mutates
// the engine and may be polled any number of times; its answer only changes
// as the engine's state changes.
package conditions
