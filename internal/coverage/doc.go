// Package coverage tracks which requirement tags a running test has covered.
//
// The Tracker is the in-process record; it satisfies
// conditions.RequirementSource so stop conditions can poll it directly.
// SocketFeed feeds a Tracker from a socket.io endpoint that publishes
// requirement tags as the system under test reports them.
package coverage
