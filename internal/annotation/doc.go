// Package annotation parses the free-text labels authors put on GraphML nodes
// and edges into typed annotations.
//
// A label is line oriented. The first line carries the element's identity:
//
//	vertex:  <Label>
//	edge:    <Label> [<Parameter>] [\[<Guard>\]] [/<Actions>]
//
// Every later line is either a flag token or free text that is kept verbatim
// in the full label and otherwise ignored:
//
//	MERGE | NO_MERGE | BLOCKED | BACKTRACK | INDEX=<int> | weight=<float> | REQTAG=<tag>,<tag>
//
// Parsing is pure: no I/O, no logging, no shared state.
package annotation
