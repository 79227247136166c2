// Package graphml reads and writes models in the yEd flavour of GraphML.
//
// Reading turns one file into one raw model.Graph: every visible node becomes
// a vertex, every edge an edge, labels are parsed by the annotation package
// and BLOCKED elements are dropped. Group/folder nodes and UML note nodes are
// not part of the model. Node ids are resolved within the file only.
//
// Writing emits a file yEd can open and this package can read back: each label
// carries a trailing INDEX line so element indices survive the round trip.
package graphml
