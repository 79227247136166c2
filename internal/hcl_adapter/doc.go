// Package hcl_adapter implements config.Loader for HCL run files.
//
// A run file has at most one `model`, `output` and `coverage` block and any
// number of labeled `stop_condition` blocks, which nest. Several top-level
// stop conditions are combined with a logical AND.
package hcl_adapter
