// Package config defines the format-agnostic run configuration for the
// application along with the Loader interface that format-specific adapters
// implement.
//
// `config.Model` is the single source of truth for the app package. The HCL
// implementation lives in the hcl_adapter package.
package config
