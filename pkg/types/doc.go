// Package types defines the Implementor and CrateTable entity types, the
// Index interface, Config, and standard error types for the traitdex
// implementor index.
// See docs/ARCHITECTURE.md § Data Model.
package types
