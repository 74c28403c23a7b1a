// Package traitdex carries module-level metadata shared by the CLI and
// library consumers.
package traitdex

// Version is the traitdex release version.
const Version = "0.1.0"
