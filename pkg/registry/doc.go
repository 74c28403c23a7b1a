// Package registry implements deferred, load-order-independent registration
// of crate implementor tables. Fragments submit tables as they load; tables
// submitted before a sink is installed are buffered in order, then drained
// exactly once when Initialize runs. Tables submitted afterward go straight
// to the sink.
// See docs/ARCHITECTURE.md § Registry.
package registry
