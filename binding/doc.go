// Package binding keeps actions wired to the end of a chain of nullable
// observable references ("a's b, b's c, c's d") while any link of the chain
// becomes absent, is replaced or is reclaimed.
//
// A chain starts with Observe and grows with Then. Every node observes one
// cell, holds it only weakly and rebuilds everything below it when the value
// it resolves from changes. Strategies from the strategy package are attached
// at any node with MirrorTo, SyncWith, Consume, Substitute or Attach.
//
// All work is done synchronously on the goroutine that changes a cell. Chains
// are not safe for concurrent use.
//
// Chains built without WithRuntime use the calling goroutine's Runtime, which
// is kept in a package-level registry keyed by goroutine id. Goroutines that
// exit after building chains should call ReleaseRuntime, or share one Runtime
// through WithRuntime, so the registry does not grow without bound.
package binding
