package binding

import "log"

// Config carries the knobs shared by all chains of a Runtime.
// It is passed by value and treated as immutable once handed to a Runtime.
type Config struct {
	// StrictGoroutine makes every node operation panic with ErrForeignGoroutine
	// when called from a goroutine other than the runtime's owner.
	StrictGoroutine bool

	// MaxDepth limits the number of hops below a root. Zero means unlimited.
	MaxDepth int

	// Logger receives one line per rewire and disposal when set.
	Logger *log.Logger
}

func DefaultConfig() Config {
	return Config{}
}

type options struct {
	label   string
	runtime *Runtime
	strong  bool
	scope   *Scope
}

// Option configures a node created by Observe or Then.
type Option func(o *options)

// Named labels the node. Labels make up the node's Path.
func Named(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithRuntime builds a root on rt instead of the calling goroutine's runtime.
// Nodes created by Then always share their parent's runtime.
func WithRuntime(rt *Runtime) Option {
	return func(o *options) {
		o.runtime = rt
	}
}

// Strong makes the node hold its observed cell strongly. Use it when the
// resolver creates the observable it returns, as nothing else would keep it alive.
func Strong() Option {
	return func(o *options) {
		o.strong = true
	}
}

// InScope adds the node to s so that disposing s disposes the node.
func InScope(s *Scope) Option {
	return func(o *options) {
		o.scope = s
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
