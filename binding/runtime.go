package binding

import (
	"fmt"
	"sync"

	"github.com/petermattis/goid"
)

var runtimes sync.Map

// Stats counts the work a Runtime has done since it was created.
type Stats struct {
	Rewires       uint64
	Resolutions   uint64
	Notifications uint64
	Disposals     uint64
}

// Runtime carries the configuration and counters shared by every node of the
// chains built on it. A Runtime belongs to the goroutine that created it.
type Runtime struct {
	gid   int64
	cfg   Config
	stats Stats
}

// GetRuntime returns the runtime of the calling goroutine, creating it with
// DefaultConfig on first use. The runtime stays registered until the
// goroutine calls ReleaseRuntime; short-lived goroutines that build chains
// without WithRuntime must call it before they exit.
func GetRuntime() *Runtime {
	gid := goid.Get()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime(DefaultConfig())
	runtimes.Store(gid, r)
	return r
}

// ReleaseRuntime forgets the calling goroutine's runtime. Chains already
// built on it keep working.
func ReleaseRuntime() {
	runtimes.Delete(goid.Get())
}

// NewRuntime creates a runtime owned by the calling goroutine that is not
// registered for GetRuntime.
func NewRuntime(cfg Config) *Runtime {
	return &Runtime{
		gid: goid.Get(),
		cfg: cfg,
	}
}

func (r *Runtime) Config() Config {
	return r.cfg
}

func (r *Runtime) SetConfig(cfg Config) {
	r.checkGoroutine()
	r.cfg = cfg
}

func (r *Runtime) Stats() Stats {
	return r.stats
}

func (r *Runtime) checkGoroutine() {
	if !r.cfg.StrictGoroutine {
		return
	}
	if gid := goid.Get(); gid != r.gid {
		panic(fmt.Errorf("%w: owned by goroutine %d, called from %d", ErrForeignGoroutine, r.gid, gid))
	}
}

func (r *Runtime) tracef(format string, args ...any) {
	if r.cfg.Logger != nil {
		r.cfg.Logger.Printf(format, args...)
	}
}
