package binding

import "errors"

// dispatcher serializes the work of a single node. Work arriving while the
// node is busy is queued and run, in arrival order, before the outermost call
// returns.
type dispatcher struct {
	busy    bool
	pending []func() error
}

func (d *dispatcher) run(fn func() error) error {
	d.pending = append(d.pending, fn)
	if d.busy {
		return nil
	}

	d.busy = true
	defer func() {
		d.busy = false
	}()

	var errs []error
	for len(d.pending) > 0 {
		next := d.pending[0]
		d.pending = d.pending[1:]
		if err := next(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// drop forgets queued work. The work in progress, if any, runs to completion.
func (d *dispatcher) drop() {
	d.pending = nil
}
