package optim

import "errors"

// ErrNoFeasiblePoint means every grid combination failed to run.
var ErrNoFeasiblePoint = errors.New("optim: no grid point produced a valid run")
