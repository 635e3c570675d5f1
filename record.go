package studio

import "time"

// Record is the persisted account of one generation run: the brief that
// started it and the last snapshot it produced.
type Record struct {
	Brief      Brief
	State      State
	StartedAt  time.Time
	FinishedAt time.Time
}
