package models

import "time"

// RefreshRun records the outcome of one scheduled or manually triggered
// refresh pass for a data kind.
type RefreshRun struct {
	Kind        string    `json:"kind" msgpack:"kind"`
	Trigger     string    `json:"trigger" msgpack:"trigger"` // "cron" or "manual"
	StartedAt   time.Time `json:"started_at" msgpack:"started_at"`
	CompletedAt time.Time `json:"completed_at" msgpack:"completed_at"`
	Symbols     int       `json:"symbols" msgpack:"symbols"`
	Succeeded   int       `json:"succeeded" msgpack:"succeeded"`
	Failed      int       `json:"failed" msgpack:"failed"`
	Errors      []string  `json:"errors,omitempty" msgpack:"errors"`
}

// Duration returns the wall-clock time the run took.
func (r *RefreshRun) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}

// RefreshStatus is the per-kind view exposed on the update/status endpoints.
type RefreshStatus struct {
	Kind     string      `json:"kind"`
	Schedule string      `json:"schedule,omitempty"`
	Running  bool        `json:"running"`
	LastRun  *RefreshRun `json:"last_run,omitempty"`
	NextRun  *time.Time  `json:"next_run,omitempty"`
}
