package types

import (
	"time"

	"battwatch/pkg/powerinfo"
)

// WatcherState is the loop-carried state of the watcher: the last
// observed status and the time of the last sent notification. The zero
// value is the correct initial state and guarantees the first real
// sample always triggers a notification (any status differs from the
// empty one, and the zero timestamp is far enough in the past).
type WatcherState struct {
	LastStatus   powerinfo.Status `json:"lastStatus,omitempty"`
	LastNotifyAt time.Time        `json:"lastNotifyAt"`
}

// Status is what the daemon's GET /status returns. Sample is nil until
// the first successful battery read.
type Status struct {
	Sample *powerinfo.Sample `json:"sample"`
	State  WatcherState      `json:"state"`
}
