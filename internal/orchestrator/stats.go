package orchestrator

import "sync/atomic"

// Stats counts pipeline outcomes across the process lifetime. All counters
// are atomics; the watcher and the API read them concurrently.
type Stats struct {
	workbooks atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
	items     atomic.Int64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Workbooks int64 `json:"workbooks"`
	Succeeded int64 `json:"succeeded"`
	Failed    int64 `json:"failed"`
	Items     int64 `json:"items"`
}

func (s *Stats) recordSuccess(items int) {
	s.workbooks.Add(1)
	s.succeeded.Add(1)
	s.items.Add(int64(items))
}

func (s *Stats) recordFailure() {
	s.workbooks.Add(1)
	s.failed.Add(1)
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Workbooks: s.workbooks.Load(),
		Succeeded: s.succeeded.Load(),
		Failed:    s.failed.Load(),
		Items:     s.items.Load(),
	}
}
