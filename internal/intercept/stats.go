package intercept

import "sync/atomic"

// counters track engine activity for the diagnostics surface.
type counters struct {
	observed   atomic.Uint64
	merged     atomic.Uint64
	replies    atomic.Uint64
	suppressed atomic.Uint64
}

// Stats is a point-in-time snapshot of engine activity.
type Stats struct {
	PacketsObserved   uint64 `json:"packets_observed"`
	BookmarksMerged   uint64 `json:"bookmarks_merged"`
	RepliesSent       uint64 `json:"replies_sent"`
	PacketsSuppressed uint64 `json:"packets_suppressed"`
}

// Stats returns a snapshot of the counters.
func (i *Interceptor) Stats() Stats {
	return Stats{
		PacketsObserved:   i.stats.observed.Load(),
		BookmarksMerged:   i.stats.merged.Load(),
		RepliesSent:       i.stats.replies.Load(),
		PacketsSuppressed: i.stats.suppressed.Load(),
	}
}
