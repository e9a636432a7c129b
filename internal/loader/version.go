package loader

import (
	"time"

	"github.com/aretw0/intentgraph/pkg/domain"
)

// VersionStats summarizes versioning and expiry metadata across a corpus.
type VersionStats struct {
	WithVersion int `json:"with_version"`
	WithExpire  int `json:"with_expire"`
	Active      int `json:"active"`
	Expired     int `json:"expired"`
}

// expireTime interprets the mixed expire_at representations found in
// exports: RFC 3339 timestamps, naive ISO timestamps, plain dates, and
// unix seconds. Unparseable values come back false and the record counts
// as active.
func expireTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if dt, err := time.Parse(layout, t); err == nil {
				return dt, true
			}
		}
	case float64:
		return time.Unix(int64(t), 0), true
	case int:
		return time.Unix(int64(t), 0), true
	case int64:
		return time.Unix(t, 0), true
	}
	return time.Time{}, false
}

// isExpired reports whether an expire_at value lies strictly in the past.
func isExpired(v any, now time.Time) bool {
	if domain.IsMissing(v) {
		return false
	}
	dt, ok := expireTime(v)
	return ok && dt.Before(now)
}

// filterExpired drops intents whose expiry has passed.
func filterExpired(intents []domain.Intent, now time.Time) ([]domain.Intent, int) {
	active := intents[:0]
	expired := 0
	for _, intent := range intents {
		if isExpired(intent.ExpireAt, now) {
			expired++
			continue
		}
		active = append(active, intent)
	}
	return active, expired
}

// versionStatistics counts version and expiry coverage over the raw
// records.
func versionStatistics(intents []domain.Intent, now time.Time) VersionStats {
	var stats VersionStats
	for _, intent := range intents {
		if intent.Raw == nil {
			stats.Active++
			continue
		}
		if _, ok := intent.Raw["version"]; ok {
			stats.WithVersion++
		}
		v, ok := intent.Raw["expire_at"]
		if !ok {
			stats.Active++
			continue
		}
		stats.WithExpire++
		if isExpired(v, now) {
			stats.Expired++
		} else {
			stats.Active++
		}
	}
	return stats
}
