package quality

import (
	"sort"
	"time"

	"github.com/aretw0/intentgraph/pkg/domain"
)

// Version timestamps come from a .NET exporter and are expressed in ticks:
// 100ns intervals since 0001-01-01.
const (
	ticksToUnixEpoch = 621355968000000000
	ticksPerSecond   = 10000000

	// maxUnixSeconds caps conversion at year 9999.
	maxUnixSeconds = 253402300799
)

// TicksToTime converts a .NET tick timestamp to a wall clock time. The zero
// time and false come back for zero, negative, or out-of-range inputs.
func TicksToTime(ticks int64) (time.Time, bool) {
	if ticks <= 0 {
		return time.Time{}, false
	}
	unixSeconds := (ticks - ticksToUnixEpoch) / ticksPerSecond
	if unixSeconds < 0 || unixSeconds > maxUnixSeconds {
		return time.Time{}, false
	}
	return time.Unix(unixSeconds, 0).UTC(), true
}

// Freshness buckets the corpus's recent update activity.
type Freshness string

const (
	FreshnessVeryFresh Freshness = "very_fresh"
	FreshnessFresh     Freshness = "fresh"
	FreshnessModerate  Freshness = "moderate"
	FreshnessStale     Freshness = "stale"
	FreshnessVeryStale Freshness = "very_stale"
)

// FreshnessReport describes how actively the corpus is being edited.
type FreshnessReport struct {
	HasVersionData bool `json:"has_version_data"`
	SkippedInvalid int  `json:"skipped_invalid,omitempty"`

	OldestDate       time.Time `json:"oldest_date,omitzero"`
	NewestDate       time.Time `json:"newest_date,omitzero"`
	DateRangeDays    int       `json:"date_range_days"`
	TotalVersioned   int       `json:"total_versioned"`
	UpdatedLastDay   int       `json:"updated_last_day"`
	UpdatedLastWeek  int       `json:"updated_last_week"`
	UpdatedLastMonth int       `json:"updated_last_month"`
	LastMonthPct     float64   `json:"last_month_percentage"`
	ActivityScore    int       `json:"activity_score"`
	Freshness        Freshness `json:"freshness,omitempty"`
}

// AnalyzeFreshness reads every intent's version timestamp and scores update
// activity against the reference date. A zero reference means now.
func AnalyzeFreshness(intents []domain.Intent, reference time.Time) FreshnessReport {
	if reference.IsZero() {
		reference = time.Now().UTC()
	}

	var report FreshnessReport
	var dates []time.Time
	for _, intent := range intents {
		if intent.Version <= 0 {
			continue
		}
		dt, ok := TicksToTime(intent.Version)
		if !ok {
			report.SkippedInvalid++
			continue
		}
		dates = append(dates, dt)
	}

	if len(dates) == 0 {
		return report
	}
	report.HasVersionData = true

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	report.OldestDate = dates[0]
	report.NewestDate = dates[len(dates)-1]
	report.DateRangeDays = int(report.NewestDate.Sub(report.OldestDate).Hours() / 24)
	report.TotalVersioned = len(dates)

	for _, dt := range dates {
		age := reference.Sub(dt)
		if age <= 24*time.Hour {
			report.UpdatedLastDay++
		}
		if age <= 7*24*time.Hour {
			report.UpdatedLastWeek++
		}
		if age <= 30*24*time.Hour {
			report.UpdatedLastMonth++
		}
	}

	recentRatio := float64(report.UpdatedLastMonth) / float64(report.TotalVersioned)
	report.LastMonthPct = round1(recentRatio * 100)
	report.ActivityScore = min(100, int(recentRatio*100))

	switch {
	case report.ActivityScore >= 80:
		report.Freshness = FreshnessVeryFresh
	case report.ActivityScore >= 60:
		report.Freshness = FreshnessFresh
	case report.ActivityScore >= 40:
		report.Freshness = FreshnessModerate
	case report.ActivityScore >= 20:
		report.Freshness = FreshnessStale
	default:
		report.Freshness = FreshnessVeryStale
	}
	return report
}

// UpdateDistribution groups version timestamps by calendar day.
type UpdateDistribution struct {
	ByDay      map[string]int `json:"updates_by_day"`
	PeakDay    string         `json:"peak_day,omitempty"`
	PeakCount  int            `json:"peak_count,omitempty"`
	UniqueDays int            `json:"unique_days"`
}

// AnalyzeUpdateDistribution buckets edits per day to surface bursts of
// editing activity.
func AnalyzeUpdateDistribution(intents []domain.Intent) UpdateDistribution {
	dist := UpdateDistribution{ByDay: make(map[string]int)}
	for _, intent := range intents {
		if intent.Version <= 0 {
			continue
		}
		if dt, ok := TicksToTime(intent.Version); ok {
			dist.ByDay[dt.Format("2006-01-02")]++
		}
	}
	dist.UniqueDays = len(dist.ByDay)

	days := make([]string, 0, len(dist.ByDay))
	for day := range dist.ByDay {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		if n := dist.ByDay[day]; n > dist.PeakCount {
			dist.PeakDay, dist.PeakCount = day, n
		}
	}
	return dist
}
