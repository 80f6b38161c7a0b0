package selector

import (
	"strings"

	"github.com/nikogura/resume-builder/pkg/profile"
)

// YearOnly reduces a YYYY-MM date to YYYY. The ongoing token, empty values,
// and bare years pass through unchanged.
func YearOnly(date string) (year string) {
	year = date
	if date == "" || profile.IsOngoing(date) {
		return year
	}

	if idx := strings.Index(date, "-"); idx >= 0 {
		year = date[:idx]
	}
	return year
}

// NormalizeDates returns a copy of jobs with start and end dates reduced for
// display.
func NormalizeDates(jobs []profile.JobEntry) (normalized []profile.JobEntry) {
	normalized = make([]profile.JobEntry, len(jobs))
	for i, job := range jobs {
		job.StartDate = YearOnly(job.StartDate)
		job.EndDate = YearOnly(job.EndDate)
		normalized[i] = job
	}
	return normalized
}
