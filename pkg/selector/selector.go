// Package selector chooses which jobs appear on a tailored resume.
//
// Selection is a pure function of the job history, the maximum number of
// jobs, and a ranking produced elsewhere. The ranking is untrusted: it is
// parsed, sanitized, and then merged with the rule that the most recently
// held job is always present and always first.
package selector

import (
	"math"
	"slices"
	"strings"

	"github.com/nikogura/resume-builder/pkg/profile"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Ranking is an ordered list of 1-based positions into a job history.
// Entries may be out of range or repeated; Apply ignores those.
type Ranking []int

// ParseRanking reads a JSON array of job positions. Anything other than an
// array is an error. Elements that are not whole numbers are kept as 0 so
// they hold their place but never match a job.
func ParseRanking(raw string) (ranking Ranking, err error) {
	raw = strings.TrimSpace(raw)
	if !gjson.Valid(raw) {
		err = errors.Errorf("ranking is not valid JSON: %q", raw)
		return ranking, err
	}

	result := gjson.Parse(raw)
	if !result.IsArray() {
		err = errors.Errorf("ranking is not a JSON array: %q", raw)
		return ranking, err
	}

	elements := result.Array()
	ranking = make(Ranking, 0, len(elements))
	for _, element := range elements {
		ranking = append(ranking, rankValue(element))
	}

	return ranking, err
}

func rankValue(element gjson.Result) (rank int) {
	if element.Type != gjson.Number {
		return rank
	}
	if element.Num != math.Trunc(element.Num) || math.Abs(element.Num) > math.MaxInt32 {
		return rank
	}
	rank = int(element.Num)
	return rank
}

// MostRecent returns the index of the most recently held job, or -1 for an
// empty history. An ongoing job wins immediately. Otherwise the greatest
// end date wins, with ties going to the earlier entry.
func MostRecent(jobs []profile.JobEntry) (index int) {
	index = -1
	for i, job := range jobs {
		if profile.IsOngoing(job.EndDate) {
			index = i
			return index
		}
		if index == -1 || job.EndDate > jobs[index].EndDate {
			index = i
		}
	}
	return index
}

// Apply merges a parsed ranking with the job history and returns at most
// maxCount jobs, most recent first, the rest in ranking order.
func Apply(jobs []profile.JobEntry, ranking Ranking, maxCount int) (selected []profile.JobEntry) {
	selected = make([]profile.JobEntry, 0, max(maxCount, 0))
	if len(jobs) == 0 || maxCount <= 0 {
		return selected
	}

	recentIndex := MostRecent(jobs)
	recent := jobs[recentIndex]

	head := ranking
	if len(head) > maxCount {
		head = head[:maxCount]
	}

	// Seed with the most recent job when the ranking would not surface it.
	if !slices.Contains(head, recentIndex+1) {
		selected = append(selected, recent)
	}

	for _, rank := range ranking {
		if len(selected) >= maxCount {
			break
		}
		if rank < 1 || rank > len(jobs) {
			continue
		}
		job := jobs[rank-1]
		if indexOf(selected, job) >= 0 {
			continue
		}
		selected = append(selected, job)
	}

	pos := indexOf(selected, recent)
	if pos > 0 {
		selected = slices.Delete(selected, pos, pos+1)
		selected = slices.Insert(selected, 0, recent)
	}

	if len(selected) > maxCount {
		selected = selected[:maxCount]
	}

	return selected
}

// Fallback returns the first maxCount jobs in their original order. It does
// not move the most recent job.
func Fallback(jobs []profile.JobEntry, maxCount int) (selected []profile.JobEntry) {
	n := min(max(maxCount, 0), len(jobs))
	selected = make([]profile.JobEntry, n)
	copy(selected, jobs[:n])
	return selected
}

// Select parses raw as a ranking and applies it. When raw cannot be parsed
// the fallback selection is returned together with the parse error.
func Select(jobs []profile.JobEntry, raw string, maxCount int) (selected []profile.JobEntry, err error) {
	var ranking Ranking
	ranking, err = ParseRanking(raw)
	if err != nil {
		selected = Fallback(jobs, maxCount)
		return selected, err
	}

	selected = Apply(jobs, ranking, maxCount)
	return selected, err
}

func indexOf(jobs []profile.JobEntry, target profile.JobEntry) (index int) {
	index = slices.IndexFunc(jobs, target.Equal)
	return index
}
