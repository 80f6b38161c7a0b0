package profile

import (
	"slices"
	"strings"
)

// OngoingToken marks a job that has not ended. Compared case-insensitively.
const OngoingToken = "Present"

// Profile represents the complete user profile document.
type Profile struct {
	PersonalInfo   PersonalInfo `json:"personal_info"`
	JobExperience  []JobEntry   `json:"job_experience"`
	Education      []Education  `json:"education"`
	Skills         []string     `json:"skills"`
	Certifications []string     `json:"certifications"`
	Interests      []string     `json:"interests"`
}

// PersonalInfo represents contact details.
type PersonalInfo struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
}

// JobEntry represents one employment record. Its 1-based position in
// Profile.JobExperience is the key used by job rankings.
type JobEntry struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Duties       []string `json:"duties"`
	Achievements []string `json:"achievements"`
}

// Education represents a degree or diploma.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Empty returns the skeleton profile used when nothing has been saved yet.
func Empty() (p Profile) {
	p = Profile{
		JobExperience:  []JobEntry{},
		Education:      []Education{},
		Skills:         []string{},
		Certifications: []string{},
		Interests:      []string{},
	}
	return p
}

// IsOngoing reports whether an end date is the ongoing token.
func IsOngoing(date string) (ongoing bool) {
	ongoing = strings.EqualFold(date, OngoingToken)
	return ongoing
}

// Equal compares two job entries by value.
func (j JobEntry) Equal(other JobEntry) (equal bool) {
	equal = j.ID == other.ID &&
		j.Title == other.Title &&
		j.Company == other.Company &&
		j.Position == other.Position &&
		j.StartDate == other.StartDate &&
		j.EndDate == other.EndDate &&
		slices.Equal(j.Duties, other.Duties) &&
		slices.Equal(j.Achievements, other.Achievements)
	return equal
}

// normalize replaces nil optional collections with empty ones so saved files
// always carry the full skeleton. Required fields are left alone.
func (p *Profile) normalize() {
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Certifications == nil {
		p.Certifications = []string{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	for i := range p.JobExperience {
		if p.JobExperience[i].Achievements == nil {
			p.JobExperience[i].Achievements = []string{}
		}
	}
}
