// Package tailor runs one tailoring pass of a profile against a job posting.
package tailor

import (
	"context"

	"github.com/nikogura/resume-builder/pkg/profile"
	"github.com/nikogura/resume-builder/pkg/selector"
	"github.com/pkg/errors"
)

const (
	// DefaultMaxJobs is the number of jobs kept on a tailored resume.
	DefaultMaxJobs = 3
	// DefaultMaxDuties is the number of bullets kept per job.
	DefaultMaxDuties = 5
	// DefaultMaxSkills is the number of skills kept.
	DefaultMaxSkills = 15
)

// Limits caps the size of each tailored section.
type Limits struct {
	MaxJobs   int
	MaxDuties int
	MaxSkills int
}

// DefaultLimits returns the standard section sizes.
func DefaultLimits() (limits Limits) {
	limits = Limits{
		MaxJobs:   DefaultMaxJobs,
		MaxDuties: DefaultMaxDuties,
		MaxSkills: DefaultMaxSkills,
	}
	return limits
}

// Bundle is the result of one tailoring run. Duties[i] belongs to Jobs[i].
type Bundle struct {
	Summary     string
	Jobs        []profile.JobEntry
	Duties      [][]string
	Skills      []string
	CoverLetter string
}

// Generator produces the tailored text. *llm.Client satisfies it.
type Generator interface {
	Summarize(ctx context.Context, info profile.PersonalInfo, jobs []profile.JobEntry, posting string, skills, interests []string) (summary string, err error)
	SelectJobs(ctx context.Context, jobs []profile.JobEntry, posting string, maxCount int) (selected []profile.JobEntry)
	TailorDuties(ctx context.Context, job profile.JobEntry, posting string, maxCount int) (duties []string)
	TailorSkills(ctx context.Context, userSkills []string, jobs []profile.JobEntry, posting string, maxCount int) (skills []string)
	WriteCoverLetter(ctx context.Context, info profile.PersonalInfo, jobs []profile.JobEntry, posting string, skills, interests []string) (letter string, err error)
}

// Progress receives a short description of each step as it starts.
type Progress func(step string)

// Run tailors p to posting. Summary and cover letter failures end the run;
// the other steps always produce something.
func Run(ctx context.Context, gen Generator, p profile.Profile, posting string, limits Limits, progress Progress) (bundle Bundle, err error) {
	if progress == nil {
		progress = func(string) {}
	}

	progress("Generating professional summary")
	bundle.Summary, err = gen.Summarize(ctx, p.PersonalInfo, p.JobExperience, posting, p.Skills, p.Interests)
	if err != nil {
		err = errors.Wrap(err, "failed to generate summary")
		return bundle, err
	}

	progress("Selecting relevant jobs")
	selected := gen.SelectJobs(ctx, p.JobExperience, posting, limits.MaxJobs)
	bundle.Jobs = selector.NormalizeDates(selected)

	bundle.Duties = make([][]string, len(bundle.Jobs))
	for i, job := range bundle.Jobs {
		progress("Tailoring duties for " + job.Title)
		bundle.Duties[i] = gen.TailorDuties(ctx, job, posting, limits.MaxDuties)
	}

	progress("Tailoring skills")
	bundle.Skills = gen.TailorSkills(ctx, p.Skills, p.JobExperience, posting, limits.MaxSkills)

	progress("Writing cover letter")
	bundle.CoverLetter, err = gen.WriteCoverLetter(ctx, p.PersonalInfo, p.JobExperience, posting, bundle.Skills, p.Interests)
	if err != nil {
		err = errors.Wrap(err, "failed to generate cover letter")
		return bundle, err
	}

	return bundle, err
}
