package llm

import (
	"context"
	"io"
	"strings"

	"github.com/nikogura/resume-builder/pkg/profile"
	"github.com/nikogura/resume-builder/pkg/selector"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Operation names used in GenerationFailure and warning logs.
const (
	OpSummary     = "summary"
	OpRanking     = "ranking"
	OpDuties      = "duties"
	OpSkills      = "skills"
	OpCoverLetter = "cover letter"
)

// Client exposes the tailoring operations over a Backend.
//
// Summarize and WriteCoverLetter return a GenerationFailure when the backend
// fails. SelectJobs, TailorDuties and TailorSkills never fail: they log a
// warning and fall back to the profile's own data.
type Client struct {
	backend Backend
	log     logrus.FieldLogger
}

// NewClient creates a client. A nil logger discards warnings.
func NewClient(backend Backend, log logrus.FieldLogger) (client *Client) {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	client = &Client{
		backend: backend,
		log:     log,
	}
	return client
}

// Summarize writes a short professional summary for the posting.
func (c *Client) Summarize(ctx context.Context, info profile.PersonalInfo, jobs []profile.JobEntry, posting string, skills, interests []string) (summary string, err error) {
	req := summarySettings
	req.Prompt = buildSummaryPrompt(info, jobs, posting, skills, interests)

	summary, err = c.complete(ctx, OpSummary, req)
	return summary, err
}

// SelectJobs asks the backend to rank jobs against the posting and applies
// the ranking. Backend failures select the first maxCount jobs in profile
// order.
func (c *Client) SelectJobs(ctx context.Context, jobs []profile.JobEntry, posting string, maxCount int) (selected []profile.JobEntry) {
	if len(jobs) == 0 {
		selected = []profile.JobEntry{}
		return selected
	}

	req := rankingSettings
	req.Prompt = buildRankingPrompt(jobs, posting)

	raw, err := c.complete(ctx, OpRanking, req)
	if err != nil {
		c.warn(OpRanking, err, "Could not rank jobs; using profile order")
		selected = selector.Fallback(jobs, maxCount)
		return selected
	}

	selected, err = selector.Select(jobs, stripMarkdownCodeFences(raw), maxCount)
	if err != nil {
		c.warn(OpRanking, &GenerationFailure{Operation: OpRanking, Err: err}, "Could not parse job ranking; using profile order")
	}

	return selected
}

// TailorDuties rewrites a job's duties and achievements into at most
// maxCount bullets. Failures return the original duties truncated.
func (c *Client) TailorDuties(ctx context.Context, job profile.JobEntry, posting string, maxCount int) (duties []string) {
	if len(job.Duties) == 0 {
		duties = []string{}
		return duties
	}

	req := dutiesSettings
	req.Prompt = buildDutiesPrompt(job, posting, maxCount)

	raw, err := c.complete(ctx, OpDuties, req)
	if err == nil {
		var bullets []string
		bullets, err = parseBullets(raw)
		if err == nil {
			duties = firstN(bullets, maxCount)
			return duties
		}
		err = &GenerationFailure{Operation: OpDuties, Err: err}
	}

	c.warn(OpDuties, err, "Could not tailor duties; using original duties")
	duties = firstN(job.Duties, maxCount)
	return duties
}

// TailorSkills picks at most maxCount skills for the posting. Failures
// return the user's skills truncated.
func (c *Client) TailorSkills(ctx context.Context, userSkills []string, jobs []profile.JobEntry, posting string, maxCount int) (skills []string) {
	req := skillsSettings
	req.Prompt = buildSkillsPrompt(userSkills, jobs, posting, maxCount)

	raw, err := c.complete(ctx, OpSkills, req)
	if err == nil {
		var parsed []string
		parsed, err = parseSkills(stripMarkdownCodeFences(raw))
		if err == nil {
			skills = firstN(parsed, maxCount)
			return skills
		}
		err = &GenerationFailure{Operation: OpSkills, Err: err}
	}

	c.warn(OpSkills, err, "Could not tailor skills; using original skills")
	skills = firstN(userSkills, maxCount)
	return skills
}

// WriteCoverLetter writes the body of a cover letter for the posting.
func (c *Client) WriteCoverLetter(ctx context.Context, info profile.PersonalInfo, jobs []profile.JobEntry, posting string, skills, interests []string) (letter string, err error) {
	req := coverLetterSettings
	req.Prompt = buildCoverLetterPrompt(info, jobs, posting, skills, interests)

	letter, err = c.complete(ctx, OpCoverLetter, req)
	return letter, err
}

// complete calls the backend and trims the reply. Errors and empty replies
// come back as GenerationFailure.
func (c *Client) complete(ctx context.Context, op string, req Request) (text string, err error) {
	c.log.WithField("operation", op).Debug("Sending generation request")

	text, err = c.backend.Complete(ctx, req)
	if err != nil {
		err = &GenerationFailure{Operation: op, Err: err}
		return text, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		err = &GenerationFailure{Operation: op, Err: errors.New("empty reply")}
		return text, err
	}

	return text, err
}

func (c *Client) warn(op string, err error, msg string) {
	c.log.WithFields(logrus.Fields{
		"operation": op,
		"error":     err.Error(),
	}).Warn(msg)
}
