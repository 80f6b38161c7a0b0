package llm

import (
	"fmt"
	"strings"

	"github.com/nikogura/resume-builder/pkg/profile"
)

const styleRules = `IMPORTANT: Never use em dashes (—) and avoid contrast phrases like "not only...but also".`

const (
	summarySystem     = "You are an expert resume writer who creates compelling, ATS-optimized professional summaries."
	rankingSystem     = "You are an expert at analyzing job relevance for resume optimization. Return only valid JSON."
	dutiesSystem      = "You are an expert resume writer who creates impactful, ATS-optimized bullet points."
	skillsSystem      = "You are an expert at creating tailored, ATS-optimized skills sections for resumes."
	coverLetterSystem = "You are an expert at writing genuine, human-sounding cover letters that avoid clichés."
)

// Per-operation sampling settings.
var (
	summarySettings     = Request{System: summarySystem, Temperature: 0.7, MaxTokens: 300}                    //nolint:gochecknoglobals // fixed prompt settings
	rankingSettings     = Request{System: rankingSystem, Temperature: 0.3, MaxTokens: 100, Recoverable: true} //nolint:gochecknoglobals // fixed prompt settings
	dutiesSettings      = Request{System: dutiesSystem, Temperature: 0.7, MaxTokens: 400, Recoverable: true}  //nolint:gochecknoglobals // fixed prompt settings
	skillsSettings      = Request{System: skillsSystem, Temperature: 0.5, MaxTokens: 200, Recoverable: true}  //nolint:gochecknoglobals // fixed prompt settings
	coverLetterSettings = Request{System: coverLetterSystem, Temperature: 0.8, MaxTokens: 600}                //nolint:gochecknoglobals // fixed prompt settings
)

// summarizeExperience renders the first three jobs as one line each.
func summarizeExperience(jobs []profile.JobEntry) (summary string) {
	if len(jobs) == 0 {
		summary = "No work experience provided"
		return summary
	}

	lines := make([]string, 0, 3)
	for _, job := range firstN(jobs, 3) {
		lines = append(lines, fmt.Sprintf("- %s at %s (%s to %s)",
			orNA(job.Title), orNA(job.Company), orNA(job.StartDate), orNA(job.EndDate)))
	}

	summary = strings.Join(lines, "\n")
	return summary
}

func bulletList(items []string, empty string) (text string) {
	if len(items) == 0 {
		text = empty
		return text
	}

	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}

	text = strings.Join(lines, "\n")
	return text
}

func orNA(value string) (result string) {
	result = value
	if result == "" {
		result = "N/A"
	}
	return result
}

// buildSummaryPrompt creates the professional summary prompt.
func buildSummaryPrompt(info profile.PersonalInfo, jobs []profile.JobEntry, posting string, skills, interests []string) (prompt string) {
	skillsText := "various professional skills"
	if len(skills) > 0 {
		skillsText = strings.Join(skills, ", ")
	}

	prompt = fmt.Sprintf(`Write a professional summary for a resume. The candidate is applying to this role:

%s

Candidate: %s

Candidate's Background:
%s

Key Skills: %s

Additional Background/Interests:
%s

Write a 3-4 sentence professional summary that highlights relevant experience and skills for this role. If any interests or background align with the role, mention them naturally. Be specific and genuine. Avoid clichés and corporate jargon.

%s

Generate only the summary text.`, posting, orNA(info.Name), summarizeExperience(jobs), skillsText, bulletList(interests, "Not provided"), styleRules)

	return prompt
}

// buildRankingPrompt creates the job relevance ranking prompt. Jobs are
// numbered from 1 in profile order; the reply refers to those numbers.
func buildRankingPrompt(jobs []profile.JobEntry, posting string) (prompt string) {
	var sb strings.Builder
	for i, job := range jobs {
		duties := []rune(strings.Join(job.Duties, ", "))
		if len(duties) > 200 {
			duties = duties[:200]
		}

		fmt.Fprintf(&sb, "\nJob %d:\n", i+1)
		fmt.Fprintf(&sb, "- Title: %s\n", orNA(job.Title))
		fmt.Fprintf(&sb, "- Company: %s\n", orNA(job.Company))
		fmt.Fprintf(&sb, "- Position: %s\n", orNA(job.Position))
		fmt.Fprintf(&sb, "- Duration: %s to %s\n", orNA(job.StartDate), orNA(job.EndDate))
		fmt.Fprintf(&sb, "- Duties: %s...\n", string(duties))
	}

	prompt = fmt.Sprintf(`You are a resume optimization expert. Rank each job experience by relevance to THIS SPECIFIC job posting.

User's Job Experience:
%s

TARGET JOB DESCRIPTION:
%s

Consider:
1. Skills match between the job's responsibilities and the posting's requirements
2. Industry alignment
3. Similarity of title and level
4. Tools, technologies, and methods named in the posting
5. Which experiences best demonstrate what this employer is looking for

Instructions:
- Rank ALL jobs, 1 being the most relevant to this posting
- Return only a JSON array of job numbers in order of relevance, like: [2, 1, 4, 3, 5]
- Return ONLY the JSON array, no other text`, sb.String(), posting)

	return prompt
}

// buildDutiesPrompt creates the bullet rewrite prompt for one job. Duties and
// achievements are both offered as source material.
func buildDutiesPrompt(job profile.JobEntry, posting string, maxCount int) (prompt string) {
	points := make([]string, 0, len(job.Duties)+len(job.Achievements))
	points = append(points, job.Duties...)
	points = append(points, job.Achievements...)

	prompt = fmt.Sprintf(`Rewrite these job duties to be relevant for this job application:

Job: %s at %s

Current Duties:
%s

Target Job:
%s

Select the %d most relevant duties and rewrite them to:
- Be specific and quantifiable where possible
- Show real impact and results
- Use clear, direct language
- Match terminology from the job posting naturally

%s

Return only the bullet points, one per line, starting with "•".`, orNA(job.Title), orNA(job.Company), bulletList(points, ""), posting, maxCount, styleRules)

	return prompt
}

// buildSkillsPrompt creates the skills section prompt. Experience context is
// the first two duties of each of the first three jobs, five lines at most.
func buildSkillsPrompt(userSkills []string, jobs []profile.JobEntry, posting string, maxCount int) (prompt string) {
	experience := make([]string, 0, 6)
	for _, job := range firstN(jobs, 3) {
		experience = append(experience, firstN(job.Duties, 2)...)
	}

	prompt = fmt.Sprintf(`You are a resume optimization expert. Create a tailored skills section for this specific job posting.

User's Current Skills:
%s

User's Experience Context:
%s

TARGET JOB DESCRIPTION:
%s

Instructions:
1. Identify the technical skills, tools, soft skills, and terminology the posting asks for.
2. From the user's skills and experience, select the skills that match, including ones clearly implied by their experience.
3. Return exactly %d skills in order of relevance, using the posting's terminology where possible, 1-4 words each.

Format: return ONLY a comma-separated list of skills. No bullet points, numbering, or explanations.
Example: "Python, JavaScript, Team Leadership, API Development, Problem Solving"`,
		bulletList(userSkills, "Not provided"), bulletList(firstN(experience, 5), ""), posting, maxCount)

	return prompt
}

// buildCoverLetterPrompt creates the cover letter prompt.
func buildCoverLetterPrompt(info profile.PersonalInfo, jobs []profile.JobEntry, posting string, skills, interests []string) (prompt string) {
	skillsText := "various professional skills"
	if len(skills) > 0 {
		skillsText = strings.Join(firstN(skills, 5), ", ")
	}

	prompt = fmt.Sprintf(`Write a cover letter for this job application.

Candidate: %s
Experience: %s
Skills: %s

Background/Interests:
%s

Job Description:
%s

Write a genuine cover letter (3-4 paragraphs) that opens naturally, connects relevant experience to the role, mentions 2-3 specific accomplishments, and closes with interest in the position. Weave in interests or background where they align with the role.

Use first person. Be professional but conversational. Avoid clichés and formulaic openings.

%s

Generate only the letter body (no address, date, or subject line).`,
		orNA(info.Name), summarizeExperience(jobs), skillsText, bulletList(interests, "Not provided"), posting, styleRules)

	return prompt
}
