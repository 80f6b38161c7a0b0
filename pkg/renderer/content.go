package renderer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/nikogura/resume-builder/pkg/profile"
)

// ResumeContent is everything that appears on a rendered resume. Duties[i]
// belongs to Jobs[i].
type ResumeContent struct {
	PersonalInfo   profile.PersonalInfo
	Summary        string
	Jobs           []profile.JobEntry
	Duties         [][]string
	Education      []profile.Education
	Skills         []string
	Certifications []string
}

// CoverLetterContent is everything that appears on a rendered cover letter.
type CoverLetterContent struct {
	PersonalInfo profile.PersonalInfo
	Body         string
	Date         time.Time
}

// CoverLetterDateFormat is the layout of the date line on a cover letter.
const CoverLetterDateFormat = "January 2, 2006"

//nolint:gochecknoglobals // static replacer
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"|", `\|`,
)

// Line-leading list markers that pandoc would turn into nested lists.
var (
	orderedMarker = regexp.MustCompile(`(?m)^([ \t]*)(\d+)([.)])([ \t]|$)`) //nolint:gochecknoglobals // compiled once
	bulletMarker  = regexp.MustCompile(`(?m)^([ \t]*)([-+])([ \t]|$)`)      //nolint:gochecknoglobals // compiled once
)

func escape(text string) (escaped string) {
	escaped = markdownEscaper.Replace(text)
	escaped = orderedMarker.ReplaceAllString(escaped, `${1}${2}\${3}${4}`)
	escaped = bulletMarker.ReplaceAllString(escaped, `${1}\${2}${3}`)
	return escaped
}

func joinNonEmpty(sep string, parts ...string) (joined string) {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	joined = strings.Join(kept, sep)
	return joined
}

func orNA(value string) (result string) {
	result = value
	if result == "" {
		result = "N/A"
	}
	return result
}

func (c ResumeContent) duties(i int) (duties []string) {
	if i < len(c.Duties) {
		duties = c.Duties[i]
		return duties
	}
	duties = c.Jobs[i].Duties
	return duties
}

func educationLine(edu profile.Education) (line string) {
	line = fmt.Sprintf("%s - %s", orNA(edu.Degree), orNA(edu.Institution))
	if edu.Year != "" {
		line += fmt.Sprintf(" (%s)", edu.Year)
	}
	return line
}

// ResumeMarkdown builds the styled resume source. Empty sections are left out.
func ResumeMarkdown(c ResumeContent) (md string) {
	var sb strings.Builder
	info := c.PersonalInfo

	fmt.Fprintf(&sb, "# %s\n\n", escape(info.Name))
	if contact := joinNonEmpty(" | ", info.Email, info.Phone); contact != "" {
		fmt.Fprintf(&sb, "%s\n\n", escape(contact))
	}
	if links := joinNonEmpty(" | ", info.LinkedIn, info.Portfolio); links != "" {
		fmt.Fprintf(&sb, "%s\n\n", escape(links))
	}

	if c.Summary != "" {
		sb.WriteString("## Professional Summary\n\n")
		fmt.Fprintf(&sb, "%s\n\n", escape(c.Summary))
	}

	if len(c.Jobs) > 0 {
		sb.WriteString("## Professional Experience\n\n")
		for i, job := range c.Jobs {
			fmt.Fprintf(&sb, "### %s | %s\n\n", escape(orNA(job.Title)), escape(orNA(job.Company)))
			fmt.Fprintf(&sb, "*%s - %s*\n\n", escape(orNA(job.StartDate)), escape(orNA(job.EndDate)))
			duties := c.duties(i)
			for _, duty := range duties {
				fmt.Fprintf(&sb, "- %s\n", escape(duty))
			}
			if len(duties) > 0 {
				sb.WriteString("\n")
			}
		}
	}

	if len(c.Education) > 0 {
		sb.WriteString("## Education\n\n")
		for _, edu := range c.Education {
			fmt.Fprintf(&sb, "**%s**\n\n", escape(educationLine(edu)))
		}
	}

	if len(c.Skills) > 0 {
		sb.WriteString("## Skills\n\n")
		fmt.Fprintf(&sb, "%s\n\n", escape(strings.Join(c.Skills, " • ")))
	}

	if len(c.Certifications) > 0 {
		sb.WriteString("## Certifications\n\n")
		for _, cert := range c.Certifications {
			fmt.Fprintf(&sb, "- %s\n", escape(cert))
		}
		sb.WriteString("\n")
	}

	md = sb.String()
	return md
}

// ResumeText builds the plain-text resume.
func ResumeText(c ResumeContent) (text string) {
	var sb strings.Builder
	info := c.PersonalInfo

	fmt.Fprintf(&sb, "%s\n", info.Name)
	fmt.Fprintf(&sb, "%s | %s\n", info.Email, info.Phone)
	fmt.Fprintf(&sb, "\nPROFESSIONAL SUMMARY\n%s\n", c.Summary)
	sb.WriteString("\nPROFESSIONAL EXPERIENCE\n")

	for i, job := range c.Jobs {
		fmt.Fprintf(&sb, "\n%s | %s\n", orNA(job.Title), orNA(job.Company))
		fmt.Fprintf(&sb, "%s - %s\n", orNA(job.StartDate), orNA(job.EndDate))
		for _, duty := range c.duties(i) {
			fmt.Fprintf(&sb, "• %s\n", duty)
		}
	}

	if len(c.Education) > 0 {
		sb.WriteString("\nEDUCATION\n")
		for _, edu := range c.Education {
			fmt.Fprintf(&sb, "%s - %s (%s)\n", orNA(edu.Degree), orNA(edu.Institution), orNA(edu.Year))
		}
	}

	if len(c.Skills) > 0 {
		fmt.Fprintf(&sb, "\nSKILLS\n%s\n", strings.Join(c.Skills, " • "))
	}

	text = sb.String()
	return text
}

// Paragraphs splits a letter body on blank lines, dropping empty paragraphs.
func Paragraphs(body string) (paragraphs []string) {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	for _, para := range strings.Split(body, "\n\n") {
		para = strings.TrimSpace(para)
		if para != "" {
			paragraphs = append(paragraphs, para)
		}
	}
	return paragraphs
}

// CoverLetterMarkdown builds the styled cover letter source.
func CoverLetterMarkdown(c CoverLetterContent) (md string) {
	var sb strings.Builder
	info := c.PersonalInfo

	fmt.Fprintf(&sb, "**%s**\n\n", escape(info.Name))
	if contact := joinNonEmpty(" | ", info.Email, info.Phone); contact != "" {
		fmt.Fprintf(&sb, "%s\n\n", escape(contact))
	}
	fmt.Fprintf(&sb, "%s\n\n", c.Date.Format(CoverLetterDateFormat))

	for _, para := range Paragraphs(c.Body) {
		fmt.Fprintf(&sb, "%s\n\n", escape(para))
	}

	sb.WriteString("Best regards,\n\n")
	fmt.Fprintf(&sb, "%s\n", escape(info.Name))

	md = sb.String()
	return md
}

// CoverLetterText is the plain-text cover letter: the body as generated.
func CoverLetterText(c CoverLetterContent) (text string) {
	text = c.Body
	return text
}
