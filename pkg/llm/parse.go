package llm

import (
	"strings"

	"github.com/pkg/errors"
)

// stripMarkdownCodeFences removes a surrounding markdown code fence, with or
// without a language tag.
func stripMarkdownCodeFences(text string) (cleaned string) {
	cleaned = strings.TrimSpace(text)

	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}

	// Drop the opening fence line, language tag included.
	newline := strings.IndexByte(cleaned, '\n')
	if newline < 0 {
		cleaned = strings.Trim(cleaned, "`")
		cleaned = strings.TrimSpace(cleaned)
		return cleaned
	}
	cleaned = cleaned[newline+1:]

	cleaned = strings.TrimRight(cleaned, " \r\n")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimRight(cleaned, " \r\n")

	return cleaned
}

// parseBullets keeps lines that start with "•" or "-" and strips the marker.
// A reply with no bullet lines is an error.
func parseBullets(text string) (bullets []string, err error) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "•") && !strings.HasPrefix(line, "-") {
			continue
		}

		line = strings.TrimLeft(line, "•-")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		bullets = append(bullets, line)
	}

	if len(bullets) == 0 {
		err = errors.Errorf("no bullet lines in reply: %q", text)
		return bullets, err
	}

	return bullets, err
}

// parseSkills splits a comma-separated reply. An empty list is an error.
func parseSkills(text string) (skills []string, err error) {
	for _, skill := range strings.Split(text, ",") {
		skill = strings.TrimSpace(skill)
		skill = strings.Trim(skill, `"`)
		if skill == "" {
			continue
		}
		skills = append(skills, skill)
	}

	if len(skills) == 0 {
		err = errors.Errorf("no skills in reply: %q", text)
		return skills, err
	}

	return skills, err
}

// firstN returns a copy of at most n leading items.
func firstN[T any](items []T, n int) (head []T) {
	n = min(max(n, 0), len(items))
	head = make([]T, n)
	copy(head, items[:n])
	return head
}
