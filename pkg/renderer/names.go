package renderer

import (
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultOutputDir is where artifacts are written unless configured.
	DefaultOutputDir = "output"

	coverLetterSuffix = "_cover_letter"
	rawSuffix         = "_raw"
	docxExt           = ".docx"
	markdownExt       = ".md"
	textExt           = ".txt"
)

// Artifacts holds the paths of the files produced for one base name.
type Artifacts struct {
	Resume         string
	CoverLetter    string
	ResumeRaw      string
	CoverLetterRaw string
}

// NewArtifacts derives every artifact path from dir and base.
func NewArtifacts(dir, base string) (artifacts Artifacts) {
	artifacts = Artifacts{
		Resume:         filepath.Join(dir, base+docxExt),
		CoverLetter:    filepath.Join(dir, base+coverLetterSuffix+docxExt),
		ResumeRaw:      filepath.Join(dir, base+rawSuffix+textExt),
		CoverLetterRaw: filepath.Join(dir, base+coverLetterSuffix+rawSuffix+textExt),
	}
	return artifacts
}

// Paths lists the artifacts in a stable order.
func (a Artifacts) Paths() (paths []string) {
	paths = []string{a.Resume, a.CoverLetter, a.ResumeRaw, a.CoverLetterRaw}
	return paths
}

// DefaultBaseName returns the timestamp-derived base name for now.
func DefaultBaseName(now time.Time) (base string) {
	base = now.Format("resume_20060102_150405")
	return base
}

// SanitizeBaseName turns user input into a safe file base name. Accents are
// folded to plain letters, a trailing .docx is dropped, and anything other
// than letters, digits, '-', '_' and '.' becomes a hyphen. The result may be
// empty.
func SanitizeBaseName(name string) (sanitized string) {
	sanitized = strings.TrimSpace(name)
	if strings.HasSuffix(strings.ToLower(sanitized), docxExt) {
		sanitized = sanitized[:len(sanitized)-len(docxExt)]
	}

	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, sanitized)
	if err == nil {
		sanitized = folded
	}

	sanitized = strings.Map(func(r rune) (result rune) {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '.' {
			result = r
			return result
		}
		result = '-'
		return result
	}, sanitized)

	// Remove consecutive hyphens
	for strings.Contains(sanitized, "--") {
		sanitized = strings.ReplaceAll(sanitized, "--", "-")
	}

	sanitized = strings.Trim(sanitized, "-.")

	return sanitized
}
