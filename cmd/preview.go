package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/nikogura/resume-builder/pkg/profile"
	"github.com/nikogura/resume-builder/pkg/tailor"
)

const (
	previewJobs        = 3
	previewDuties      = 3
	previewSkills      = 10
	previewEducation   = 2
	previewLetterChars = 500
)

//nolint:gochecknoglobals // Formatting constants
var previewRule = strings.Repeat("=", 70)

// printPreview writes a condensed view of the tailored documents.
func printPreview(w io.Writer, prof profile.Profile, bundle tailor.Bundle) {
	fmt.Fprintf(w, "\n%s\nResume Preview\n", previewRule)

	fmt.Fprintf(w, "\n%s\n", prof.PersonalInfo.Name)
	fmt.Fprintf(w, "%s | %s\n", prof.PersonalInfo.Email, prof.PersonalInfo.Phone)

	fmt.Fprintln(w, "\nPROFESSIONAL SUMMARY")
	fmt.Fprintln(w, bundle.Summary)

	fmt.Fprintln(w, "\nPROFESSIONAL EXPERIENCE")
	for i, job := range bundle.Jobs {
		if i >= previewJobs {
			break
		}
		fmt.Fprintf(w, "\n%s | %s\n", job.Title, job.Company)
		fmt.Fprintf(w, "%s - %s\n", job.StartDate, job.EndDate)

		var duties []string
		if i < len(bundle.Duties) {
			duties = bundle.Duties[i]
		}
		for j, duty := range duties {
			if j >= previewDuties {
				fmt.Fprintf(w, "  ... and %d more\n", len(duties)-previewDuties)
				break
			}
			fmt.Fprintf(w, "  • %s\n", duty)
		}
	}
	if len(bundle.Jobs) > previewJobs {
		fmt.Fprintf(w, "\n... and %d more jobs\n", len(bundle.Jobs)-previewJobs)
	}

	if len(bundle.Skills) > 0 {
		fmt.Fprintln(w, "\nSKILLS")
		shown := bundle.Skills
		if len(shown) > previewSkills {
			shown = shown[:previewSkills]
		}
		fmt.Fprintln(w, strings.Join(shown, " • "))
		if len(bundle.Skills) > previewSkills {
			fmt.Fprintf(w, "... and %d more\n", len(bundle.Skills)-previewSkills)
		}
	}

	if len(prof.Education) > 0 {
		fmt.Fprintln(w, "\nEDUCATION")
		for i, edu := range prof.Education {
			if i >= previewEducation {
				break
			}
			fmt.Fprintf(w, "  %s - %s (%s)\n", orNA(edu.Degree), orNA(edu.Institution), orNA(edu.Year))
		}
	}

	fmt.Fprintf(w, "\n%s\nCover Letter Preview\n\n", previewRule)
	letter := []rune(bundle.CoverLetter)
	if len(letter) > previewLetterChars {
		letter = letter[:previewLetterChars]
	}
	fmt.Fprintf(w, "%s...\n", string(letter))
	fmt.Fprintln(w, previewRule)
}

func orNA(value string) (result string) {
	result = value
	if result == "" {
		result = "N/A"
	}
	return result
}
