package collect

import (
	"fmt"
	"io"
	"strings"

	"github.com/nikogura/resume-builder/pkg/profile"
)

// PersonalInfo asks for contact details.
func (p *Prompter) PersonalInfo() (info profile.PersonalInfo, err error) {
	fmt.Fprintln(p.out, "== Personal Information ==")

	fields := []struct {
		label string
		dest  *string
	}{
		{"Full Name", &info.Name},
		{"Email", &info.Email},
		{"Phone Number", &info.Phone},
		{"Location (City, State)", &info.Location},
		{"LinkedIn URL (optional)", &info.LinkedIn},
		{"Portfolio/Website URL (optional)", &info.Portfolio},
	}

	for _, f := range fields {
		*f.dest, err = p.Ask(f.label, "")
		if err != nil {
			return info, err
		}
	}

	return info, err
}

// Job asks for one employment record.
func (p *Prompter) Job(id int) (job profile.JobEntry, err error) {
	fmt.Fprintf(p.out, "\nJob #%d\n", id)

	job.ID = id
	fields := []struct {
		label string
		dest  *string
	}{
		{"Job Title", &job.Title},
		{"Company Name", &job.Company},
		{"Position/Role", &job.Position},
		{"Start Date (YYYY-MM)", &job.StartDate},
		{"End Date (YYYY-MM or 'Present')", &job.EndDate},
	}

	for _, f := range fields {
		*f.dest, err = p.Ask(f.label, "")
		if err != nil {
			return job, err
		}
	}

	fmt.Fprintln(p.out, "\nEnter job duties (one per line, empty line to finish):")
	job.Duties, err = p.List("Duty")
	if err != nil {
		return job, err
	}

	fmt.Fprintln(p.out, "\nEnter achievements (optional, empty line to finish):")
	job.Achievements, err = p.List("Achievement")
	if err != nil {
		return job, err
	}

	return job, err
}

// Jobs asks for employment records until the user stops. IDs are assigned
// in order starting at 1.
func (p *Prompter) Jobs() (jobs []profile.JobEntry, err error) {
	fmt.Fprintln(p.out, "\n== Job Experience ==")

	jobs = []profile.JobEntry{}
	for id := 1; ; id++ {
		var job profile.JobEntry
		job, err = p.Job(id)
		if err != nil {
			return jobs, err
		}
		jobs = append(jobs, job)

		var more bool
		more, err = p.Confirm("\nAdd another job?", false)
		if err != nil || !more {
			return jobs, err
		}
	}
}

// Education asks for degrees until the user stops.
func (p *Prompter) Education() (entries []profile.Education, err error) {
	entries = []profile.Education{}

	var add bool
	add, err = p.Confirm("\nAdd education information?", true)
	if err != nil || !add {
		return entries, err
	}

	for {
		var entry profile.Education
		entry.Degree, err = p.Ask("Degree/Certification", "")
		if err != nil {
			return entries, err
		}
		entry.Institution, err = p.Ask("Institution", "")
		if err != nil {
			return entries, err
		}
		entry.Year, err = p.Ask("Graduation Year", "")
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)

		add, err = p.Confirm("Add another education entry?", false)
		if err != nil || !add {
			return entries, err
		}
	}
}

// optionalList asks whether to add a list and then reads it.
func (p *Prompter) optionalList(question, item string, def bool) (items []string, err error) {
	items = []string{}

	var add bool
	add, err = p.Confirm(question, def)
	if err != nil || !add {
		return items, err
	}

	fmt.Fprintf(p.out, "Enter %ss (one per line, empty line to finish):\n", strings.ToLower(item))
	items, err = p.List(item)
	return items, err
}

// Additional asks for education, skills, certifications and interests and
// stores them on prof.
func (p *Prompter) Additional(prof *profile.Profile) (err error) {
	fmt.Fprintln(p.out, "\n== Additional Information (Optional) ==")

	prof.Education, err = p.Education()
	if err != nil {
		return err
	}

	prof.Skills, err = p.optionalList("\nAdd skills?", "Skill", true)
	if err != nil {
		return err
	}

	prof.Certifications, err = p.optionalList("\nAdd certifications?", "Certification", false)
	if err != nil {
		return err
	}

	prof.Interests, err = p.optionalList("\nAdd interests/background information?", "Interest", false)
	return err
}

// Profile runs the full collection flow. When existing already holds a
// profile the user must agree to overwrite it.
func (p *Prompter) Profile(existing profile.Profile) (prof profile.Profile, err error) {
	prof = profile.Empty()

	if existing.PersonalInfo.Name != "" {
		fmt.Fprintln(p.out, "Existing data found!")

		var overwrite bool
		overwrite, err = p.Confirm("This will overwrite existing data. Continue?", false)
		if err != nil {
			return prof, err
		}
		if !overwrite {
			err = ErrInputCancelled
			return prof, err
		}
	}

	prof.PersonalInfo, err = p.PersonalInfo()
	if err != nil {
		return prof, err
	}

	prof.JobExperience, err = p.Jobs()
	if err != nil {
		return prof, err
	}

	err = p.Additional(&prof)
	return prof, err
}

// Summary writes an overview of a profile.
func Summary(w io.Writer, prof profile.Profile) {
	fmt.Fprintln(w, "Personal Information:")
	fmt.Fprintf(w, "  Name: %s\n", prof.PersonalInfo.Name)
	fmt.Fprintf(w, "  Email: %s\n", prof.PersonalInfo.Email)
	fmt.Fprintf(w, "  Phone: %s\n", prof.PersonalInfo.Phone)
	fmt.Fprintf(w, "  Location: %s\n", prof.PersonalInfo.Location)

	fmt.Fprintf(w, "\nJob Experience: %d jobs\n", len(prof.JobExperience))
	for _, job := range prof.JobExperience {
		fmt.Fprintf(w, "  • %s at %s (%s - %s)\n", job.Title, job.Company, job.StartDate, job.EndDate)
	}

	if len(prof.Education) > 0 {
		fmt.Fprintf(w, "\nEducation: %d entries\n", len(prof.Education))
	}
	if len(prof.Skills) > 0 {
		fmt.Fprintf(w, "\nSkills: %d skills\n", len(prof.Skills))
	}
	if len(prof.Certifications) > 0 {
		fmt.Fprintf(w, "\nCertifications: %d certifications\n", len(prof.Certifications))
	}
	if len(prof.Interests) > 0 {
		fmt.Fprintf(w, "\nInterests: %d entries\n", len(prof.Interests))
	}
}
