package collect

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/nikogura/resume-builder/pkg/profile"
)

const personalInput = "Jane Doe\njane@example.com\n555-0100\nAustin, TX\n\n\n"

const jobInput = "Engineer\nAcme\nBackend\n2020-01\nPresent\nBuilt APIs\nRan on-call\n\nCut latency 40%\n\n"

func TestPersonalInfo(t *testing.T) {
	info, err := newTestPrompter(personalInput).PersonalInfo()
	if err != nil {
		t.Fatalf("PersonalInfo failed: %v", err)
	}

	if info.Name != "Jane Doe" || info.Location != "Austin, TX" {
		t.Errorf("Unexpected personal info: %+v", info)
	}
	if info.LinkedIn != "" || info.Portfolio != "" {
		t.Errorf("Optional fields should be empty: %+v", info)
	}
}

func TestJobs(t *testing.T) {
	input := jobInput + "y\n" + "Intern\nBeta\nQA\n2019-06\n2019-12\nTested\n\n\n" + "n\n"

	jobs, err := newTestPrompter(input).Jobs()
	if err != nil {
		t.Fatalf("Jobs failed: %v", err)
	}

	if len(jobs) != 2 {
		t.Fatalf("Expected 2 jobs, got %d", len(jobs))
	}

	first := jobs[0]
	if first.ID != 1 || first.Title != "Engineer" || first.EndDate != "Present" {
		t.Errorf("Unexpected first job: %+v", first)
	}
	if len(first.Duties) != 2 || first.Duties[1] != "Ran on-call" {
		t.Errorf("Unexpected duties: %q", first.Duties)
	}
	if len(first.Achievements) != 1 || first.Achievements[0] != "Cut latency 40%" {
		t.Errorf("Unexpected achievements: %q", first.Achievements)
	}

	if jobs[1].ID != 2 || jobs[1].Company != "Beta" {
		t.Errorf("Unexpected second job: %+v", jobs[1])
	}
	if len(jobs[1].Achievements) != 0 {
		t.Errorf("Expected no achievements, got %q", jobs[1].Achievements)
	}
}

func TestAdditional(t *testing.T) {
	input := "y\nBS CS\nState U\n2014\nn\n" + // education
		"\nGo\nSQL\n\n" + // skills, default yes
		"\n" + // certifications, default no
		"y\nMotorcycles\n\n" // interests

	var prof profile.Profile
	err := newTestPrompter(input).Additional(&prof)
	if err != nil {
		t.Fatalf("Additional failed: %v", err)
	}

	if len(prof.Education) != 1 || prof.Education[0].Institution != "State U" {
		t.Errorf("Unexpected education: %+v", prof.Education)
	}
	if len(prof.Skills) != 2 {
		t.Errorf("Expected 2 skills, got %q", prof.Skills)
	}
	if prof.Certifications == nil || len(prof.Certifications) != 0 {
		t.Errorf("Expected empty certifications, got %#v", prof.Certifications)
	}
	if len(prof.Interests) != 1 || prof.Interests[0] != "Motorcycles" {
		t.Errorf("Unexpected interests: %q", prof.Interests)
	}
}

func TestProfile(t *testing.T) {
	input := personalInput + jobInput + "n\n" + "n\n" + "n\n" + "n\n" + "n\n"

	prof, err := newTestPrompter(input).Profile(profile.Empty())
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	if prof.PersonalInfo.Name != "Jane Doe" {
		t.Errorf("Expected name 'Jane Doe', got '%s'", prof.PersonalInfo.Name)
	}
	if len(prof.JobExperience) != 1 {
		t.Errorf("Expected 1 job, got %d", len(prof.JobExperience))
	}

	err = profile.Validate(prof)
	if err != nil {
		t.Errorf("Collected profile should be valid: %v", err)
	}
}

func TestProfileDeclineOverwrite(t *testing.T) {
	existing := profile.Empty()
	existing.PersonalInfo.Name = "Old Name"

	_, err := newTestPrompter("n\n").Profile(existing)
	if !errors.Is(err, ErrInputCancelled) {
		t.Errorf("Expected ErrInputCancelled, got %v", err)
	}

	_, err = newTestPrompter("\n").Profile(existing)
	if !errors.Is(err, ErrInputCancelled) {
		t.Errorf("Blank answer should default to no, got %v", err)
	}
}

func TestProfileInterrupted(t *testing.T) {
	_, err := newTestPrompter("Jane Doe\njane@example.com\n").Profile(profile.Empty())
	if !errors.Is(err, ErrInputCancelled) {
		t.Errorf("Expected ErrInputCancelled, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	prof := profile.Empty()
	prof.PersonalInfo.Name = "Jane Doe"
	prof.JobExperience = []profile.JobEntry{{Title: "Engineer", Company: "Acme", StartDate: "2020-01", EndDate: "Present"}}
	prof.Skills = []string{"Go"}

	var buf bytes.Buffer
	Summary(&buf, prof)
	out := buf.String()

	for _, want := range []string{"Name: Jane Doe", "Job Experience: 1 jobs", "• Engineer at Acme (2020-01 - Present)", "Skills: 1 skills"} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary should contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Education:") {
		t.Errorf("Empty education should be omitted:\n%s", out)
	}
}
