package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikogura/resume-builder/pkg/profile"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	err := os.WriteFile(path, []byte(content), 0600)
	if err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func saveTestProfile(t *testing.T, path string) {
	t.Helper()
	prof := profile.Empty()
	prof.PersonalInfo = profile.PersonalInfo{Name: "Jane Doe", Email: "jane@example.com", Phone: "555-0100", Location: "Springfield"}
	prof.JobExperience = []profile.JobEntry{
		{ID: 1, Title: "Engineer", Company: "Acme", StartDate: "2020-01", EndDate: "Present", Duties: []string{"Built things"}},
	}
	prof.Skills = []string{"Go", "SQL"}

	err := profile.NewStore(path).Save(prof)
	if err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}
}

// useConfig points the --config flag at a config file whose profile_path is
// profilePath.
func useConfig(t *testing.T, profilePath string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RESUME_BUILDER_PROFILE_PATH", "")

	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"profile_path": "`+filepath.ToSlash(profilePath)+`"}`)

	configFile = path
	t.Cleanup(func() { configFile = "" })
}

func TestRunValidate(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.json")
	saveTestProfile(t, valid)

	missingField := filepath.Join(dir, "missing_field.json")
	writeFile(t, missingField, `{
  "personal_info": {"name": "Jane Doe", "email": "", "phone": "", "location": "", "linkedin": "", "portfolio": ""},
  "job_experience": [{"id": 1, "title": "Engineer"}],
  "education": [],
  "skills": [],
  "certifications": [],
  "interests": []
}`)

	notJSON := filepath.Join(dir, "broken.json")
	writeFile(t, notJSON, `{"personal_info": `)

	tests := []struct {
		name         string
		path         string
		wantErr      bool
		wantInvalid  bool
		errorContain string
	}{
		{name: "valid profile", path: valid},
		{name: "job missing fields", path: missingField, wantErr: true, wantInvalid: true, errorContain: "job_experience[0]"},
		{name: "not JSON", path: notJSON, wantErr: true, wantInvalid: true, errorContain: "not valid JSON"},
		{name: "missing file", path: filepath.Join(dir, "absent.json"), wantErr: true, errorContain: "failed to read profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runValidate(validateCmd, []string{tt.path})

			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Expected valid profile, got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errorContain) {
				t.Errorf("Expected error containing %q, got %v", tt.errorContain, err)
			}

			var validationErr *profile.ValidationError
			if errors.As(err, &validationErr) != tt.wantInvalid {
				t.Errorf("Expected ValidationError=%v, got %T: %v", tt.wantInvalid, err, err)
			}
		})
	}
}

func TestRunValidateDefaultsToConfiguredProfile(t *testing.T) {
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "user_data.json")
	useConfig(t, profilePath)

	err := runValidate(validateCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "user_data.json") {
		t.Errorf("Expected read error naming the configured profile, got %v", err)
	}

	saveTestProfile(t, profilePath)

	err = runValidate(validateCmd, nil)
	if err != nil {
		t.Errorf("Expected configured profile to validate, got %v", err)
	}
}

func TestRunShow(t *testing.T) {
	defer func() { showJSON = false }()

	dir := t.TempDir()
	profilePath := filepath.Join(dir, "user_data.json")
	useConfig(t, profilePath)

	err := runShow(showCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "collect") {
		t.Errorf("Expected a hint to run collect, got %v", err)
	}

	saveTestProfile(t, profilePath)

	for _, asJSON := range []bool{false, true} {
		showJSON = asJSON
		err = runShow(showCmd, nil)
		if err != nil {
			t.Errorf("runShow (json=%v) failed: %v", asJSON, err)
		}
	}
}
