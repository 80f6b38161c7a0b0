package tailor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nikogura/resume-builder/pkg/llm"
	"github.com/nikogura/resume-builder/pkg/profile"
)

// scriptedBackend answers by recognising which operation a request is for.
// failTimes makes an operation fail that many times before it recovers.
type scriptedBackend struct {
	replies   map[string]string
	fail      map[string]bool
	failTimes map[string]int
	calls     []string
}

func (s *scriptedBackend) Complete(_ context.Context, req llm.Request) (text string, err error) {
	op := operationFor(req)
	s.calls = append(s.calls, op)

	if s.fail[op] {
		err = errors.New("backend unavailable")
		return text, err
	}

	if s.failTimes[op] > 0 {
		s.failTimes[op]--
		err = errors.New("backend unavailable")
		return text, err
	}

	text = s.replies[op]
	return text, err
}

func operationFor(req llm.Request) (op string) {
	switch {
	case strings.Contains(req.Prompt, "Write a professional summary"):
		op = llm.OpSummary
	case strings.Contains(req.Prompt, "JSON array of job numbers"):
		op = llm.OpRanking
	case strings.Contains(req.Prompt, "Rewrite these job duties"):
		op = llm.OpDuties
	case strings.Contains(req.Prompt, "comma-separated list of skills"):
		op = llm.OpSkills
	case strings.Contains(req.Prompt, "Write a cover letter"):
		op = llm.OpCoverLetter
	}
	return op
}

func healthyReplies() (replies map[string]string) {
	replies = map[string]string{
		llm.OpSummary:     "Platform engineer with a decade of Go.",
		llm.OpRanking:     "[3, 1, 2]",
		llm.OpDuties:      "• Tailored duty one\n• Tailored duty two",
		llm.OpSkills:      "Go, Kubernetes, Terraform",
		llm.OpCoverLetter: "I would like to join.\n\nThank you.",
	}
	return replies
}

func testProfile() (p profile.Profile) {
	p = profile.Empty()
	p.PersonalInfo = profile.PersonalInfo{Name: "Test User", Email: "test@example.com", Phone: "555-0100", Location: "Test City"}
	p.JobExperience = []profile.JobEntry{
		{ID: 1, Title: "Developer", Company: "Alpha", StartDate: "2015-01", EndDate: "2019-12", Duties: []string{"Built APIs", "Wrote tests"}},
		{ID: 2, Title: "Lead", Company: "Beta", StartDate: "2022-02", EndDate: "Present", Duties: []string{"Led a team"}},
		{ID: 3, Title: "Senior Developer", Company: "Gamma", StartDate: "2020-01", EndDate: "2022-01", Duties: []string{"Ran clusters"}},
	}
	p.Skills = []string{"Go", "SQL", "Bash"}
	return p
}

func TestRun(t *testing.T) {
	backend := &scriptedBackend{replies: healthyReplies()}
	client := llm.NewClient(backend, nil)

	var steps []string
	bundle, err := Run(context.Background(), client, testProfile(), "posting", Limits{MaxJobs: 2, MaxDuties: 5, MaxSkills: 2}, func(step string) {
		steps = append(steps, step)
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if bundle.Summary != "Platform engineer with a decade of Go." {
		t.Errorf("Unexpected summary: %q", bundle.Summary)
	}

	if len(bundle.Jobs) != 2 || bundle.Jobs[0].ID != 2 || bundle.Jobs[1].ID != 3 {
		t.Fatalf("Expected jobs [2 3], got %+v", bundle.Jobs)
	}

	if bundle.Jobs[0].StartDate != "2022" || bundle.Jobs[0].EndDate != "Present" {
		t.Errorf("Expected normalized dates, got %s - %s", bundle.Jobs[0].StartDate, bundle.Jobs[0].EndDate)
	}

	if len(bundle.Duties) != 2 || len(bundle.Duties[0]) != 2 || bundle.Duties[0][0] != "Tailored duty one" {
		t.Errorf("Unexpected duties: %v", bundle.Duties)
	}

	if len(bundle.Skills) != 2 || bundle.Skills[1] != "Kubernetes" {
		t.Errorf("Unexpected skills: %v", bundle.Skills)
	}

	if !strings.HasPrefix(bundle.CoverLetter, "I would like to join.") {
		t.Errorf("Unexpected cover letter: %q", bundle.CoverLetter)
	}

	expectedCalls := []string{llm.OpSummary, llm.OpRanking, llm.OpDuties, llm.OpDuties, llm.OpSkills, llm.OpCoverLetter}
	if strings.Join(backend.calls, ",") != strings.Join(expectedCalls, ",") {
		t.Errorf("Expected calls %v, got %v", expectedCalls, backend.calls)
	}

	if len(steps) != len(expectedCalls) {
		t.Errorf("Expected %d progress steps, got %v", len(expectedCalls), steps)
	}
}

func TestRunDegradedBackend(t *testing.T) {
	backend := &scriptedBackend{
		replies: healthyReplies(),
		fail:    map[string]bool{llm.OpRanking: true, llm.OpDuties: true, llm.OpSkills: true},
	}
	client := llm.NewClient(backend, nil)

	bundle, err := Run(context.Background(), client, testProfile(), "posting", DefaultLimits(), nil)
	if err != nil {
		t.Fatalf("Run should survive recoverable failures, got %v", err)
	}

	// Fallback keeps profile order without moving the ongoing job.
	if len(bundle.Jobs) != 3 || bundle.Jobs[0].ID != 1 {
		t.Errorf("Expected profile order, got %+v", bundle.Jobs)
	}

	if len(bundle.Duties[0]) != 2 || bundle.Duties[0][0] != "Built APIs" {
		t.Errorf("Expected original duties, got %v", bundle.Duties[0])
	}

	if len(bundle.Skills) != 3 || bundle.Skills[0] != "Go" {
		t.Errorf("Expected original skills, got %v", bundle.Skills)
	}
}

func TestRunWithDefaultBreakerSurvivesFlakyBackend(t *testing.T) {
	tests := []struct {
		name      string
		fail      map[string]bool
		failTimes map[string]int
		wantState string
		wantCalls []string
	}{
		{
			name:      "ranking and first duties fail",
			failTimes: map[string]int{llm.OpRanking: 1, llm.OpDuties: 1},
			wantState: "closed",
			wantCalls: []string{llm.OpSummary, llm.OpRanking, llm.OpDuties, llm.OpDuties, llm.OpDuties, llm.OpSkills, llm.OpCoverLetter},
		},
		{
			name:      "every recoverable call fails",
			fail:      map[string]bool{llm.OpRanking: true, llm.OpDuties: true, llm.OpSkills: true},
			wantState: "open",
			wantCalls: []string{llm.OpSummary, llm.OpRanking, llm.OpDuties, llm.OpDuties, llm.OpCoverLetter},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &scriptedBackend{replies: healthyReplies(), fail: tt.fail, failTimes: tt.failTimes}
			guard := llm.NewGuard(backend, 0, llm.DefaultBreakerSettings(), nil)
			client := llm.NewClient(guard, nil)

			bundle, err := Run(context.Background(), client, testProfile(), "posting", DefaultLimits(), nil)
			if err != nil {
				t.Fatalf("Run should yield a document, got %v", err)
			}

			if !strings.HasPrefix(bundle.CoverLetter, "I would like to join.") {
				t.Errorf("Unexpected cover letter: %q", bundle.CoverLetter)
			}
			if len(bundle.Jobs) != 3 || len(bundle.Duties) != 3 {
				t.Errorf("Expected 3 jobs with duties, got %d and %d", len(bundle.Jobs), len(bundle.Duties))
			}

			if guard.State() != tt.wantState {
				t.Errorf("Expected breaker %s, got %s", tt.wantState, guard.State())
			}
			if strings.Join(backend.calls, ",") != strings.Join(tt.wantCalls, ",") {
				t.Errorf("Expected calls %v, got %v", tt.wantCalls, backend.calls)
			}
		})
	}
}

func TestRunFatalFailures(t *testing.T) {
	tests := []struct {
		name      string
		failing   string
		wantCalls int
	}{
		{name: "summary", failing: llm.OpSummary, wantCalls: 1},
		{name: "cover letter", failing: llm.OpCoverLetter, wantCalls: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &scriptedBackend{replies: healthyReplies(), fail: map[string]bool{tt.failing: true}}
			client := llm.NewClient(backend, nil)

			_, err := Run(context.Background(), client, testProfile(), "posting", Limits{MaxJobs: 2, MaxDuties: 5, MaxSkills: 5}, nil)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			var failure *llm.GenerationFailure
			if !errors.As(err, &failure) {
				t.Fatalf("Expected GenerationFailure, got %T: %v", err, err)
			}
			if failure.Operation != tt.failing {
				t.Errorf("Expected failed operation %q, got %q", tt.failing, failure.Operation)
			}

			if len(backend.calls) != tt.wantCalls {
				t.Errorf("Expected %d backend calls, got %v", tt.wantCalls, backend.calls)
			}
		})
	}
}

func TestRunEmptyHistory(t *testing.T) {
	backend := &scriptedBackend{replies: healthyReplies()}
	client := llm.NewClient(backend, nil)

	p := testProfile()
	p.JobExperience = []profile.JobEntry{}

	bundle, err := Run(context.Background(), client, p, "posting", DefaultLimits(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(bundle.Jobs) != 0 || len(bundle.Duties) != 0 {
		t.Errorf("Expected no jobs, got %+v", bundle.Jobs)
	}
}
