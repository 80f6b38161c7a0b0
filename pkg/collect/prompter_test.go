package collect

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func newTestPrompter(input string) (p *Prompter) {
	p = NewPrompter(strings.NewReader(input), io.Discard)
	return p
}

func TestAsk(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		def      string
		expected string
	}{
		{"answer", "Jane\n", "", "Jane"},
		{"trimmed", "  Jane  \r\n", "", "Jane"},
		{"default on blank", "\n", "x", "x"},
		{"no trailing newline", "Jane", "", "Jane"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestPrompter(tt.input).Ask("Name", tt.def)
			if err != nil {
				t.Fatalf("Ask failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

func TestAskEndOfInput(t *testing.T) {
	_, err := newTestPrompter("").Ask("Name", "")
	if !errors.Is(err, ErrInputCancelled) {
		t.Errorf("Expected ErrInputCancelled, got %v", err)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		def      bool
		expected bool
	}{
		{"yes", "y\n", false, true},
		{"YES", "YES\n", false, true},
		{"no", "n\n", true, false},
		{"default true", "\n", true, true},
		{"default false", "\n", false, false},
		{"re-asks", "maybe\nyes\n", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestPrompter(tt.input).Confirm("Continue?", tt.def)
			if err != nil {
				t.Fatalf("Confirm failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestList(t *testing.T) {
	items, err := newTestPrompter("Go\nSQL\n\nignored\n").List("Skill")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(items) != 2 || items[0] != "Go" || items[1] != "SQL" {
		t.Errorf("Unexpected items: %q", items)
	}
}

func TestListEmpty(t *testing.T) {
	items, err := newTestPrompter("\n").List("Skill")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if items == nil || len(items) != 0 {
		t.Errorf("Expected an empty non-nil list, got %#v", items)
	}
}

func TestPosting(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "two blank lines end input",
			input:    "Senior Engineer\n\nGo and Kubernetes.\n\n\nnot read\n",
			expected: "Senior Engineer\n\nGo and Kubernetes.",
		},
		{
			name:     "end of input",
			input:    "Senior Engineer\nGo",
			expected: "Senior Engineer\nGo",
		},
		{
			name:     "windows line endings",
			input:    "Senior Engineer\r\n\r\n\r\n",
			expected: "Senior Engineer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestPrompter(tt.input).Posting()
			if err != nil {
				t.Fatalf("Posting failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestPostingEmpty(t *testing.T) {
	for _, input := range []string{"", "\n\n", "   \n\n\n"} {
		_, err := newTestPrompter(input).Posting()
		if !errors.Is(err, ErrInputCancelled) {
			t.Errorf("Input %q: expected ErrInputCancelled, got %v", input, err)
		}
	}
}
