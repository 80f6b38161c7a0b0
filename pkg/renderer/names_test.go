package renderer

import (
	"path/filepath"
	"testing"
	"time"
)

func TestNewArtifacts(t *testing.T) {
	artifacts := NewArtifacts("output", "acme")

	expected := []string{
		filepath.Join("output", "acme.docx"),
		filepath.Join("output", "acme_cover_letter.docx"),
		filepath.Join("output", "acme_raw.txt"),
		filepath.Join("output", "acme_cover_letter_raw.txt"),
	}

	paths := artifacts.Paths()
	for i := range expected {
		if paths[i] != expected[i] {
			t.Errorf("Expected %s, got %s", expected[i], paths[i])
		}
	}
}

func TestDefaultBaseName(t *testing.T) {
	now := time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

	if got := DefaultBaseName(now); got != "resume_20240102_150405" {
		t.Errorf("Expected 'resume_20240102_150405', got '%s'", got)
	}
}

func TestSanitizeBaseName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Acme_Resume", "Acme_Resume"},
		{"  acme resume  ", "acme-resume"},
		{"Société Générale", "Societe-Generale"},
		{"acme.docx", "acme"},
		{"../../etc/passwd", "etc-passwd"},
		{"a / b", "a-b"},
		{"v1.2", "v1.2"},
		{"???", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeBaseName(tt.input)
			if got != tt.expected {
				t.Errorf("SanitizeBaseName(%q): expected %q, got %q", tt.input, tt.expected, got)
			}
		})
	}
}
