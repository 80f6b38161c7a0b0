// Package renderer writes tailored resumes and cover letters to disk.
//
// Each document is written twice: a styled Word document produced by pandoc
// from generated markdown, and a plain-text file written directly. When
// pandoc is unavailable the markdown is kept in place of the Word document.
package renderer

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ConvertFunc turns a markdown file into a styled document.
type ConvertFunc func(ctx context.Context, markdownPath, outputPath, referenceDoc string) (err error)

// Renderer writes artifacts into OutputDir.
type Renderer struct {
	OutputDir    string
	ReferenceDoc string
	KeepMarkdown bool

	log     logrus.FieldLogger
	convert ConvertFunc
}

// NewRenderer creates a renderer that converts with pandoc. A nil logger
// discards warnings.
func NewRenderer(outputDir, referenceDoc string, keepMarkdown bool, log logrus.FieldLogger) (r *Renderer) {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	r = &Renderer{
		OutputDir:    outputDir,
		ReferenceDoc: referenceDoc,
		KeepMarkdown: keepMarkdown,
		log:          log,
		convert:      RenderDocument,
	}
	return r
}

// Render writes all four artifacts for base. Plain-text files are written
// first so they exist even if styling fails. The returned Artifacts point at
// the markdown files when a styled document could not be produced.
func (r *Renderer) Render(ctx context.Context, base string, resume ResumeContent, letter CoverLetterContent) (artifacts Artifacts, err error) {
	artifacts = NewArtifacts(r.OutputDir, base)

	err = WriteText(ResumeText(resume), artifacts.ResumeRaw)
	if err != nil {
		err = errors.Wrap(err, "failed to save raw resume")
		return artifacts, err
	}

	err = WriteText(CoverLetterText(letter), artifacts.CoverLetterRaw)
	if err != nil {
		err = errors.Wrap(err, "failed to save raw cover letter")
		return artifacts, err
	}

	artifacts.Resume, err = r.RenderResume(ctx, base, resume)
	if err != nil {
		return artifacts, err
	}

	artifacts.CoverLetter, err = r.RenderCoverLetter(ctx, base, letter)
	if err != nil {
		return artifacts, err
	}

	return artifacts, err
}

// RenderResume writes the styled resume and returns its path.
func (r *Renderer) RenderResume(ctx context.Context, base string, content ResumeContent) (path string, err error) {
	path, err = r.styled(ctx, ResumeMarkdown(content), NewArtifacts(r.OutputDir, base).Resume)
	if err != nil {
		err = errors.Wrap(err, "failed to save resume")
		return path, err
	}
	return path, err
}

// RenderCoverLetter writes the styled cover letter and returns its path.
func (r *Renderer) RenderCoverLetter(ctx context.Context, base string, content CoverLetterContent) (path string, err error) {
	path, err = r.styled(ctx, CoverLetterMarkdown(content), NewArtifacts(r.OutputDir, base).CoverLetter)
	if err != nil {
		err = errors.Wrap(err, "failed to save cover letter")
		return path, err
	}
	return path, err
}

// styled writes markdown next to outputPath and converts it. A failed
// conversion is logged and the markdown path returned instead.
func (r *Renderer) styled(ctx context.Context, markdown, outputPath string) (path string, err error) {
	markdownPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + markdownExt

	err = WriteMarkdown(markdown, markdownPath)
	if err != nil {
		return path, err
	}

	convErr := r.convert(ctx, markdownPath, outputPath, r.ReferenceDoc)
	if convErr != nil {
		r.log.WithFields(logrus.Fields{
			"document": outputPath,
			"error":    convErr.Error(),
		}).Warn("Could not produce styled document; keeping markdown")
		path = markdownPath
		return path, err
	}

	path = outputPath
	if !r.KeepMarkdown {
		err = CleanupMarkdown(markdownPath)
		if err != nil {
			return path, err
		}
	}

	return path, err
}
