package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nikogura/resume-builder/pkg/collect"
	"github.com/nikogura/resume-builder/pkg/config"
	"github.com/nikogura/resume-builder/pkg/llm"
	"github.com/nikogura/resume-builder/pkg/posting"
	"github.com/nikogura/resume-builder/pkg/profile"
	"github.com/nikogura/resume-builder/pkg/renderer"
	"github.com/nikogura/resume-builder/pkg/tailor"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var baseName string

//nolint:gochecknoglobals // Cobra boilerplate
var outputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var referenceDoc string

//nolint:gochecknoglobals // Cobra boilerplate
var keepMarkdown bool

//nolint:gochecknoglobals // Cobra boilerplate
var assumeYes bool

//nolint:gochecknoglobals // Cobra boilerplate
var generateCmd = &cobra.Command{
	Use:   "generate [posting-file-or-url]",
	Short: "Generate a tailored resume and cover letter",
	Long: `Generate a resume and cover letter tailored to a job posting.

The posting can be provided as:
- A text file (e.g., posting.txt)
- A PDF file (e.g., posting.pdf)
- A URL (e.g., https://example.com/jobs/123)
- Pasted into the terminal when no argument is given

Example:
  resume-builder generate posting.txt
  resume-builder generate https://example.com/jobs/123 --name acme-sre
  resume-builder generate posting.pdf --yes --output-dir ~/Documents/Applications`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&baseName, "name", "", "Base filename for the documents (prompted if not provided)")
	generateCmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory (default from config)")
	generateCmd.Flags().StringVar(&referenceDoc, "reference-doc", "", "Word document supplying styles to pandoc (default from config)")
	generateCmd.Flags().BoolVar(&keepMarkdown, "keep-markdown", false, "Keep markdown files after document generation")
	generateCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Save without asking for confirmation")
}

func runGenerate(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()

	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	err = cfg.Validate()
	if err != nil {
		return err
	}

	log := newLogger()

	var prof profile.Profile
	prof, err = loadProfile(profile.NewStore(cfg.ProfilePath))
	if err != nil {
		return err
	}

	fmt.Printf("✓ Profile loaded: %s\n", prof.PersonalInfo.Name)
	fmt.Printf("  %d jobs, %d skills\n\n", len(prof.JobExperience), len(prof.Skills))

	prompter := collect.NewPrompter(os.Stdin, os.Stdout)

	var postingText string
	postingText, err = readPosting(ctx, prompter, args)
	if err != nil {
		return err
	}

	var backend llm.Backend
	backend, err = llm.NewBackend(ctx, cfg.BackendSettings(), log)
	if err != nil {
		err = errors.Wrap(err, "failed to create generation backend")
		return err
	}
	fmt.Printf("✓ %s backend ready (using %s)\n\n", cfg.Provider, cfg.GetModel())

	client := llm.NewClient(backend, log)

	var bundle tailor.Bundle
	bundle, err = runTailor(ctx, client, prof, postingText, cfg.TailorLimits())
	if err != nil {
		return err
	}

	printPreview(os.Stdout, prof, bundle)

	if !assumeYes {
		var save bool
		save, err = prompter.Confirm("\nSave resume and cover letter?", true)
		if err != nil {
			return err
		}
		if !save {
			fmt.Println("Documents not saved.")
			return err
		}
	}

	var base string
	base, err = chooseBaseName(prompter, log)
	if err != nil {
		return err
	}

	r := renderer.NewRenderer(
		firstNonEmpty(outputDir, cfg.OutputDir),
		firstNonEmpty(referenceDoc, cfg.Pandoc.ReferenceDoc),
		keepMarkdown || cfg.KeepMarkdown,
		log,
	)

	var artifacts renderer.Artifacts
	artifacts, err = r.Render(ctx, base, resumeContent(prof, bundle), letterContent(prof, bundle, time.Now()))
	if err != nil {
		return err
	}

	fmt.Println("\n✓ Documents created successfully!")
	fmt.Printf("  Resume: %s\n", artifacts.Resume)
	fmt.Printf("  Cover Letter: %s\n", artifacts.CoverLetter)
	fmt.Printf("  Raw Resume: %s\n", artifacts.ResumeRaw)
	fmt.Printf("  Raw Cover Letter: %s\n", artifacts.CoverLetterRaw)

	return err
}

// loadProfile loads the stored profile and refuses one that was never
// collected.
func loadProfile(store *profile.Store) (prof profile.Profile, err error) {
	prof, err = store.Load()
	if err != nil {
		return prof, err
	}

	if prof.PersonalInfo.Name == "" {
		err = errors.Errorf("no profile found at %s (run 'resume-builder collect' first)", store.Path())
		return prof, err
	}

	return prof, err
}

// readPosting fetches the posting named on the command line, or asks for it
// to be pasted. A failed fetch falls back to pasting.
func readPosting(ctx context.Context, prompter *collect.Prompter, args []string) (text string, err error) {
	if len(args) == 0 {
		text, err = prompter.Posting()
		return text, err
	}

	if getVerbose() {
		fmt.Printf("Loading job posting from: %s\n", args[0])
	}

	text, err = posting.FetchWithContext(ctx, args[0])
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
		fmt.Println("This often happens with JavaScript-rendered pages or scanned PDFs.")
		fmt.Println()
		text, err = prompter.Posting()
		return text, err
	}

	fmt.Printf("✓ Job posting loaded (%d characters)\n", len(text))
	return text, err
}

// runTailor runs the pipeline behind a spinner.
func runTailor(ctx context.Context, gen tailor.Generator, prof profile.Profile, postingText string, limits tailor.Limits) (bundle tailor.Bundle, err error) {
	progress := &stepSpinner{verbose: getVerbose()}

	bundle, err = tailor.Run(ctx, gen, prof, postingText, limits, progress.step)
	progress.finish()
	if err != nil {
		return bundle, err
	}

	fmt.Println("✓ Resume and cover letter generated")
	return bundle, err
}

// chooseBaseName returns the sanitized --name, the sanitized answer to a
// prompt, or a timestamped default.
func chooseBaseName(prompter *collect.Prompter, log logrus.FieldLogger) (base string, err error) {
	requested := baseName
	if requested == "" && !assumeYes {
		requested, err = prompter.Ask("Base filename (press Enter for an auto-generated name)", "")
		if err != nil {
			return base, err
		}
	}

	base = renderer.SanitizeBaseName(requested)
	if base == "" {
		if strings.TrimSpace(requested) != "" {
			log.WithField("name", requested).Warn("Filename has no usable characters; using a generated name")
		}
		base = renderer.DefaultBaseName(time.Now())
	}

	return base, err
}

func resumeContent(prof profile.Profile, bundle tailor.Bundle) (content renderer.ResumeContent) {
	content = renderer.ResumeContent{
		PersonalInfo:   prof.PersonalInfo,
		Summary:        bundle.Summary,
		Jobs:           bundle.Jobs,
		Duties:         bundle.Duties,
		Education:      prof.Education,
		Skills:         bundle.Skills,
		Certifications: prof.Certifications,
	}
	return content
}

func letterContent(prof profile.Profile, bundle tailor.Bundle, date time.Time) (content renderer.CoverLetterContent) {
	content = renderer.CoverLetterContent{
		PersonalInfo: prof.PersonalInfo,
		Body:         bundle.CoverLetter,
		Date:         date,
	}
	return content
}

func firstNonEmpty(values ...string) (result string) {
	for _, value := range values {
		if value != "" {
			result = value
			return result
		}
	}
	return result
}
