package cmd

import (
	"fmt"
	"os"

	"github.com/nikogura/resume-builder/pkg/collect"
	"github.com/nikogura/resume-builder/pkg/config"
	"github.com/nikogura/resume-builder/pkg/profile"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Interactively collect your career profile",
	Long: `Walks through your personal information, job history, education, skills,
certifications and interests, then saves them as your profile.

An existing profile is only replaced after you confirm.`,
	Args: cobra.NoArgs,
	RunE: runCollect,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	store := profile.NewStore(cfg.ProfilePath)

	var existing profile.Profile
	existing, err = store.Load()
	if err != nil {
		return err
	}

	prompter := collect.NewPrompter(os.Stdin, os.Stdout)

	var prof profile.Profile
	prof, err = prompter.Profile(existing)
	if err != nil {
		return err
	}

	fmt.Println("\n== Data Collection Summary ==")
	collect.Summary(os.Stdout, prof)
	fmt.Println()

	var save bool
	save, err = prompter.Confirm("Save this data?", true)
	if err != nil {
		return err
	}
	if !save {
		fmt.Println("Data not saved.")
		return err
	}

	err = store.Save(prof)
	if err != nil {
		err = errors.Wrap(err, "failed to save profile")
		return err
	}

	fmt.Printf("\n✓ Profile saved to %s\n", store.Path())
	return err
}
