package cmd

import (
	"fmt"
	"os"

	"github.com/nikogura/resume-builder/pkg/config"
	"github.com/nikogura/resume-builder/pkg/profile"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var validateCmd = &cobra.Command{
	Use:   "validate [profile-file]",
	Short: "Check that a profile file has the required structure",
	Long: `Check a profile file for the required keys and field types. Defaults to the
configured profile path.

Example:
  resume-builder validate
  resume-builder validate data/user_data.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) (err error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		var cfg config.Config
		cfg, err = loadConfig()
		if err != nil {
			return err
		}
		path = cfg.ProfilePath
	}

	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read profile: %s", path)
		return err
	}

	var prof profile.Profile
	prof, err = profile.Unmarshal(data)
	if err != nil {
		return err
	}

	fmt.Printf("✓ %s is valid (%d jobs, %d skills)\n", path, len(prof.JobExperience), len(prof.Skills))
	return err
}
