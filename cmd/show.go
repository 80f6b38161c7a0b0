package cmd

import (
	"fmt"
	"os"

	"github.com/nikogura/resume-builder/pkg/collect"
	"github.com/nikogura/resume-builder/pkg/config"
	"github.com/nikogura/resume-builder/pkg/profile"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var showJSON bool

//nolint:gochecknoglobals // Cobra boilerplate
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved profile",
	Long: `Print a summary of the saved profile, or the full document with --json.

Example:
  resume-builder show
  resume-builder show --json`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the profile as JSON")
}

func runShow(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	var prof profile.Profile
	prof, err = loadProfile(profile.NewStore(cfg.ProfilePath))
	if err != nil {
		return err
	}

	if showJSON {
		var data []byte
		data, err = profile.Marshal(prof)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return err
	}

	collect.Summary(os.Stdout, prof)
	return err
}
