package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/initcard/lettuce/internal/branding"
	"github.com/initcard/lettuce/internal/config"
	"github.com/initcard/lettuce/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	settings config.Settings
	logger   = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` reads the character manifest, finds which characters are referenced
in the open scene and prepares their hair setups: groom files, hair system
imports and hair plate wraps.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		settings = config.Load()
		l, err := logging.Open(settings.LogLevel)
		logger = l
		if err != nil {
			logger.Warn("log file unavailable", "err", err)
		}
		logger.Debug("command start", "command", cmd.CommandPath(), "args", args)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("manifest", "", "Character manifest XML (overrides config)")
	pf.String("scene", "", "Scene snapshot exported by the host (overrides config)")
	pf.String("project", "", "Project directory for relative manifest paths (overrides config)")
	_ = viper.BindPFlag(config.KeyManifest, pf.Lookup("manifest"))
	_ = viper.BindPFlag(config.KeySceneFile, pf.Lookup("scene"))
	_ = viper.BindPFlag(config.KeyProjectDir, pf.Lookup("project"))
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return run()
}

func run() error {
	defer closeLogger()
	return rootCmd.Execute()
}

// closeLogger closes the run's log file and resets the package logger.
func closeLogger() {
	logger.Close()
	logger = logging.Discard()
}
