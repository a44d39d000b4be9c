// Package commands provides the CLI commands for sysperm.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/sysperm/internal/config"
	"github.com/opencode-ai/sysperm/internal/logging"
	"github.com/opencode-ai/sysperm/internal/permission"
	"github.com/opencode-ai/sysperm/internal/platform"
)

var (
	// Version information set at build time
	Version   = "0.1.0"
	BuildTime = "dev"
)

// Global flags
var (
	configPath string
	logLevel   string
	jsonOutput bool
)

// cfg and manager are initialized by the persistent pre-run and shared
// by every subcommand.
var (
	cfg     *config.Config
	manager *permission.Manager
)

var rootCmd = &cobra.Command{
	Use:   "sysperm",
	Short: "sysperm - query and request OS permissions",
	Long: `sysperm checks and requests operating system permissions (camera,
microphone, location, full disk access, ...) through the native consent
machinery of the current platform.

Run 'sysperm list' to see every supported permission kind, 'sysperm
check camera' for a passive status query, or 'sysperm request camera'
to trigger the OS consent flow.`,
	Version:      Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		logging.Init(logging.Config{
			Level:  logging.ParseLevel(level),
			Pretty: cfg.LogPretty,
		})

		config.SetAppID(config.ResolveAppID(cfg.WindowsAppID))
		handler := platform.New(platform.Config{AppID: config.AppID()})
		manager = permission.NewManager(handler)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")

	rootCmd.SetVersionTemplate(fmt.Sprintf("sysperm %s (%s)\n", Version, BuildTime))

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(requestCmd)
	rootCmd.AddCommand(historyCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// parseKinds resolves CLI arguments into permission kinds. The special
// argument "all" expands to every supported kind.
func parseKinds(args []string) ([]permission.Kind, error) {
	if len(args) == 1 && args[0] == permission.KindAll.String() {
		return permission.AllKinds(), nil
	}

	kinds := make([]permission.Kind, 0, len(args))
	for _, arg := range args {
		kind, ok := permission.ParseKind(arg)
		if !ok {
			return nil, fmt.Errorf("unknown permission kind %q (run 'sysperm list')", arg)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
