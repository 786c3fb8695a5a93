package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jturbide/vhost/internal/logger"
)

var (
	configFile string
	osFlag     string
	jsonOutput bool
	verbose    bool
	version    = "dev"
)

// log is replaced once flags are parsed.
var log = zap.NewNop()

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vhost",
	Short: "Virtual host and hosts file synchronizer",
	Long: `vhost generates Apache and Nginx virtual host files from one YAML
configuration and keeps the main server configs and the hosts file in sync.

Changes to existing files are written inside marked blocks:

  # BEGIN AUTOGENERATED-apache
  ...
  # END AUTOGENERATED-apache

Running 'vhost sync' twice in a row leaves every file untouched the second time.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	cobra.OnInitialize(func() {
		log = logger.New(os.Stderr, verbose)
	})

	err := rootCmd.Execute()
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ~/.config/vhost/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&osFlag, "os", "", "Platform section to use: linux, mac or windows (default: config os, then detected)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
}
