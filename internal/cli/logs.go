package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jturbide/vhost/internal/config"
	"github.com/jturbide/vhost/internal/driver"
	"github.com/jturbide/vhost/internal/output"
	"github.com/jturbide/vhost/internal/platform"
)

var (
	logsKind   string
	logsAccess bool
	logsError  bool
	logsFollow bool
	logsLines  int
)

var logsCmd = &cobra.Command{
	Use:   "logs <site>",
	Short: "View logs for a site",
	Long: `View the access and error logs of a site, read from the log directory of
a server kind (logs: in the config). The first enabled kind with a log
directory is used unless --kind is given.

By default, shows both access and error logs.
Use --access or --error to show only one log type.

Examples:
  vhost logs example.test              # Show both logs
  vhost logs example.test --access     # Show only access log
  vhost logs example.test --kind nginx # Read the nginx logs
  vhost logs example.test -f           # Follow logs in real-time
  vhost logs example.test -n 50        # Show last 50 lines`,
	Args: cobra.ExactArgs(1),
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().StringVar(&logsKind, "kind", "", "Server kind whose logs to read")
	logsCmd.Flags().BoolVar(&logsAccess, "access", false, "Show access log only")
	logsCmd.Flags().BoolVar(&logsError, "error", false, "Show error log only")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 20, "Number of lines to show")

	rootCmd.AddCommand(logsCmd)
}

// logDir returns the kind and log directory to read site logs from
func logDir(p *config.Platform, only, osKey string) (driver.Kind, string, error) {
	if only != "" {
		kind, err := driver.Lookup(only)
		if err != nil {
			return driver.Kind{}, "", err
		}
		srv := p.Server(kind.Name)
		if srv == nil || srv.Logs == "" {
			return driver.Kind{}, "", fmt.Errorf("no log directory configured for %s", kind)
		}
		return kind, platform.NormalizePath(srv.Logs, osKey), nil
	}

	for _, kind := range enabledKinds(p) {
		if logs := p.Server(kind.Name).Logs; logs != "" {
			return kind, platform.NormalizePath(logs, osKey), nil
		}
	}
	return driver.Kind{}, "", fmt.Errorf("no enabled server kind has a log directory configured")
}

func runLogs(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := validateSiteName(name); err != nil {
		return err
	}

	cfg, osKey, p, err := loadPlatform()
	if err != nil {
		return err
	}
	if _, err := cfg.GetSite(name); err != nil {
		output.Warn("Site %s not found in config, trying to read logs anyway", name)
	}

	kind, dir, err := logDir(p, logsKind, osKey)
	if err != nil {
		return err
	}
	accessLog := platform.JoinPath(dir, name+"-access.log", osKey)
	errorLog := platform.JoinPath(dir, name+"-error.log", osKey)

	// Determine which logs to show
	showAccess := true
	showError := true
	if logsAccess && !logsError {
		showError = false
	} else if logsError && !logsAccess {
		showAccess = false
	}

	var logFiles []string
	if showAccess {
		if _, err := os.Stat(accessLog); err == nil {
			logFiles = append(logFiles, accessLog)
		} else {
			output.Warn("Access log not found: %s", accessLog)
		}
	}
	if showError {
		if _, err := os.Stat(errorLog); err == nil {
			logFiles = append(logFiles, errorLog)
		} else {
			output.Warn("Error log not found: %s", errorLog)
		}
	}

	if len(logFiles) == 0 {
		return fmt.Errorf("no %s log files found for %s", kind, name)
	}

	tailArgs := []string{}
	if logsFollow {
		tailArgs = append(tailArgs, "-f")
	}
	tailArgs = append(tailArgs, "-n", strconv.Itoa(logsLines))
	tailArgs = append(tailArgs, logFiles...)

	tailPath, err := deps.CommandRunner.LookPath("tail")
	if err != nil {
		return fmt.Errorf("tail command not found")
	}

	if len(logFiles) == 1 {
		output.Info("Showing logs from: %s", logFiles[0])
	} else {
		output.Info("Showing logs from:")
		for _, f := range logFiles {
			output.Print("  - %s", f)
		}
	}
	output.Print("")

	if err := deps.CommandRunner.RunInteractive(tailPath, tailArgs...); err != nil {
		return fmt.Errorf("failed to read logs: %w", err)
	}
	return nil
}
