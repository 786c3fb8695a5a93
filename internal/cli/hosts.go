package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jturbide/vhost/internal/hosts"
	"github.com/jturbide/vhost/internal/output"
)

var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "Print the hosts block that sync would write",
	Long: `Print the managed hosts block computed from the configured sites, and
the hosts files it would be written to. Nothing is written.

Examples:
  vhost hosts
  vhost hosts --json`,
	Args: cobra.NoArgs,
	RunE: runHosts,
}

func init() {
	rootCmd.AddCommand(hostsCmd)
}

type hostsPreview struct {
	Files   []string      `json:"files"`
	Entries []hosts.Entry `json:"entries"`
}

func runHosts(cmd *cobra.Command, args []string) error {
	cfg, _, p, err := loadPlatform()
	if err != nil {
		return err
	}

	entries, warnings := hosts.Entries(cfg)
	for _, w := range warnings {
		log.Warn("hosts entry uses default IP", zap.Error(w))
	}

	if jsonOutput {
		if entries == nil {
			entries = []hosts.Entry{}
		}
		files := []string(p.Hosts)
		if files == nil {
			files = []string{}
		}
		return output.JSON(hostsPreview{Files: files, Entries: entries})
	}

	if len(p.Hosts) == 0 {
		output.Warn("No hosts file configured for this platform")
	} else {
		output.Info("Hosts files: %s", strings.Join(p.Hosts, ", "))
	}
	output.Print("%s", strings.TrimRight(hosts.Markers.Render(hosts.Payload(entries)), "\n"))
	return nil
}
