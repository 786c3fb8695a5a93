package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jturbide/vhost/internal/generator"
	"github.com/jturbide/vhost/internal/hosts"
	"github.com/jturbide/vhost/internal/output"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all configured sites",
	Long: `List all configured sites with their document root, aliases and the IP
used for their hosts entries.

Examples:
  vhost list
  vhost ls
  vhost list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

type siteListItem struct {
	Name    string   `json:"name"`
	Root    string   `json:"root"`
	Aliases []string `json:"aliases,omitempty"`
	IP      string   `json:"ip"`
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, osKey, p, err := loadPlatform()
	if err != nil {
		return err
	}

	// Config order is kept: it is the order vhosts are generated in.
	items := make([]siteListItem, 0, len(cfg.Sites))
	for _, site := range cfg.Sites {
		if site == nil {
			continue
		}
		ip, _ := hosts.ResolveIP(cfg, site)
		items = append(items, siteListItem{
			Name:    site.Name,
			Root:    generator.DocumentRoot(p, site, osKey),
			Aliases: site.Aliases,
			IP:      ip,
		})
	}

	if jsonOutput {
		return output.JSON(items)
	}
	if len(items) == 0 {
		output.Info("No sites configured")
		return nil
	}

	headers := []string{"NAME", "ROOT", "ALIASES", "IP"}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item.Name, item.Root, strings.Join(item.Aliases, " "), item.IP})
	}
	output.Table(headers, rows)
	return nil
}
