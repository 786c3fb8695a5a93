package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jturbide/vhost/internal/config"
	"github.com/jturbide/vhost/internal/input"
	"github.com/jturbide/vhost/internal/output"
	"github.com/jturbide/vhost/internal/platform"
)

// Snippets written by init. They include every generated vhost file.
const (
	apacheSnippet = "IncludeOptional {{vhosts_dir}}/*.conf"
	nginxSnippet  = "include {{vhosts_dir}}/*.conf;"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration",
	Long: `Write a starter configuration file using the default paths of the
platform. A server kind is enabled when its main config is found.
An existing file is only replaced after confirmation or with --force.

Examples:
  vhost init
  vhost init --os mac
  vhost init --config ./vhost.yaml --force`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration file")
	rootCmd.AddCommand(initCmd)
}

// starterConfig builds a configuration for layout with one example site
func starterConfig(layout *platform.Layout) *config.Config {
	server := func(kind, snippet string) *config.Server {
		l, err := layout.Server(kind)
		if err != nil {
			return nil
		}
		return &config.Server{
			Enabled: fileExists(l.Config),
			Config:  l.Config,
			Output:  l.Output,
			Logs:    l.Logs,
			Snippet: snippet,
			Service: l.Service,
		}
	}

	cfg := config.New()
	cfg.Platforms[layout.OS] = &config.Platform{
		Root:   layout.Root,
		Hosts:  config.PathList{layout.Hosts},
		Apache: server("apache", apacheSnippet),
		Nginx:  server("nginx", nginxSnippet),
	}
	cfg.Sites = []*config.Site{{
		Name:    "example.test",
		Root:    "example/public",
		Aliases: []string{"www.example.test"},
	}}
	return cfg
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := deps.ConfigLoader.Path()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !initForce {
		if jsonOutput {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
		ok, err := input.Confirm(deps.StdinReader, os.Stdout, fmt.Sprintf("Config file %s already exists. Overwrite?", path))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
	}

	osKey, err := selectOS(nil)
	if err != nil {
		return err
	}
	layout, err := deps.PlatformDetector.DefaultLayout(osKey)
	if err != nil {
		return err
	}

	cfg := starterConfig(layout)
	if err := deps.ConfigLoader.Save(cfg, path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	err = outputResult(CommandResult{
		Success: true,
		Path:    path,
		Action:  "init",
		Message: fmt.Sprintf("starter configuration for %s", layout.OS),
	}, "Config written to %s (platform %s)", path, layout.OS)
	if err != nil || jsonOutput {
		return err
	}

	kinds := enabledKinds(cfg.Platforms[layout.OS])
	if len(kinds) == 0 {
		output.Warn("No server main config found, enable apache or nginx in the config")
	}
	for _, kind := range kinds {
		output.Info("%s enabled (%s)", output.Title(kind.Name), cfg.Platforms[layout.OS].Server(kind.Name).Config)
	}
	return nil
}
