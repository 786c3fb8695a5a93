package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jturbide/vhost/internal/generator"
	"github.com/jturbide/vhost/internal/output"
	"github.com/jturbide/vhost/internal/platform"
	"github.com/jturbide/vhost/internal/report"
	"github.com/jturbide/vhost/internal/watch"
)

var (
	syncForce    bool
	syncBackup   bool
	syncNoReload bool
	syncWatch    bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Generate vhost files and update server configs and hosts files",
	Long: `Generate one vhost file per site for every enabled server kind, keep the
include block of each main server config current, and rewrite the hosts block
of every configured hosts file.

Existing vhost files and differing blocks are only replaced with --force (or
force: true in the config). Each failure is reported and the run continues;
the exit status is non-zero only when the configuration cannot be loaded.

Server kinds whose files changed are config-tested and then reloaded.

Examples:
  vhost sync                    # Sync with config defaults
  vhost sync --force            # Replace files that differ
  vhost sync --backup=false     # Do not keep .bak copies
  vhost sync --no-reload        # Test but do not reload servers
  vhost sync --watch            # Sync again on every config change`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncForce, "force", false, "Replace existing files and blocks that differ")
	syncCmd.Flags().BoolVar(&syncBackup, "backup", true, "Back up files before changing them (default from config)")
	syncCmd.Flags().BoolVar(&syncNoReload, "no-reload", false, "Do not reload servers after changes")
	syncCmd.Flags().BoolVarP(&syncWatch, "watch", "w", false, "Watch the config and templates and sync on change")

	rootCmd.AddCommand(syncCmd)
}

// SyncJSON is the JSON document printed by `sync --json`.
type SyncJSON struct {
	output.RunJSON
	Reload []string `json:"reload_errors,omitempty"`
}

func runSync(cmd *cobra.Command, args []string) error {
	if !syncWatch {
		return syncOnce(cmd)
	}
	return watchAndSync(cmd)
}

// syncOnce performs one run. Only configuration errors are returned.
func syncOnce(cmd *cobra.Command) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	osKey, err := selectOS(cfg)
	if err != nil {
		return err
	}

	opts := generator.Options{
		Force:  cfg.Force || syncForce,
		Backup: cfg.Backup,
		Logger: log,
	}
	if cmd.Flags().Changed("backup") {
		opts.Backup = syncBackup
	}

	var rec report.Recorder
	console := output.NewConsole(os.Stdout, verbose)
	if jsonOutput {
		opts.Reporter = &rec
	} else {
		opts.Reporter = console
	}

	gen, err := generator.New(cfg, osKey, opts)
	if err != nil {
		return err
	}
	log.Debug("sync started", zap.String("os", osKey), zap.Bool("force", opts.Force), zap.Bool("backup", opts.Backup))
	res := gen.Run()

	var reloadErrs []error
	if len(res.Changed) > 0 {
		reloadErrs = testAndReload(deps.NewController(log), gen.Platform(), res.Changed, !syncNoReload)
	}

	if jsonOutput {
		doc := SyncJSON{RunJSON: output.NewRunJSON(rec.Outcomes(), res.Summary)}
		for _, e := range reloadErrs {
			doc.Reload = append(doc.Reload, e.Error())
		}
		return output.JSON(doc)
	}

	console.Summary(res.Summary)
	for _, e := range reloadErrs {
		output.Error("%v", e)
	}
	return nil
}

// watchPaths returns the config file and the custom templates in use
func watchPaths(configPath, osKey string, gen *generator.Generator) []string {
	paths := []string{configPath}
	for _, kind := range enabledKinds(gen.Platform()) {
		if t := gen.Platform().Server(kind.Name).Template; t != "" {
			paths = append(paths, platform.NormalizePath(t, osKey))
		}
	}
	return paths
}

func watchAndSync(cmd *cobra.Command) error {
	if err := syncOnce(cmd); err != nil {
		return err
	}

	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	osKey, err := selectOS(cfg)
	if err != nil {
		return err
	}
	gen, err := generator.New(cfg, osKey, generator.Options{Logger: log})
	if err != nil {
		return err
	}

	w, err := watch.New(watchPaths(path, osKey, gen), log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !jsonOutput {
		output.Info("Watching %d file(s), press Ctrl+C to stop", w.Files())
	}
	return w.Run(ctx, func() error {
		return syncOnce(cmd)
	})
}
