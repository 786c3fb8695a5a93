// Package generator runs one synchronization pass: global snippets, include
// blocks in the main config files, per-site vhost files and the hosts block.
//
// Every file is handled as its own unit of work. Failures are reported and
// the run moves on; only a missing platform section stops it before it starts.
package generator

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jturbide/vhost/internal/block"
	"github.com/jturbide/vhost/internal/config"
	"github.com/jturbide/vhost/internal/driver"
	verrors "github.com/jturbide/vhost/internal/errors"
	"github.com/jturbide/vhost/internal/files"
	"github.com/jturbide/vhost/internal/hosts"
	"github.com/jturbide/vhost/internal/platform"
	"github.com/jturbide/vhost/internal/report"
	"github.com/jturbide/vhost/internal/template"
)

// Options configures a Generator.
type Options struct {
	Force  bool
	Backup bool

	Reporter report.Reporter
	Logger   *zap.Logger
	// Backups defaults to timestamped copies using the wall clock.
	Backups files.Backuper
}

// Result summarizes a run.
type Result struct {
	Summary report.Summary
	// Changed lists the server kinds whose snippet, include block or vhost
	// files were written.
	Changed []driver.Kind
	// HostsChanged is set when at least one hosts file was written.
	HostsChanged bool
}

// Generator synchronizes the files of one platform.
type Generator struct {
	cfg      *config.Config
	platform *config.Platform
	osKey    string
	force    bool
	backup   bool

	reporter report.Reporter
	log      *zap.Logger
	writer   *files.Writer
	syncer   *block.Syncer

	summary report.Summary
}

// New creates a Generator for the platform section osKey of cfg. A missing
// section is a configuration error.
func New(cfg *config.Config, osKey string, opts Options) (*Generator, error) {
	p, err := cfg.Platform(osKey)
	if err != nil {
		return nil, err
	}

	if opts.Reporter == nil {
		opts.Reporter = report.Discard
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Backups == nil {
		opts.Backups = files.NewBackups()
	}

	return &Generator{
		cfg:      cfg,
		platform: p,
		osKey:    osKey,
		force:    opts.Force,
		backup:   opts.Backup,
		reporter: opts.Reporter,
		log:      opts.Logger,
		writer:   files.NewWriter(opts.Backups),
		syncer:   block.NewSyncer(opts.Backups),
	}, nil
}

// Platform returns the platform section the generator works on.
func (g *Generator) Platform() *config.Platform {
	return g.platform
}

// Run performs one synchronization pass. Server kinds and sites are processed
// sequentially in configuration order.
func (g *Generator) Run() Result {
	g.summary = report.Summary{}
	var res Result

	sites := g.validSites()
	for _, kind := range driver.Kinds() {
		srv := g.platform.Server(kind.Name)
		if srv == nil || !srv.Enabled {
			g.log.Debug("server kind disabled", zap.String("kind", kind.Name))
			continue
		}
		if g.syncKind(kind, srv, sites) {
			res.Changed = append(res.Changed, kind)
		}
	}

	res.HostsChanged = g.syncHosts()
	res.Summary = g.summary
	return res
}

// validSites reports sites that cannot be generated and returns the others.
func (g *Generator) validSites() []*config.Site {
	valid := make([]*config.Site, 0, len(g.cfg.Sites))
	for i, site := range g.cfg.Sites {
		if site == nil {
			continue
		}
		if err := site.Validate(); err != nil {
			g.emit(report.Outcome{
				Kind:    "site",
				Target:  fmt.Sprintf("sites[%d]", i),
				Status:  report.StatusSkipped,
				Message: err.Error(),
				Err:     verrors.Wrap(verrors.ErrCodeValidation, "invalid site", err),
			})
			continue
		}
		valid = append(valid, site)
	}
	return valid
}

// syncKind handles the snippet, the include block and the vhosts of one
// server kind. It reports whether any file was written.
func (g *Generator) syncKind(kind driver.Kind, srv *config.Server, sites []*config.Site) bool {
	log := g.log.With(zap.String("kind", kind.Name))
	changed := false

	if srv.Config == "" {
		g.fail(kind.Name, kind.Name+".config", verrors.Config(fmt.Sprintf("%s is enabled but has no main config path", kind.Name)))
		return false
	}
	mainConfig := platform.NormalizePath(srv.Config, g.osKey)
	if _, err := os.Stat(mainConfig); err != nil {
		g.fail(kind.Name, mainConfig, verrors.WrapPath(verrors.ErrCodeIO, mainConfig, "main config is not readable", err))
		return false
	}

	if srv.Snippet != "" {
		snippetPath := kind.SnippetPath(mainConfig, g.osKey)
		content := template.Render(srv.Snippet, SnippetVars(kind, srv, g.osKey))
		log.Debug("writing snippet", zap.String("path", snippetPath))

		wrote, ok := g.writeGenerated(kind.Name, snippetPath, content)
		changed = changed || wrote
		if ok {
			payload := kind.IncludeDirective(snippetPath)
			changed = g.syncBlock(kind.Name, mainConfig, kind.Markers(), payload, block.Options{
				Force:  g.force,
				Backup: g.backup,
			}) || changed
		}
	}

	tmplPath := platform.NormalizePath(srv.Template, g.osKey)
	tmpl, err := template.Load(tmplPath, kind.Name)
	if err != nil {
		g.fail(kind.Name, tmplPath, err)
		return changed
	}

	outDir := kind.OutputDir(srv.Output, mainConfig, g.osKey)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		g.fail(kind.Name, outDir, verrors.IO(outDir, err))
		return changed
	}

	for _, site := range sites {
		if g.writeSite(kind, srv, site, tmpl, outDir) {
			changed = true
		}
	}
	return changed
}

// writeSite renders and writes one vhost file.
func (g *Generator) writeSite(kind driver.Kind, srv *config.Server, site *config.Site, tmpl, outDir string) bool {
	root := DocumentRoot(g.platform, site, g.osKey)
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		g.emit(report.Outcome{
			Kind:    kind.Name,
			Target:  site.Name,
			Status:  report.StatusSkipped,
			Message: fmt.Sprintf("document root %s does not exist", root),
		})
		return false
	}

	ip, _ := hosts.ResolveIP(g.cfg, site)
	content := template.Render(tmpl, SiteVars(kind, g.platform, srv, site, ip, g.osKey))
	path := platform.JoinPath(outDir, site.Name+".conf", g.osKey)

	wrote, _ := g.writeGenerated(kind.Name, path, content)
	return wrote
}

// syncHosts writes the hosts block into every configured hosts file. The block
// always reflects the current site list, so it is replaced regardless of force.
func (g *Generator) syncHosts() bool {
	if len(g.platform.Hosts) == 0 {
		g.log.Debug("no hosts file configured")
		return false
	}

	entries, warnings := hosts.Entries(g.cfg)
	for _, w := range warnings {
		g.log.Warn(w.Error())
	}
	payload := hosts.Payload(entries)

	changed := false
	for _, path := range g.platform.Hosts {
		path = platform.NormalizePath(path, g.osKey)
		if g.syncBlock("hosts", path, hosts.Markers, payload, block.Options{
			Force:         true,
			Backup:        g.backup,
			CreateMissing: true,
		}) {
			changed = true
		}
	}
	return changed
}

// writeGenerated writes a full-overwrite file and reports the outcome. wrote
// is set when the file changed; ok is set when the file exists afterwards.
func (g *Generator) writeGenerated(kind, path, content string) (wrote, ok bool) {
	res, err := g.writer.WriteGenerated(path, []byte(content), files.Policy{Force: g.force, Backup: g.backup})
	if err != nil {
		g.fail(kind, path, err)
		return false, false
	}

	o := report.Outcome{Kind: kind, Target: path, Message: res.Action.String(), Backup: res.Backup}
	switch res.Action {
	case files.WriteCreated, files.WriteReplaced:
		o.Status = report.StatusApplied
	case files.WriteUnchanged:
		o.Status = report.StatusSkipped
		o.Quiet = true
	case files.WriteBlocked:
		o.Status = report.StatusSkipped
		o.Err = verrors.PolicyBlocked(path)
	}
	g.emit(o)
	return res.Action.Changed(), true
}

// syncBlock syncs a managed block and reports the outcome.
func (g *Generator) syncBlock(kind, path string, m block.Markers, payload string, opts block.Options) bool {
	res, err := g.syncer.Sync(path, m, payload, opts)
	if err != nil {
		g.fail(kind, path, err)
		return false
	}

	o := report.Outcome{Kind: kind, Target: path, Message: res.Action.String(), Backup: res.Backup}
	switch res.Action {
	case block.ActionAppend, block.ActionReplace:
		o.Status = report.StatusApplied
	case block.ActionUnchanged:
		o.Status = report.StatusSkipped
		o.Quiet = true
	case block.ActionBlocked:
		o.Status = report.StatusSkipped
		o.Err = verrors.PolicyBlocked(path)
	}
	g.emit(o)
	return res.Applied()
}

func (g *Generator) fail(kind, target string, err error) {
	g.log.Debug("unit of work failed", zap.String("kind", kind), zap.String("target", target), zap.Error(err))
	g.emit(report.Outcome{
		Kind:    kind,
		Target:  target,
		Status:  report.StatusFailed,
		Message: err.Error(),
		Err:     err,
	})
}

func (g *Generator) emit(o report.Outcome) {
	g.summary.Add(o)
	g.reporter.Report(o)
}
