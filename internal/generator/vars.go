package generator

import (
	"strings"

	"github.com/jturbide/vhost/internal/config"
	"github.com/jturbide/vhost/internal/driver"
	"github.com/jturbide/vhost/internal/platform"
	"github.com/jturbide/vhost/internal/template"
)

// DocumentRoot returns the absolute document root of a site: its root joined
// to the platform root, or the site name when the site sets no root.
func DocumentRoot(p *config.Platform, site *config.Site, osKey string) string {
	rel := site.Root
	if strings.TrimSpace(rel) == "" {
		rel = site.Name
	}
	return platform.JoinPath(p.Root, rel, osKey)
}

// SiteVars returns the placeholder values of a site's vhost.
func SiteVars(kind driver.Kind, p *config.Platform, srv *config.Server, site *config.Site, ip, osKey string) template.Vars {
	cert := p.CertFor(site)
	return template.Vars{
		"name":     site.Name,
		"aliases":  strings.Join(nonBlank(site.Aliases), " "),
		"root":     DocumentRoot(p, site, osKey),
		"ssl_cert": platform.NormalizePath(cert.Cert, osKey),
		"ssl_key":  platform.NormalizePath(cert.Key, osKey),
		"custom":   site.Custom,
		"php":      site.PHP,
		"log_dir":  platform.NormalizePath(srv.Logs, osKey),
		"ip":       ip,
		"kind":     kind.Name,
	}
}

// SnippetVars returns the placeholder values of a kind's global snippet.
func SnippetVars(kind driver.Kind, srv *config.Server, osKey string) template.Vars {
	return template.Vars{
		"vhosts_dir": kind.OutputDir(srv.Output, srv.Config, osKey),
		"log_dir":    platform.NormalizePath(srv.Logs, osKey),
		"kind":       kind.Name,
	}
}

func nonBlank(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
