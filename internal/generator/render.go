package generator

import (
	"fmt"

	"github.com/jturbide/vhost/internal/driver"
	"github.com/jturbide/vhost/internal/hosts"
	"github.com/jturbide/vhost/internal/platform"
	"github.com/jturbide/vhost/internal/template"
)

// Preview is the rendered vhost of one site for one server kind.
type Preview struct {
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Content string `json:"content"`
}

// RenderSite renders the vhost of a site for every enabled kind, or for the
// single kind named by only, without writing anything.
func (g *Generator) RenderSite(name, only string) ([]Preview, error) {
	site, err := g.cfg.GetSite(name)
	if err != nil {
		return nil, err
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}
	ip, _ := hosts.ResolveIP(g.cfg, site)

	var previews []Preview
	for _, kind := range driver.Kinds() {
		if only != "" && kind.Name != only {
			continue
		}
		srv := g.platform.Server(kind.Name)
		if srv == nil || !srv.Enabled {
			continue
		}

		tmpl, err := template.Load(platform.NormalizePath(srv.Template, g.osKey), kind.Name)
		if err != nil {
			return nil, err
		}
		outDir := kind.OutputDir(srv.Output, srv.Config, g.osKey)
		previews = append(previews, Preview{
			Kind:    kind.Name,
			Path:    platform.JoinPath(outDir, site.Name+".conf", g.osKey),
			Content: template.Render(tmpl, SiteVars(kind, g.platform, srv, site, ip, g.osKey)),
		})
	}

	if len(previews) == 0 {
		if only != "" {
			return nil, fmt.Errorf("server kind %s is not enabled", only)
		}
		return nil, fmt.Errorf("no server kind is enabled")
	}
	return previews, nil
}
