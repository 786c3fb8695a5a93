// Package hosts computes the managed block of the system hosts file.
package hosts

import (
	"fmt"
	"strings"

	"github.com/jturbide/vhost/internal/block"
	"github.com/jturbide/vhost/internal/config"
)

// Markers delimit the managed block in every hosts file.
var Markers = block.NewMarkers("AUTOGENERATED-hosts")

// Entry is one "IP hostname" line.
type Entry struct {
	IP   string `json:"ip"`
	Host string `json:"host"`
}

// String returns the hosts file line for e.
func (e Entry) String() string {
	return e.IP + " " + e.Host
}

// ResolveIP returns the address for a site's hosts entries: the site's own ip,
// then the IP of its named server, then the configured default. An unknown
// server reference still resolves to the default but also returns an error
// describing the reference.
func ResolveIP(cfg *config.Config, site *config.Site) (string, error) {
	if ip := strings.TrimSpace(site.IP); ip != "" {
		return ip, nil
	}

	def := cfg.DefaultIP
	if def == "" {
		def = config.DefaultIP
	}

	if site.Server == "" {
		return def, nil
	}
	if ip, ok := cfg.ServerIP(site.Server); ok {
		return ip, nil
	}
	return def, fmt.Errorf("site %s references unknown server %q, using %s", site.Name, site.Server, def)
}

// Entries builds one entry per site name and alias, in configuration order.
// Sites without a name are skipped. Warnings collects unknown server
// references.
func Entries(cfg *config.Config) (entries []Entry, warnings []error) {
	for _, site := range cfg.Sites {
		if site == nil || site.Validate() != nil {
			continue
		}
		ip, err := ResolveIP(cfg, site)
		if err != nil {
			warnings = append(warnings, err)
		}
		for _, host := range site.Hostnames() {
			entries = append(entries, Entry{IP: ip, Host: host})
		}
	}
	return entries, warnings
}

// Payload joins entries into the block payload, one line each.
func Payload(entries []Entry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}
