package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Platform holds the per-OS paths and server sections
type Platform struct {
	Root   string   `yaml:"root"`
	Hosts  PathList `yaml:"hosts,omitempty"`
	SSL    SSL      `yaml:"ssl,omitempty"`
	Apache *Server  `yaml:"apache,omitempty"`
	Nginx  *Server  `yaml:"nginx,omitempty"`
}

// Server holds the settings of one web server kind on a platform
type Server struct {
	Enabled  bool   `yaml:"enabled"`
	Config   string `yaml:"config"`             // main config file, must exist
	Template string `yaml:"template,omitempty"` // vhost template file, empty = embedded default
	Output   string `yaml:"output,omitempty"`   // per-site output dir, empty = <config dir>/vhosts
	Logs     string `yaml:"logs,omitempty"`
	Snippet  string `yaml:"snippet,omitempty"` // global snippet, empty = none
	Service  string `yaml:"service,omitempty"`
}

// SSL holds a certificate/key pair
type SSL struct {
	Cert string `yaml:"cert,omitempty"`
	Key  string `yaml:"key,omitempty"`
}

// IsZero reports whether neither path is set. yaml.v3 uses it for omitempty.
func (s SSL) IsZero() bool {
	return s.Cert == "" && s.Key == ""
}

// Site represents one configured site
type Site struct {
	Name    string   `yaml:"name"`
	Root    string   `yaml:"root,omitempty"`
	Aliases []string `yaml:"aliases,omitempty"`
	IP      string   `yaml:"ip,omitempty"`
	Server  string   `yaml:"server,omitempty"`
	SSL     *SSL     `yaml:"ssl,omitempty"`
	Custom  string   `yaml:"custom,omitempty"`
	PHP     string   `yaml:"php,omitempty"`
}

// Hostnames returns the site name followed by its aliases, skipping blanks.
func (s *Site) Hostnames() []string {
	names := make([]string, 0, len(s.Aliases)+1)
	if n := strings.TrimSpace(s.Name); n != "" {
		names = append(names, n)
	}
	for _, a := range s.Aliases {
		if a = strings.TrimSpace(a); a != "" {
			names = append(names, a)
		}
	}
	return names
}

// Validate checks the fields a site cannot be generated without.
func (s *Site) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("site name cannot be empty")
	}
	if strings.ContainsAny(s.Name, " \t/\\") {
		return fmt.Errorf("site name %q cannot contain spaces or path separators", s.Name)
	}
	return nil
}

// Server returns the section for a server kind, or nil when absent.
func (p *Platform) Server(kind string) *Server {
	switch kind {
	case "apache":
		return p.Apache
	case "nginx":
		return p.Nginx
	default:
		return nil
	}
}

// CertFor returns the certificate pair for a site, falling back to the
// platform defaults field by field.
func (p *Platform) CertFor(site *Site) SSL {
	cert := p.SSL
	if site.SSL != nil {
		if site.SSL.Cert != "" {
			cert.Cert = site.SSL.Cert
		}
		if site.SSL.Key != "" {
			cert.Key = site.SSL.Key
		}
	}
	return cert
}

// PathList is a list of paths that may be written as a single YAML scalar.
type PathList []string

// UnmarshalYAML accepts either a scalar path or a sequence of paths.
func (l *PathList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		if s == "" {
			*l = nil
			return nil
		}
		*l = PathList{s}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*l = list
		return nil
	default:
		return fmt.Errorf("line %d: hosts must be a path or a list of paths", node.Line)
	}
}

// MarshalYAML writes a single path as a scalar.
func (l PathList) MarshalYAML() (interface{}, error) {
	if len(l) == 1 {
		return l[0], nil
	}
	return []string(l), nil
}
