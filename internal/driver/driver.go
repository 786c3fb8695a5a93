package driver

import (
	"fmt"

	"github.com/jturbide/vhost/internal/block"
	"github.com/jturbide/vhost/internal/platform"
)

// Kind describes one supported web server family. The set of kinds is
// closed: Apache and Nginx.
type Kind struct {
	// Name is the kind key used in configuration, markers and file names.
	Name string
	// Binaries are the control programs to look for, in order of preference.
	Binaries []string
	// TestArgs check the configuration syntax.
	TestArgs []string
	// ReloadArgs reload the server when systemctl is unavailable.
	ReloadArgs []string
	// DefaultService is the service name used with systemctl.
	DefaultService string

	include func(path string) string
}

// Apache is the Apache httpd server kind.
var Apache = Kind{
	Name:           "apache",
	Binaries:       []string{"apache2ctl", "apachectl", "httpd"},
	TestArgs:       []string{"-t"},
	ReloadArgs:     []string{"-k", "graceful"},
	DefaultService: "apache2",
	include: func(path string) string {
		return "Include " + path
	},
}

// Nginx is the nginx server kind.
var Nginx = Kind{
	Name:           "nginx",
	Binaries:       []string{"nginx"},
	TestArgs:       []string{"-t"},
	ReloadArgs:     []string{"-s", "reload"},
	DefaultService: "nginx",
	include: func(path string) string {
		return "include " + path + ";"
	},
}

// Kinds returns every supported kind in processing order.
func Kinds() []Kind {
	return []Kind{Apache, Nginx}
}

// Names returns the names of every supported kind.
func Names() []string {
	kinds := Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.Name
	}
	return names
}

// Lookup returns the kind with the given name.
func Lookup(name string) (Kind, error) {
	for _, k := range Kinds() {
		if k.Name == name {
			return k, nil
		}
	}
	return Kind{}, fmt.Errorf("unknown server kind: %s (available: apache, nginx)", name)
}

// String returns the kind name.
func (k Kind) String() string {
	return k.Name
}

// IncludeDirective returns the statement that includes path from the main
// config file.
func (k Kind) IncludeDirective(path string) string {
	return k.include(path)
}

// Markers returns the marker pair of the kind's include block.
func (k Kind) Markers() block.Markers {
	return block.NewMarkers("AUTOGENERATED-" + k.Name)
}

// SnippetFileName returns the name of the global snippet file.
func (k Kind) SnippetFileName() string {
	return "autogenerated-" + k.Name + ".conf"
}

// SnippetPath returns where the global snippet is written: beside the main
// config file.
func (k Kind) SnippetPath(mainConfig, osKey string) string {
	return platform.JoinPath(platform.Dir(mainConfig, osKey), k.SnippetFileName(), osKey)
}

// OutputDir returns the per-site vhost directory: output when set, otherwise
// a vhosts directory beside the main config file.
func (k Kind) OutputDir(output, mainConfig, osKey string) string {
	if output != "" {
		return platform.NormalizePath(output, osKey)
	}
	return platform.JoinPath(platform.Dir(mainConfig, osKey), "vhosts", osKey)
}

// Service returns name, or the kind's default service when name is empty.
func (k Kind) Service(name string) string {
	if name != "" {
		return name
	}
	return k.DefaultService
}
