// Package platform provides OS selection, path normalization and
// platform-specific default paths for web server configurations.
package platform

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Supported platform keys, as used in the configuration file.
const (
	Linux   = "linux"
	Mac     = "mac"
	Windows = "windows"
)

// ServerLayout contains the default paths for one web server kind.
type ServerLayout struct {
	Config  string
	Output  string
	Logs    string
	Service string
}

// Layout contains the detected defaults for a platform.
type Layout struct {
	OS     string
	Root   string
	Hosts  string
	Apache ServerLayout
	Nginx  ServerLayout
}

// Detect returns the platform key for the running OS.
func Detect() (string, error) {
	return keyFor(runtime.GOOS)
}

// keyFor maps a GOOS value to a platform key.
func keyFor(goos string) (string, error) {
	switch goos {
	case "linux":
		return Linux, nil
	case "darwin":
		return Mac, nil
	case "windows":
		return Windows, nil
	default:
		return "", fmt.Errorf("unsupported platform: %s", goos)
	}
}

// Separator returns the path separator convention of a platform key.
func Separator(osKey string) byte {
	if osKey == Windows {
		return '\\'
	}
	return '/'
}

// NormalizePath rewrites every path separator in p to the convention of the
// given platform key. It performs no I/O and is idempotent.
func NormalizePath(p, osKey string) string {
	if osKey == Windows {
		return strings.ReplaceAll(p, "/", `\`)
	}
	return strings.ReplaceAll(p, `\`, "/")
}

// JoinPath joins base and rel with the platform's separator. An absolute rel
// is returned as is.
func JoinPath(base, rel, osKey string) string {
	if IsAbs(rel, osKey) || base == "" {
		return NormalizePath(rel, osKey)
	}
	sep := string(Separator(osKey))
	base = strings.TrimRight(NormalizePath(base, osKey), sep)
	rel = strings.TrimLeft(NormalizePath(rel, osKey), sep)
	if rel == "" {
		return base
	}
	return base + sep + rel
}

// Dir returns all but the last element of p, using the platform's separator.
// A path without a separator yields ".".
func Dir(p, osKey string) string {
	p = NormalizePath(p, osKey)
	sep := Separator(osKey)
	i := strings.LastIndexByte(p, sep)
	switch {
	case i < 0:
		return "."
	case i == 0:
		return p[:1]
	default:
		return p[:i]
	}
}

// IsAbs reports whether p is absolute under the platform's conventions.
func IsAbs(p, osKey string) bool {
	if osKey == Windows {
		if strings.HasPrefix(p, `\\`) || strings.HasPrefix(p, "//") {
			return true
		}
		return len(p) >= 3 && p[1] == ':' && (p[2] == '\\' || p[2] == '/')
	}
	return strings.HasPrefix(p, "/")
}

// DefaultLayout returns the default paths for the given platform key.
// It checks for common installation locations on the running machine.
func DefaultLayout(osKey string) (*Layout, error) {
	switch osKey {
	case Mac:
		return detectMacLayout()
	case Linux:
		return detectLinuxLayout(), nil
	case Windows:
		return windowsLayout(), nil
	default:
		return nil, fmt.Errorf("unknown platform: %s (available: linux, mac, windows)", osKey)
	}
}

// detectMacLayout detects paths for macOS (Homebrew installations).
func detectMacLayout() (*Layout, error) {
	var prefix string
	switch {
	case pathExists("/opt/homebrew"):
		prefix = "/opt/homebrew"
	case pathExists("/usr/local"):
		prefix = "/usr/local"
	default:
		return nil, fmt.Errorf("homebrew installation not found (checked /opt/homebrew and /usr/local)")
	}

	return &Layout{
		OS:    Mac,
		Root:  os.ExpandEnv("$HOME/Sites"),
		Hosts: "/etc/hosts",
		Apache: ServerLayout{
			Config:  prefix + "/etc/httpd/httpd.conf",
			Output:  prefix + "/etc/httpd/extra/vhosts",
			Logs:    prefix + "/var/log/httpd",
			Service: "httpd",
		},
		Nginx: ServerLayout{
			Config:  prefix + "/etc/nginx/nginx.conf",
			Output:  prefix + "/etc/nginx/servers",
			Logs:    prefix + "/var/log/nginx",
			Service: "nginx",
		},
	}, nil
}

// detectLinuxLayout detects paths for Linux distributions.
func detectLinuxLayout() *Layout {
	// RHEL/CentOS ship httpd instead of apache2
	if !pathExists("/etc/apache2") && pathExists("/etc/httpd") {
		return &Layout{
			OS:    Linux,
			Root:  "/var/www",
			Hosts: "/etc/hosts",
			Apache: ServerLayout{
				Config:  "/etc/httpd/conf/httpd.conf",
				Output:  "/etc/httpd/vhosts",
				Logs:    "/var/log/httpd",
				Service: "httpd",
			},
			Nginx: ServerLayout{
				Config:  "/etc/nginx/nginx.conf",
				Output:  "/etc/nginx/vhosts",
				Logs:    "/var/log/nginx",
				Service: "nginx",
			},
		}
	}

	return &Layout{
		OS:    Linux,
		Root:  "/var/www",
		Hosts: "/etc/hosts",
		Apache: ServerLayout{
			Config:  "/etc/apache2/apache2.conf",
			Output:  "/etc/apache2/vhosts",
			Logs:    "/var/log/apache2",
			Service: "apache2",
		},
		Nginx: ServerLayout{
			Config:  "/etc/nginx/nginx.conf",
			Output:  "/etc/nginx/vhosts",
			Logs:    "/var/log/nginx",
			Service: "nginx",
		},
	}
}

func windowsLayout() *Layout {
	return &Layout{
		OS:    Windows,
		Root:  `C:\www`,
		Hosts: `C:\Windows\System32\drivers\etc\hosts`,
		Apache: ServerLayout{
			Config:  `C:\Apache24\conf\httpd.conf`,
			Output:  `C:\Apache24\conf\vhosts`,
			Logs:    `C:\Apache24\logs`,
			Service: "Apache2.4",
		},
		Nginx: ServerLayout{
			Config:  `C:\nginx\conf\nginx.conf`,
			Output:  `C:\nginx\conf\vhosts`,
			Logs:    `C:\nginx\logs`,
			Service: "nginx",
		},
	}
}

// Server returns the layout for a specific server kind.
func (l *Layout) Server(kind string) (ServerLayout, error) {
	switch kind {
	case "apache":
		return l.Apache, nil
	case "nginx":
		return l.Nginx, nil
	default:
		return ServerLayout{}, fmt.Errorf("unknown server kind: %s (available: apache, nginx)", kind)
	}
}

// pathExists checks if a path exists on the filesystem.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Platform returns a string describing the current platform.
func Platform() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
