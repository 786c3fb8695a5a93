package platform

import (
	"runtime"
	"testing"
)

func TestDetect(t *testing.T) {
	key, err := Detect()

	switch runtime.GOOS {
	case "linux":
		if err != nil || key != Linux {
			t.Errorf("Detect() = %q, %v; want linux", key, err)
		}
	case "darwin":
		if err != nil || key != Mac {
			t.Errorf("Detect() = %q, %v; want mac", key, err)
		}
	case "windows":
		if err != nil || key != Windows {
			t.Errorf("Detect() = %q, %v; want windows", key, err)
		}
	default:
		if err == nil {
			t.Errorf("expected error on unsupported platform %s, but got nil", runtime.GOOS)
		}
	}
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		goos    string
		want    string
		wantErr bool
	}{
		{"linux", Linux, false},
		{"darwin", Mac, false},
		{"windows", Windows, false},
		{"plan9", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			got, err := keyFor(tt.goos)
			if (err != nil) != tt.wantErr {
				t.Fatalf("keyFor(%q) error = %v, wantErr %v", tt.goos, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("keyFor(%q) = %q, want %q", tt.goos, got, tt.want)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		os   string
		want string
	}{
		{"linux keeps slashes", "/var/www/site", Linux, "/var/www/site"},
		{"linux converts backslashes", `www\site\public`, Linux, "www/site/public"},
		{"mac converts backslashes", `a\b/c`, Mac, "a/b/c"},
		{"windows converts slashes", "C:/www/site", Windows, `C:\www\site`},
		{"windows keeps backslashes", `C:\www\site`, Windows, `C:\www\site`},
		{"empty", "", Linux, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePath(tt.path, tt.os)
			if got != tt.want {
				t.Errorf("NormalizePath(%q, %q) = %q, want %q", tt.path, tt.os, got, tt.want)
			}
			if again := NormalizePath(got, tt.os); again != got {
				t.Errorf("NormalizePath is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		name string
		base string
		rel  string
		os   string
		want string
	}{
		{"relative", "/var/www", "site/public", Linux, "/var/www/site/public"},
		{"trailing separators", "/var/www/", "/site", Linux, "/site"},
		{"leading backslash is relative on linux", "/var/www/", `\site`, Linux, "/var/www/site"},
		{"absolute rel wins", "/var/www", "/srv/site", Linux, "/srv/site"},
		{"empty rel", "/var/www", "", Linux, "/var/www"},
		{"empty base", "", "site", Linux, "site"},
		{"windows", `C:\www`, "site/public", Windows, `C:\www\site\public`},
		{"windows absolute", `C:\www`, "D:/sites/a", Windows, `D:\sites\a`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JoinPath(tt.base, tt.rel, tt.os)
			if got != tt.want {
				t.Errorf("JoinPath(%q, %q, %q) = %q, want %q", tt.base, tt.rel, tt.os, got, tt.want)
			}
		})
	}
}

func TestDefaultLayout(t *testing.T) {
	for _, key := range []string{Linux, Windows} {
		t.Run(key, func(t *testing.T) {
			layout, err := DefaultLayout(key)
			if err != nil {
				t.Fatalf("DefaultLayout(%q) failed: %v", key, err)
			}
			if layout.OS != key {
				t.Errorf("OS = %q, want %q", layout.OS, key)
			}
			if layout.Hosts == "" {
				t.Error("hosts path is empty")
			}
			if layout.Apache.Config == "" || layout.Nginx.Config == "" {
				t.Error("main config paths should be set")
			}
			if layout.Apache.Service == "" || layout.Nginx.Service == "" {
				t.Error("service names should be set")
			}
		})
	}

	if _, err := DefaultLayout("beos"); err == nil {
		t.Error("expected error for unknown platform")
	}
}

func TestLayoutServer(t *testing.T) {
	layout, err := DefaultLayout(Linux)
	if err != nil {
		t.Fatalf("DefaultLayout failed: %v", err)
	}

	apache, err := layout.Server("apache")
	if err != nil {
		t.Fatalf("Server(apache) failed: %v", err)
	}
	if apache.Config != layout.Apache.Config {
		t.Errorf("Server(apache) = %+v", apache)
	}

	nginx, err := layout.Server("nginx")
	if err != nil {
		t.Fatalf("Server(nginx) failed: %v", err)
	}
	if nginx.Config != "/etc/nginx/nginx.conf" {
		t.Errorf("nginx config = %q", nginx.Config)
	}

	if _, err := layout.Server("caddy"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestPathExists(t *testing.T) {
	dir := t.TempDir()
	if !pathExists(dir) {
		t.Error("temp dir should exist")
	}

	if pathExists("/this/path/should/definitely/not/exist/anywhere") {
		t.Error("non-existent path should return false")
	}
}

func TestPlatform(t *testing.T) {
	if Platform() != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform() = %q", Platform())
	}
}

func TestDir(t *testing.T) {
	tests := []struct {
		path string
		os   string
		want string
	}{
		{"/etc/apache2/apache2.conf", Linux, "/etc/apache2"},
		{"/httpd.conf", Linux, "/"},
		{"httpd.conf", Linux, "."},
		{`C:\Apache24\conf\httpd.conf`, Windows, `C:\Apache24\conf`},
		{"C:/nginx/conf/nginx.conf", Windows, `C:\nginx\conf`},
		{`\etc\nginx\nginx.conf`, Linux, "/etc/nginx"},
	}

	for _, tt := range tests {
		if got := Dir(tt.path, tt.os); got != tt.want {
			t.Errorf("Dir(%q, %q) = %q, want %q", tt.path, tt.os, got, tt.want)
		}
	}
}
