package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/jturbide/vhost/internal/config"
	"github.com/jturbide/vhost/internal/platform"
)

func init() {
	color.NoColor = true
}

// captureStdout captures stdout during function execution
func captureStdout(f func()) string {
	old := os.Stdout
	oldColor := color.Output
	r, w, _ := os.Pipe()
	os.Stdout = w
	color.Output = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	f()

	w.Close()
	os.Stdout = old
	color.Output = oldColor
	return <-done
}

// siteFixture is a platform rooted in a temp dir with one apache server.
type siteFixture struct {
	dir        string
	root       string
	mainConfig string
	hostsFile  string
	logs       string
	cfg        *config.Config
	helper     *TestHelper
}

func newSiteFixture(t *testing.T) *siteFixture {
	t.Helper()

	osKey, err := platform.Detect()
	require.NoError(t, err)

	dir := t.TempDir()
	f := &siteFixture{
		dir:        dir,
		root:       filepath.Join(dir, "www"),
		mainConfig: filepath.Join(dir, "apache", "httpd.conf"),
		hostsFile:  filepath.Join(dir, "hosts"),
		logs:       filepath.Join(dir, "logs"),
	}
	require.NoError(t, os.MkdirAll(filepath.Join(f.root, "a"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Dir(f.mainConfig), 0755))
	require.NoError(t, os.MkdirAll(f.logs, 0755))
	require.NoError(t, os.WriteFile(f.mainConfig, []byte("ServerRoot \"/x\"\n"), 0644))
	require.NoError(t, os.WriteFile(f.hostsFile, []byte("127.0.0.1 localhost\n"), 0644))

	f.cfg = config.New()
	f.cfg.Platforms[osKey] = &config.Platform{
		Root:  f.root,
		Hosts: config.PathList{f.hostsFile},
		Apache: &config.Server{
			Enabled: true,
			Config:  f.mainConfig,
			Logs:    f.logs,
			Snippet: apacheSnippet,
			Service: "apache2",
		},
	}
	f.cfg.Sites = []*config.Site{
		{Name: "a.test", Root: "a", Aliases: []string{"www.a.test"}},
		{Name: "b.test", IP: "10.0.0.5"},
	}

	f.helper = NewTestHelper(t, f.cfg)
	f.helper.Config.File = filepath.Join(dir, "config.yaml")
	osFlag = osKey
	jsonOutput = false
	return f
}

func (f *siteFixture) read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
