package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jturbide/vhost/internal/config"
	"github.com/jturbide/vhost/internal/input"
	"github.com/jturbide/vhost/internal/platform"
)

func testLayout(t *testing.T) *platform.Layout {
	t.Helper()
	dir := t.TempDir()
	apacheConf := filepath.Join(dir, "apache2", "apache2.conf")
	require.NoError(t, os.MkdirAll(filepath.Dir(apacheConf), 0755))
	require.NoError(t, os.WriteFile(apacheConf, []byte("\n"), 0644))

	return &platform.Layout{
		OS:    platform.Linux,
		Root:  filepath.Join(dir, "www"),
		Hosts: filepath.Join(dir, "hosts"),
		Apache: platform.ServerLayout{
			Config:  apacheConf,
			Output:  filepath.Join(dir, "apache2", "vhosts"),
			Logs:    filepath.Join(dir, "log", "apache2"),
			Service: "apache2",
		},
		Nginx: platform.ServerLayout{
			Config:  filepath.Join(dir, "nginx", "nginx.conf"),
			Output:  filepath.Join(dir, "nginx", "vhosts"),
			Logs:    filepath.Join(dir, "log", "nginx"),
			Service: "nginx",
		},
	}
}

func setupInit(t *testing.T) (*TestHelper, *platform.Layout) {
	t.Helper()
	h := NewTestHelper(t, nil)
	h.Config.File = filepath.Join(t.TempDir(), "config.yaml")
	layout := testLayout(t)
	deps.PlatformDetector = &MockPlatformDetector{OS: platform.Linux, Layout: layout}
	osFlag = ""
	initForce = false
	t.Cleanup(func() { initForce = false })
	return h, layout
}

func TestRunInit(t *testing.T) {
	h, layout := setupInit(t)

	var err error
	out := captureStdout(func() { err = runInit(initCmd, nil) })
	require.NoError(t, err)

	assert.Equal(t, 1, h.Config.SaveCalls)
	assert.Equal(t, h.Config.File, h.Config.SavedPath)
	assert.Contains(t, out, "Config written to")
	assert.Contains(t, out, "Apache enabled")

	p, err := h.Config.Cfg.Platform(platform.Linux)
	require.NoError(t, err)
	assert.Equal(t, layout.Root, p.Root)
	assert.Equal(t, config.PathList{layout.Hosts}, p.Hosts)

	assert.True(t, p.Apache.Enabled, "main config exists")
	assert.Equal(t, apacheSnippet, p.Apache.Snippet)
	assert.Equal(t, "apache2", p.Apache.Service)
	assert.False(t, p.Nginx.Enabled, "main config missing")
	assert.Equal(t, nginxSnippet, p.Nginx.Snippet)

	require.Len(t, h.Config.Cfg.Sites, 1)
	assert.NoError(t, h.Config.Cfg.Sites[0].Validate())
}

func TestRunInitExisting(t *testing.T) {
	tests := []struct {
		name    string
		answer  []string
		force   bool
		json    bool
		wantErr bool
	}{
		{name: "declined", answer: []string{"n\n"}, wantErr: true},
		{name: "no answer", wantErr: true},
		{name: "confirmed", answer: []string{"y\n"}},
		{name: "force skips the prompt", force: true},
		{name: "json never prompts", answer: []string{"y\n"}, json: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupInit(t)
			require.NoError(t, os.WriteFile(h.Config.File, []byte("sites: []\n"), 0644))
			deps.StdinReader = input.NewStringReader(tt.answer...)
			initForce = tt.force
			jsonOutput = tt.json

			var err error
			out := captureStdout(func() { err = runInit(initCmd, nil) })

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "--force")
				assert.Equal(t, 0, h.Config.SaveCalls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, h.Config.SaveCalls)
			if !tt.force {
				assert.Contains(t, out, "Overwrite? [y/N]")
			}
		})
	}
}

func TestRunInitJSON(t *testing.T) {
	h, _ := setupInit(t)
	jsonOutput = true

	out := captureStdout(func() { require.NoError(t, runInit(initCmd, nil)) })

	var result CommandResult
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	assert.True(t, result.Success)
	assert.Equal(t, h.Config.File, result.Path)
	assert.Equal(t, "init", result.Action)
}

func TestRunInitOSFlag(t *testing.T) {
	h, _ := setupInit(t)
	osFlag = platform.Mac
	deps.PlatformDetector = &MockPlatformDetector{OS: platform.Linux}

	captureStdout(func() { require.NoError(t, runInit(initCmd, nil)) })

	_, err := h.Config.Cfg.Platform(platform.Mac)
	assert.NoError(t, err)
}

func TestStarterConfigRoundTrip(t *testing.T) {
	cfg := starterConfig(testLayout(t))
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Platforms[platform.Linux], loaded.Platforms[platform.Linux])
	assert.Equal(t, cfg.Sites, loaded.Sites)
}
