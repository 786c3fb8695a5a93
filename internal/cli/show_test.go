package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jturbide/vhost/internal/config"
)

func resetShowFlags(t *testing.T) {
	t.Helper()
	showKind = ""
	t.Cleanup(func() { showKind = "" })
}

func TestRunShow(t *testing.T) {
	f := newSiteFixture(t)
	resetShowFlags(t)

	var err error
	out := captureStdout(func() { err = runShow(showCmd, []string{"a.test"}) })
	require.NoError(t, err)

	assert.Contains(t, out, "Name:       a.test")
	assert.Contains(t, out, "Aliases:    www.a.test")
	assert.Contains(t, out, "Apache Vhost")
	assert.Contains(t, out, "# "+filepath.Join(filepath.Dir(f.mainConfig), "vhosts", "a.test.conf"))
	assert.Contains(t, out, "ServerName a.test")
	assert.NoFileExists(t, filepath.Join(filepath.Dir(f.mainConfig), "vhosts", "a.test.conf"), "show never writes")
}

func TestRunShowJSON(t *testing.T) {
	f := newSiteFixture(t)
	resetShowFlags(t)
	certPath, keyPath := writeTestCert(t, f.dir, notAfter, "a.test", "www.a.test")
	f.cfg.Sites[0].SSL = &config.SSL{Cert: certPath, Key: keyPath}
	jsonOutput = true

	out := captureStdout(func() { require.NoError(t, runShow(showCmd, []string{"a.test"})) })

	var detail showDetail
	require.NoError(t, json.Unmarshal([]byte(out), &detail), out)
	assert.Equal(t, "a.test", detail.Name)
	assert.Equal(t, "127.0.0.1", detail.IP)
	require.NotNil(t, detail.SSLExpires)
	assert.True(t, detail.SSLExpires.Equal(notAfter))
	require.Len(t, detail.VHosts, 1)
	assert.Equal(t, "apache", detail.VHosts[0].Kind)
	assert.Contains(t, detail.VHosts[0].Content, `SSLCertificateFile "`+certPath+`"`)
}

func TestRunShowErrors(t *testing.T) {
	tests := []struct {
		name        string
		site        string
		kind        string
		errContains string
	}{
		{"unknown site", "missing.test", "", "missing.test"},
		{"invalid name", "bad name", "", "spaces"},
		{"unknown kind", "a.test", "caddy", "unknown server kind"},
		{"kind not enabled", "a.test", "nginx", "not enabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newSiteFixture(t)
			resetShowFlags(t)
			showKind = tt.kind

			err := runShow(showCmd, []string{tt.site})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
