package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jturbide/vhost/internal/config"
)

func resetLogsFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		logsKind = ""
		logsAccess = false
		logsError = false
		logsFollow = false
		logsLines = 20
	}
	reset()
	t.Cleanup(reset)
}

func writeLogs(t *testing.T, f *siteFixture, names ...string) []string {
	t.Helper()
	var paths []string
	for _, n := range names {
		p := filepath.Join(f.logs, n)
		require.NoError(t, os.WriteFile(p, []byte("GET /\n"), 0644))
		paths = append(paths, p)
	}
	return paths
}

func TestRunLogs(t *testing.T) {
	tests := []struct {
		name        string
		site        string
		files       []string
		setupFlags  func()
		setup       func(*siteFixture)
		wantArgs    func(logs []string) []string
		wantErr     bool
		errContains string
	}{
		{
			name:  "both logs",
			site:  "a.test",
			files: []string{"a.test-access.log", "a.test-error.log"},
			wantArgs: func(logs []string) []string {
				return []string{"/usr/bin/tail", "-n", "20", logs[0], logs[1]}
			},
		},
		{
			name:       "access only and follow",
			site:       "a.test",
			files:      []string{"a.test-access.log", "a.test-error.log"},
			setupFlags: func() {
				logsAccess = true
				logsFollow = true
				logsLines = 50
			},
			wantArgs: func(logs []string) []string {
				return []string{"/usr/bin/tail", "-f", "-n", "50", logs[0]}
			},
		},
		{
			name:       "error only",
			site:       "a.test",
			files:      []string{"a.test-access.log", "a.test-error.log"},
			setupFlags: func() { logsError = true },
			wantArgs: func(logs []string) []string {
				return []string{"/usr/bin/tail", "-n", "20", logs[1]}
			},
		},
		{
			name:  "site not in config still reads logs",
			site:  "old.test",
			files: []string{"old.test-error.log"},
			wantArgs: func(logs []string) []string {
				return []string{"/usr/bin/tail", "-n", "20", logs[0]}
			},
		},
		{
			name:        "no log files",
			site:        "a.test",
			wantErr:     true,
			errContains: "no apache log files found",
		},
		{
			name:        "invalid site name",
			site:        "bad name",
			wantErr:     true,
			errContains: "spaces",
		},
		{
			name:        "kind without logs",
			site:        "a.test",
			setupFlags:  func() { logsKind = "nginx" },
			wantErr:     true,
			errContains: "no log directory configured for nginx",
		},
		{
			name:        "no kind with logs",
			site:        "a.test",
			setup:       func(f *siteFixture) { f.cfg.Platforms[osFlag].Apache.Logs = "" },
			wantErr:     true,
			errContains: "no enabled server kind",
		},
		{
			name:  "explicit kind",
			site:  "a.test",
			files: []string{"a.test-access.log"},
			setup: func(f *siteFixture) {
				f.cfg.Platforms[osFlag].Nginx = &config.Server{Enabled: false, Logs: f.logs}
			},
			setupFlags: func() { logsKind = "nginx" },
			wantArgs: func(logs []string) []string {
				return []string{"/usr/bin/tail", "-n", "20", logs[0]}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSiteFixture(t)
			resetLogsFlags(t)
			if tt.setup != nil {
				tt.setup(f)
			}
			if tt.setupFlags != nil {
				tt.setupFlags()
			}
			logs := writeLogs(t, f, tt.files...)

			var err error
			captureStdout(func() { err = runLogs(logsCmd, []string{tt.site}) })

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.Empty(t, f.helper.Runner.Calls)
				return
			}
			require.NoError(t, err)
			require.Len(t, f.helper.Runner.Calls, 1)
			assert.Equal(t, tt.wantArgs(logs), f.helper.Runner.Calls[0])
		})
	}
}

func TestRunLogsTailErrors(t *testing.T) {
	t.Run("tail missing", func(t *testing.T) {
		f := newSiteFixture(t)
		resetLogsFlags(t)
		writeLogs(t, f, "a.test-access.log")
		f.helper.Runner.LookPathFunc = func(string) (string, error) { return "", errors.New("not found") }

		var err error
		captureStdout(func() { err = runLogs(logsCmd, []string{"a.test"}) })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tail command not found")
	})

	t.Run("tail fails", func(t *testing.T) {
		f := newSiteFixture(t)
		resetLogsFlags(t)
		writeLogs(t, f, "a.test-access.log")
		f.helper.Runner.Err = errors.New("exit status 1")
		f.helper.Runner.LookPathFunc = func(file string) (string, error) { return "/bin/" + file, nil }

		var err error
		captureStdout(func() { err = runLogs(logsCmd, []string{"a.test"}) })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read logs")
	})
}
