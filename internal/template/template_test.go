package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verrors "github.com/jturbide/vhost/internal/errors"
)

func TestRender(t *testing.T) {
	testCases := []struct {
		name string
		tmpl string
		vars Vars
		want string
	}{
		{
			name: "unresolved placeholder is removed",
			tmpl: "{{a}}-{{b}}",
			vars: Vars{"a": "x"},
			want: "x-",
		},
		{
			name: "every occurrence is replaced",
			tmpl: "{{name}} {{name}}",
			vars: Vars{"name": "a.test"},
			want: "a.test a.test",
		},
		{
			name: "values are inserted verbatim",
			tmpl: "{{a}}|{{b}}",
			vars: Vars{"a": "{{b}}", "b": "y"},
			want: "{{b}}|y",
		},
		{
			name: "keys are case sensitive",
			tmpl: "{{Name}}/{{name}}",
			vars: Vars{"name": "x"},
			want: "/x",
		},
		{
			name: "extra vars are ignored",
			tmpl: "Listen 80",
			vars: Vars{"unused": "x"},
			want: "Listen 80",
		},
		{
			name: "empty value",
			tmpl: "ServerAlias {{aliases}}",
			vars: Vars{"aliases": ""},
			want: "ServerAlias ",
		},
		{
			name: "nil vars strip everything",
			tmpl: "a{{x}}b{{y z}}c",
			want: "abc",
		},
		{
			name: "extra opening brace before a known token",
			tmpl: "{{{x}}}",
			vars: Vars{"x": "v"},
			want: "{v}",
		},
		{
			name: "unclosed prefix does not hide a known token",
			tmpl: "{{a{{b}}",
			vars: Vars{"b": "B"},
			want: "{{aB",
		},
		{
			name: "unresolved placeholder spanning lines is removed",
			tmpl: "a{{foo\nbar}}b",
			want: "ab",
		},
		{
			name: "unresolved placeholder between known tokens",
			tmpl: "{{a}}{{gone}}{{a}}",
			vars: Vars{"a": "x"},
			want: "xx",
		},
		{
			name: "single braces are left alone",
			tmpl: "location { {{name}} }",
			vars: Vars{"name": "n"},
			want: "location { n }",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Render(tc.tmpl, tc.vars))
		})
	}
}

func TestRenderLeavesNoPlaceholders(t *testing.T) {
	for _, kind := range []string{"apache", "nginx"} {
		tmpl, err := Default(kind)
		require.NoError(t, err)
		out := Render(tmpl, Vars{"name": "a.test"})
		assert.Empty(t, Placeholders(out), kind)
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("{{root}} {{name}} {{root}} {{ aliases }}")
	assert.Equal(t, []string{" aliases ", "name", "root"}, got)
	assert.Nil(t, Placeholders("no tokens"))
}

func TestUnknown(t *testing.T) {
	got := Unknown("{{name}} {{servername}} {{root}}", Vars{"name": "", "root": "/r"})
	assert.Equal(t, []string{"servername"}, got)
}

func TestDefault(t *testing.T) {
	apache, err := Default("apache")
	require.NoError(t, err)
	assert.Contains(t, apache, "<VirtualHost *:80>")

	nginx, err := Default("nginx")
	require.NoError(t, err)
	assert.Contains(t, nginx, "server_name {{name}} {{aliases}};")

	_, err = Default("caddy")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("ServerName {{name}}\n"), 0644))

	got, err := Load(path, "apache")
	require.NoError(t, err)
	assert.Equal(t, "ServerName {{name}}\n", got)

	got, err = Load("", "nginx")
	require.NoError(t, err)
	want, _ := Default("nginx")
	assert.Equal(t, want, got)

	_, err = Load(filepath.Join(dir, "missing.tmpl"), "apache")
	require.Error(t, err)
	assert.ErrorIs(t, err, verrors.ErrIO)
}

func TestDefaultTemplatesGolden(t *testing.T) {
	vars := Vars{
		"name":     "example.test",
		"aliases":  "www.example.test api.example.test",
		"root":     "/var/www/example/public",
		"ssl_cert": "/etc/ssl/certs/dev.pem",
		"ssl_key":  "/etc/ssl/private/dev.key",
		"custom":   "    # custom directives",
		"php":      "8.3",
		"ip":       "127.0.0.1",
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, kind := range []string{"apache", "nginx"} {
		t.Run(kind, func(t *testing.T) {
			tmpl, err := Default(kind)
			require.NoError(t, err)

			kindVars := Vars{"kind": kind, "log_dir": "/var/log/" + kind}
			for k, v := range vars {
				kindVars[k] = v
			}
			g.Assert(t, kind, []byte(Render(tmpl, kindVars)))
		})
	}
}
