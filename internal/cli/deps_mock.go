package cli

import (
	"go.uber.org/zap"

	"github.com/jturbide/vhost/internal/config"
	"github.com/jturbide/vhost/internal/driver"
	"github.com/jturbide/vhost/internal/input"
	"github.com/jturbide/vhost/internal/platform"
)

// MockConfigLoader is a test double for ConfigLoader
type MockConfigLoader struct {
	File      string
	Cfg       *config.Config
	LoadErr   error
	SaveErr   error
	SaveCalls int
	SavedPath string
}

func (m *MockConfigLoader) Path() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	if m.File == "" {
		return "/tmp/vhost-test/config.yaml", nil
	}
	return m.File, nil
}

func (m *MockConfigLoader) Load(path string) (*config.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Cfg == nil {
		m.Cfg = config.New()
	}
	return m.Cfg, nil
}

func (m *MockConfigLoader) Save(cfg *config.Config, path string) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Cfg = cfg
	m.SavedPath = path
	return nil
}

// MockPlatformDetector is a test double for PlatformDetector
type MockPlatformDetector struct {
	OS     string
	Layout *platform.Layout
	Err    error
}

func (m *MockPlatformDetector) Detect() (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.OS == "" {
		return platform.Linux, nil
	}
	return m.OS, nil
}

func (m *MockPlatformDetector) DefaultLayout(osKey string) (*platform.Layout, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Layout != nil {
		return m.Layout, nil
	}
	return &platform.Layout{
		OS:    osKey,
		Root:  "/var/www",
		Hosts: "/etc/hosts",
		Apache: platform.ServerLayout{
			Config:  "/etc/apache2/apache2.conf",
			Output:  "/etc/apache2/vhosts",
			Logs:    "/var/log/apache2",
			Service: "apache2",
		},
		Nginx: platform.ServerLayout{
			Config:  "/etc/nginx/nginx.conf",
			Output:  "/etc/nginx/vhosts",
			Logs:    "/var/log/nginx",
			Service: "nginx",
		},
	}, nil
}

// MockCommandRunner is a test double for CommandRunner
type MockCommandRunner struct {
	Calls        [][]string
	LookPathFunc func(file string) (string, error)
	RunFunc      func(name string, args ...string) error
	Err          error
}

func (m *MockCommandRunner) Run(name string, args ...string) error {
	m.Calls = append(m.Calls, append([]string{name}, args...))
	if m.RunFunc != nil {
		return m.RunFunc(name, args...)
	}
	return m.Err
}

func (m *MockCommandRunner) RunInteractive(name string, args ...string) error {
	return m.Run(name, args...)
}

func (m *MockCommandRunner) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return "/usr/bin/" + file, nil
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults
func NewMockDeps() *MockDependenciesBuilder {
	ctl := driver.NewMockController()
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			ConfigLoader:     &MockConfigLoader{Cfg: config.New()},
			PlatformDetector: &MockPlatformDetector{},
			NewController:    func(*zap.Logger) driver.Controller { return ctl },
			CommandRunner:    &MockCommandRunner{},
			StdinReader:      input.NewStringReader(),
		},
	}
}

// WithConfig sets the config for the mock
func (b *MockDependenciesBuilder) WithConfig(cfg *config.Config) *MockDependenciesBuilder {
	b.deps.ConfigLoader = &MockConfigLoader{Cfg: cfg}
	return b
}

// WithConfigLoader sets a custom config loader
func (b *MockDependenciesBuilder) WithConfigLoader(loader ConfigLoader) *MockDependenciesBuilder {
	b.deps.ConfigLoader = loader
	return b
}

// WithController sets the service controller
func (b *MockDependenciesBuilder) WithController(ctl driver.Controller) *MockDependenciesBuilder {
	b.deps.NewController = func(*zap.Logger) driver.Controller { return ctl }
	return b
}

// WithCommandRunner sets the command runner
func (b *MockDependenciesBuilder) WithCommandRunner(r CommandRunner) *MockDependenciesBuilder {
	b.deps.CommandRunner = r
	return b
}

// WithStdinInput sets the answers read from stdin
func (b *MockDependenciesBuilder) WithStdinInput(inputs ...string) *MockDependenciesBuilder {
	b.deps.StdinReader = input.NewStringReader(inputs...)
	return b
}

// WithPlatform sets the detected OS and its layout
func (b *MockDependenciesBuilder) WithPlatform(osKey string, layout *platform.Layout) *MockDependenciesBuilder {
	b.deps.PlatformDetector = &MockPlatformDetector{OS: osKey, Layout: layout}
	return b
}

// WithPlatformError sets an error for platform detection
func (b *MockDependenciesBuilder) WithPlatformError(err error) *MockDependenciesBuilder {
	b.deps.PlatformDetector = &MockPlatformDetector{Err: err}
	return b
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}

// TestHelper swaps in mock dependencies and restores the previous ones and
// the persistent flags when the test ends.
type TestHelper struct {
	OldDeps    *Dependencies
	Config     *MockConfigLoader
	Controller *driver.MockController
	Runner     *MockCommandRunner
}

// NewTestHelper installs mocks serving cfg for the duration of the test.
func NewTestHelper(t interface {
	Helper()
	Cleanup(func())
}, cfg *config.Config) *TestHelper {
	t.Helper()

	h := &TestHelper{
		OldDeps:    deps,
		Config:     &MockConfigLoader{Cfg: cfg},
		Controller: driver.NewMockController(),
		Runner:     &MockCommandRunner{},
	}
	deps = NewMockDeps().
		WithConfigLoader(h.Config).
		WithController(h.Controller).
		WithCommandRunner(h.Runner).
		Build()

	oldFlags := globalFlags{configFile, osFlag, jsonOutput, verbose}
	t.Cleanup(func() {
		deps = h.OldDeps
		configFile, osFlag, jsonOutput, verbose = oldFlags.config, oldFlags.os, oldFlags.json, oldFlags.verbose
	})
	return h
}

type globalFlags struct {
	config  string
	os      string
	json    bool
	verbose bool
}
