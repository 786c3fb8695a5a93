package cli

import (
	"errors"
	"os"
	"os/exec"

	"go.uber.org/zap"

	"github.com/jturbide/vhost/internal/config"
	"github.com/jturbide/vhost/internal/driver"
	"github.com/jturbide/vhost/internal/input"
	"github.com/jturbide/vhost/internal/platform"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader     ConfigLoader
	PlatformDetector PlatformDetector
	// NewController builds the service controller once the logger is known.
	NewController func(log *zap.Logger) driver.Controller
	CommandRunner CommandRunner
	StdinReader   input.Reader
}

// ConfigLoader handles configuration loading and saving
type ConfigLoader interface {
	// Path returns the config file path, honoring --config.
	Path() (string, error)
	Load(path string) (*config.Config, error)
	Save(cfg *config.Config, path string) error
}

// PlatformDetector handles OS detection and default paths
type PlatformDetector interface {
	Detect() (string, error)
	DefaultLayout(osKey string) (*platform.Layout, error)
}

// CommandRunner runs external commands for the edit and logs commands
type CommandRunner interface {
	Run(name string, args ...string) error
	RunInteractive(name string, args ...string) error
	LookPath(file string) (string, error)
}

// Package-level dependencies (can be overridden for testing)
var deps = defaultDeps()

func defaultDeps() *Dependencies {
	return &Dependencies{
		ConfigLoader:     &realConfigLoader{},
		PlatformDetector: &realPlatformDetector{},
		NewController: func(log *zap.Logger) driver.Controller {
			return driver.NewServiceController(log)
		},
		CommandRunner: &realCommandRunner{},
		StdinReader:   input.NewStdinReader(),
	}
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}

// Real implementations that delegate to existing functions

type realConfigLoader struct{}

func (r *realConfigLoader) Path() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	return config.ConfigPath()
}

func (r *realConfigLoader) Load(path string) (*config.Config, error) {
	return config.Load(path)
}

func (r *realConfigLoader) Save(cfg *config.Config, path string) error {
	return cfg.Save(path)
}

type realPlatformDetector struct{}

func (r *realPlatformDetector) Detect() (string, error) {
	return platform.Detect()
}

func (r *realPlatformDetector) DefaultLayout(osKey string) (*platform.Layout, error) {
	return platform.DefaultLayout(osKey)
}

type realCommandRunner struct{}

func (r *realCommandRunner) Run(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// RunInteractive attaches the command to the terminal. Exit codes 130 and 143
// (SIGINT, SIGTERM) are not errors: they end `tail -f` and editors.
func (r *realCommandRunner) RunInteractive(name string, args ...string) error {
	c := exec.Command(name, args...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	err := c.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code == 130 || code == 143 {
			return nil
		}
	}
	return err
}

func (r *realCommandRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}
