package cli

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jturbide/vhost/internal/config"
	"github.com/jturbide/vhost/internal/driver"
	"github.com/jturbide/vhost/internal/output"
)

// loadConfig resolves the config path and loads it
func loadConfig() (*config.Config, string, error) {
	path, err := deps.ConfigLoader.Path()
	if err != nil {
		return nil, "", err
	}

	log.Debug("loading config", zap.String("path", path))
	cfg, err := deps.ConfigLoader.Load(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, path, nil
}

// selectOS picks the platform section: --os, then the config's os, then the
// running OS.
func selectOS(cfg *config.Config) (string, error) {
	if osFlag != "" {
		return osFlag, nil
	}
	if cfg != nil && cfg.OS != "" {
		return cfg.OS, nil
	}
	return deps.PlatformDetector.Detect()
}

// loadPlatform loads the config and the platform section in use
func loadPlatform() (*config.Config, string, *config.Platform, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, "", nil, err
	}
	osKey, err := selectOS(cfg)
	if err != nil {
		return nil, "", nil, err
	}
	p, err := cfg.Platform(osKey)
	if err != nil {
		return nil, "", nil, err
	}
	return cfg, osKey, p, nil
}

// enabledKinds returns the server kinds enabled on p, in processing order
func enabledKinds(p *config.Platform) []driver.Kind {
	var kinds []driver.Kind
	for _, k := range driver.Kinds() {
		if srv := p.Server(k.Name); srv != nil && srv.Enabled {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// testAndReload config-tests every kind and reloads the ones that pass.
// A failed test skips the reload of that kind only.
func testAndReload(ctl driver.Controller, p *config.Platform, kinds []driver.Kind, reload bool) []error {
	var errs []error
	for _, kind := range kinds {
		if !jsonOutput {
			output.Info("Testing %s configuration...", kind)
		}
		if err := ctl.Test(kind); err != nil {
			errs = append(errs, fmt.Errorf("%s configuration test failed, not reloading: %w", kind, err))
			continue
		}
		if !reload {
			continue
		}

		service := ""
		if srv := p.Server(kind.Name); srv != nil {
			service = srv.Service
		}
		if !jsonOutput {
			output.Info("Reloading %s...", kind)
		}
		if err := ctl.Reload(kind, service); err != nil {
			errs = append(errs, fmt.Errorf("failed to reload %s: %w", kind, err))
		}
	}
	return errs
}

// outputResult handles JSON or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}

// validateSiteName checks a site name given on the command line
func validateSiteName(name string) error {
	if name == "" {
		return fmt.Errorf("site name cannot be empty")
	}
	if strings.ContainsAny(name, " \t") {
		return fmt.Errorf("site name cannot contain spaces")
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
		return fmt.Errorf("site name cannot start or end with hyphen")
	}
	return nil
}

// CommandResult represents a common result structure for CLI commands
type CommandResult struct {
	Success bool   `json:"success"`
	Path    string `json:"path"`
	Action  string `json:"action,omitempty"`
	Message string `json:"message,omitempty"`
}
