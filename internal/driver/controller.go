package driver

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	verrors "github.com/jturbide/vhost/internal/errors"
	"github.com/jturbide/vhost/internal/executor"
)

// Controller tests and reloads web servers after their configuration changed.
type Controller interface {
	// Binary returns the first control program of kind found on PATH.
	Binary(kind Kind) (string, error)

	// Test validates the server configuration syntax.
	Test(kind Kind) error

	// Reload reloads the server through its service, falling back to the
	// server's own control program.
	Reload(kind Kind, service string) error
}

// ServiceController implements Controller with system commands.
type ServiceController struct {
	exec executor.CommandExecutor
	log  *zap.Logger
}

// NewServiceController creates a controller that runs real commands.
func NewServiceController(log *zap.Logger) *ServiceController {
	return NewServiceControllerWithExecutor(executor.NewSystemExecutor(), log)
}

// NewServiceControllerWithExecutor creates a controller with a custom executor (for testing)
func NewServiceControllerWithExecutor(exec executor.CommandExecutor, log *zap.Logger) *ServiceController {
	if log == nil {
		log = zap.NewNop()
	}
	return &ServiceController{exec: exec, log: log}
}

// Binary returns the first control program of kind found on PATH.
func (c *ServiceController) Binary(kind Kind) (string, error) {
	for _, name := range kind.Binaries {
		if _, err := c.exec.LookPath(name); err == nil {
			return name, nil
		}
	}
	return "", verrors.Wrap(verrors.ErrCodeService,
		fmt.Sprintf("%s is not installed (looked for %s)", kind.Name, strings.Join(kind.Binaries, ", ")), nil)
}

// Test validates the server configuration syntax.
func (c *ServiceController) Test(kind Kind) error {
	bin, err := c.Binary(kind)
	if err != nil {
		return err
	}

	c.log.Debug("testing configuration", zap.String("kind", kind.Name), zap.String("binary", bin))
	output, err := c.exec.Execute(bin, kind.TestArgs...)
	if err != nil {
		return verrors.Wrap(verrors.ErrCodeService,
			fmt.Sprintf("%s config test failed: %s", kind.Name, strings.TrimSpace(string(output))), err)
	}
	return nil
}

// Reload reloads the server to apply changes.
func (c *ServiceController) Reload(kind Kind, service string) error {
	service = kind.Service(service)

	output, err := c.exec.Execute("systemctl", "reload", service)
	if err == nil {
		c.log.Debug("reloaded service", zap.String("service", service))
		return nil
	}
	c.log.Debug("systemctl reload failed, trying control program",
		zap.String("service", service), zap.ByteString("output", output), zap.Error(err))

	bin, lookErr := c.Binary(kind)
	if lookErr != nil {
		return verrors.Wrap(verrors.ErrCodeService,
			fmt.Sprintf("failed to reload %s: %s", kind.Name, strings.TrimSpace(string(output))), err)
	}
	output, err = c.exec.Execute(bin, kind.ReloadArgs...)
	if err != nil {
		return verrors.Wrap(verrors.ErrCodeService,
			fmt.Sprintf("failed to reload %s: %s", kind.Name, strings.TrimSpace(string(output))), err)
	}
	return nil
}
