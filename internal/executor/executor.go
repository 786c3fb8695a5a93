package executor

import (
	"os/exec"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// CommandExecutor is an interface for executing system commands
type CommandExecutor interface {
	// Execute runs a command with the given name and arguments
	Execute(name string, args ...string) ([]byte, error)

	// LookPath searches for an executable in the directories named by the PATH
	LookPath(file string) (string, error)
}

// SystemExecutor implements CommandExecutor using os/exec
type SystemExecutor struct {
	log *zap.Logger
}

// NewSystemExecutor creates a new SystemExecutor
func NewSystemExecutor() *SystemExecutor {
	return &SystemExecutor{log: zap.NewNop()}
}

// NewSystemExecutorWithLogger creates a SystemExecutor that logs every command at debug level
func NewSystemExecutorWithLogger(log *zap.Logger) *SystemExecutor {
	if log == nil {
		log = zap.NewNop()
	}
	return &SystemExecutor{log: log}
}

// Execute runs a command and returns combined output
func (e *SystemExecutor) Execute(name string, args ...string) ([]byte, error) {
	e.log.Debug("exec", zap.String("cmd", CommandLine(name, args...)))
	cmd := exec.Command(name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		e.log.Debug("exec failed", zap.String("cmd", name), zap.Error(err))
	}
	return out, err
}

// LookPath searches for an executable
func (e *SystemExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// CommandLine joins a command and its arguments for display.
func CommandLine(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// MockExecutor is a mock implementation for testing
type MockExecutor struct {
	ExecuteFunc  func(name string, args ...string) ([]byte, error)
	LookPathFunc func(file string) (string, error)
	Calls        []CommandCall
	Lookups      []string

	mu sync.Mutex
}

// CommandCall records a command execution for verification
type CommandCall struct {
	Name string
	Args []string
}

// String returns the command line of the call.
func (c CommandCall) String() string {
	return CommandLine(c.Name, c.Args...)
}

// Execute calls the mock function
func (m *MockExecutor) Execute(name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args})
	m.mu.Unlock()
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(name, args...)
	}
	return []byte(""), nil
}

// LookPath calls the mock function
func (m *MockExecutor) LookPath(file string) (string, error) {
	m.mu.Lock()
	m.Lookups = append(m.Lookups, file)
	m.mu.Unlock()
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}

// CommandLines returns every executed command line in call order.
func (m *MockExecutor) CommandLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		lines[i] = c.String()
	}
	return lines
}
