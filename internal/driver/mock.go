package driver

// MockController is a test double for the Controller interface
type MockController struct {
	// Function mocks - set these to customize behavior
	BinaryFunc func(kind Kind) (string, error)
	TestFunc   func(kind Kind) error
	ReloadFunc func(kind Kind, service string) error

	// Call tracking - check these to verify interactions
	TestCalls   []string
	ReloadCalls []ReloadCall
}

// ReloadCall records arguments passed to Reload
type ReloadCall struct {
	Kind    string
	Service string
}

// NewMockController creates a new MockController with default no-op implementations
func NewMockController() *MockController {
	return &MockController{
		TestCalls:   make([]string, 0),
		ReloadCalls: make([]ReloadCall, 0),
	}
}

// Binary invokes the mock function if set, otherwise returns the first binary
func (m *MockController) Binary(kind Kind) (string, error) {
	if m.BinaryFunc != nil {
		return m.BinaryFunc(kind)
	}
	return kind.Binaries[0], nil
}

// Test records the call and invokes the mock function if set
func (m *MockController) Test(kind Kind) error {
	m.TestCalls = append(m.TestCalls, kind.Name)
	if m.TestFunc != nil {
		return m.TestFunc(kind)
	}
	return nil
}

// Reload records the call and invokes the mock function if set
func (m *MockController) Reload(kind Kind, service string) error {
	m.ReloadCalls = append(m.ReloadCalls, ReloadCall{Kind: kind.Name, Service: service})
	if m.ReloadFunc != nil {
		return m.ReloadFunc(kind, service)
	}
	return nil
}

// Reset clears all call tracking
func (m *MockController) Reset() {
	m.TestCalls = make([]string, 0)
	m.ReloadCalls = make([]ReloadCall, 0)
}
