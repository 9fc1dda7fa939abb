package mock

import "context"

// MockEngine is a test double for ocr.Engine.
// It allows custom behavior injection via function fields.
type MockEngine struct {
	// ImageTextFunc is called by ImageText if set.
	// If nil, a fixed placeholder string is returned.
	ImageTextFunc func(ctx context.Context, image []byte) (string, error)

	callCount int
	closed    bool
}

// NewMockEngine creates a mock engine that returns placeholder text
// for every image by default.
// Note: Returns concrete type to allow test assertions.
func NewMockEngine() *MockEngine {
	return &MockEngine{}
}

// ImageText returns placeholder text unless ImageTextFunc is set.
func (m *MockEngine) ImageText(ctx context.Context, image []byte) (string, error) {
	m.callCount++

	if m.ImageTextFunc != nil {
		return m.ImageTextFunc(ctx, image)
	}

	return "mock recognized text", nil
}

// Close marks the engine as closed.
func (m *MockEngine) Close() error {
	m.closed = true
	return nil
}

// CallCount returns the number of times ImageText was called.
func (m *MockEngine) CallCount() int {
	return m.callCount
}

// Closed reports whether Close has been called.
func (m *MockEngine) Closed() bool {
	return m.closed
}

// Reset clears the call count, closed flag, and custom function.
func (m *MockEngine) Reset() {
	m.callCount = 0
	m.closed = false
	m.ImageTextFunc = nil
}
