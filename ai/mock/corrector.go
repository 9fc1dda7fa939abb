package mock

import "context"

// MockTextCorrector is a test double for ai.TextCorrector.
// It allows custom behavior injection via function fields.
type MockTextCorrector struct {
	// CorrectTextFunc is called by CorrectText if set.
	// If nil, the text is returned unchanged.
	CorrectTextFunc func(ctx context.Context, text string) (string, error)

	callCount int
}

// NewMockTextCorrector creates a mock corrector that passes text through
// unchanged by default.
// Note: Returns concrete type to allow test assertions.
func NewMockTextCorrector() *MockTextCorrector {
	return &MockTextCorrector{}
}

// CorrectText returns the text unchanged unless CorrectTextFunc is set.
func (m *MockTextCorrector) CorrectText(ctx context.Context, text string) (string, error) {
	m.callCount++

	if m.CorrectTextFunc != nil {
		return m.CorrectTextFunc(ctx, text)
	}

	return text, nil
}

// CallCount returns the number of times CorrectText was called.
func (m *MockTextCorrector) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom function.
func (m *MockTextCorrector) Reset() {
	m.callCount = 0
	m.CorrectTextFunc = nil
}
