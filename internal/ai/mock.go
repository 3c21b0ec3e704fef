package ai

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned reply for MockProvider. Text is returned as is;
// when the request carries a schema it is also validated.
type MockResponse struct {
	Text string
	Err  error
}

// MockProvider replays canned responses in order and records every request.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return finish(next.Text, req.Schema, "mock")
}

func (m *MockProvider) ModelID() string { return "mock" }

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// finish turns raw model text into a Response, extracting and validating
// JSON when a schema was requested.
func finish(text string, schema *Schema, model string) (*Response, error) {
	if text == "" {
		return nil, &ErrInvalidResponse{Err: errEmptyResponse}
	}
	resp := &Response{Text: text, Model: model}
	if schema == nil {
		return resp, nil
	}
	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}
	if err := validateResponse(schema, raw); err != nil {
		return nil, err
	}
	resp.Content = json.RawMessage(raw)
	return resp, nil
}
