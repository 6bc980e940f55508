package news

import "context"

// Provider fetches headlines for a subject, most relevant first.
type Provider interface {
	TopHeadlines(ctx context.Context, query string, limit int) ([]string, error)
	Name() string
}

// MockProvider returns fixed headlines for testing.
type MockProvider struct {
	Headlines []string
	Err       error
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) TopHeadlines(_ context.Context, _ string, limit int) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Headlines) > limit {
		return m.Headlines[:limit], nil
	}
	return m.Headlines, nil
}
