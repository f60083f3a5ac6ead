package treeherder

import "context"

// MockClient is a test double that records posted collections.
type MockClient struct {
	Posted []Collection
	Err    error
}

func (m *MockClient) Name() string { return "mock" }

func (m *MockClient) Post(_ context.Context, c Collection) error {
	if m.Err != nil {
		return m.Err
	}
	m.Posted = append(m.Posted, c)
	return nil
}
