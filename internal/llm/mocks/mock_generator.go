package mocks

import (
	"context"

	"jobtracker/internal/llm"

	"github.com/stretchr/testify/mock"
)

type MockGenerator struct {
	mock.Mock
}

var _ llm.Generator = (*MockGenerator)(nil)

func (m *MockGenerator) GenerateDocuments(ctx context.Context, in llm.Input) (llm.Documents, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(llm.Documents), args.Error(1)
}

func (m *MockGenerator) Close() error {
	return m.Called().Error(0)
}
