package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/arthur-debert/storyreg/pkg/catalog"
	"github.com/arthur-debert/storyreg/pkg/types"
)

// MockCatalog is a testify mock of catalog.Catalog.
type MockCatalog struct {
	mock.Mock
}

var _ catalog.Catalog = (*MockCatalog)(nil)

func (m *MockCatalog) HasStory(kind, name string) bool {
	args := m.Called(kind, name)
	return args.Bool(0)
}

func (m *MockCatalog) AddStory(kind, name string, render types.RenderFunc, params types.Parameters) {
	m.Called(kind, name, render, params)
}

func (m *MockCatalog) RemoveStoryKind(kind string) {
	m.Called(kind)
}

func (m *MockCatalog) IncrementRevision() {
	m.Called()
}

func (m *MockCatalog) Revision() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockCatalog) GetStoryKinds() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockCatalog) GetStories(kind string) []string {
	args := m.Called(kind)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockCatalog) GetStoryFileName(kind string) (string, bool) {
	args := m.Called(kind)
	return args.String(0), args.Bool(1)
}

func (m *MockCatalog) GetStoryWithContext(kind, name string) types.StoryFn {
	args := m.Called(kind, name)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(types.StoryFn)
}

func (m *MockCatalog) GetParameters(kind, name string) types.Parameters {
	args := m.Called(kind, name)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(types.Parameters)
}
