package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ugc-studio/internal/media"
)

// MockImageGenerator is a mock type for the media.ImageGenerator type
type MockImageGenerator struct {
	mock.Mock
}

// Generate provides a mock function with given fields: ctx, prompt, aspectRatio
func (_m *MockImageGenerator) Generate(ctx context.Context, prompt string, aspectRatio string) (media.ImageResult, error) {
	ret := _m.Called(ctx, prompt, aspectRatio)

	var r0 media.ImageResult
	if rf, ok := ret.Get(0).(func(context.Context, string, string) media.ImageResult); ok {
		r0 = rf(ctx, prompt, aspectRatio)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(media.ImageResult)
	}

	return r0, ret.Error(1)
}

func NewMockImageGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockImageGenerator {
	m := &MockImageGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockVideoGenerator is a mock type for the media.VideoGenerator type
type MockVideoGenerator struct {
	mock.Mock
}

// Generate provides a mock function with given fields: ctx, prompt, req
func (_m *MockVideoGenerator) Generate(ctx context.Context, prompt string, req media.VideoRequest) (media.VideoResult, error) {
	ret := _m.Called(ctx, prompt, req)

	var r0 media.VideoResult
	if rf, ok := ret.Get(0).(func(context.Context, string, media.VideoRequest) media.VideoResult); ok {
		r0 = rf(ctx, prompt, req)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(media.VideoResult)
	}

	return r0, ret.Error(1)
}

func NewMockVideoGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockVideoGenerator {
	m := &MockVideoGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockMediaStore is a mock type for the media.Store type
type MockMediaStore struct {
	mock.Mock
}

// Put provides a mock function with given fields: ctx, name, contentType, data
func (_m *MockMediaStore) Put(ctx context.Context, name string, contentType string, data []byte) (string, error) {
	ret := _m.Called(ctx, name, contentType, data)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, string, string, []byte) string); ok {
		r0 = rf(ctx, name, contentType, data)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(string)
	}

	return r0, ret.Error(1)
}

func NewMockMediaStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMediaStore {
	m := &MockMediaStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var (
	_ media.ImageGenerator = (*MockImageGenerator)(nil)
	_ media.VideoGenerator = (*MockVideoGenerator)(nil)
	_ media.Store          = (*MockMediaStore)(nil)
)
