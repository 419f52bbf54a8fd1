package mocks

import (
	"context"
	"io"

	"shortcut-sync/core/provider"

	"github.com/stretchr/testify/mock"
)

// Provider is a mock implementation of provider.ImageProvider
type Provider struct {
	mock.Mock
}

func (m *Provider) SearchByName(ctx context.Context, name string) ([]provider.Game, error) {
	args := m.Called(ctx, name)
	if games, ok := args.Get(0).([]provider.Game); ok {
		return games, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Provider) FetchURLs(ctx context.Context, gameID int, kind provider.Kind) ([]provider.Image, error) {
	args := m.Called(ctx, gameID, kind)
	if images, ok := args.Get(0).([]provider.Image); ok {
		return images, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Provider) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	args := m.Called(ctx, url)
	if body, ok := args.Get(0).(io.ReadCloser); ok {
		return body, args.Error(1)
	}
	return nil, args.Error(1)
}
