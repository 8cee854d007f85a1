package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/repository/repotest"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AccessTokenSecret:  "access-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenSecret: "refresh-secret",
		RefreshTokenExpiry: 24 * time.Hour,
	}
}

type fixture struct {
	users  *repotest.Users
	media  *repotest.Media
	tokens *TokenService
	svc    *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := repotest.NewUsers()
	store := &repotest.Media{}
	tokens := NewTokenService(users, testConfig())
	return &fixture{
		users:  users,
		media:  store,
		tokens: tokens,
		svc:    NewUserService(users, store, tokens),
	}
}

func file(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: 3}
}

func (f *fixture) register(t *testing.T, username, email, password string) *dto.UserResponse {
	t.Helper()
	resp, err := f.svc.Register(context.Background(), RegisterInput{
		FullName: "Full " + username,
		Email:    email,
		Username: username,
		Password: password,
		Avatar:   file("avatar.png"),
	})
	require.NoError(t, err)
	return resp
}

func requireAPIError(t *testing.T, err error, status int) *dto.APIError {
	t.Helper()
	require.Error(t, err)
	var apiErr *dto.APIError
	require.True(t, errors.As(err, &apiErr), "expected *dto.APIError, got %T: %v", err, err)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Message)
	return apiErr
}
