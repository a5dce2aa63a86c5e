package login

import (
	c "accountd/internal/core/domain/common"
	"accountd/internal/core/domain/user"
	service "accountd/internal/core/services/log_in"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	user  user.User
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	result.User = s.user
	return result, nil
}

func TestLogInHandlerSuccess(t *testing.T) {
	stub := &stubService{
		user: user.User{
			ID:    10001,
			Name:  "Alice",
			Email: c.NewEmail("alice@example.com"),
		},
	}
	handler := New(stub)

	request := httptest.NewRequest(
		http.MethodPost,
		"/login",
		strings.NewReader(`{"email": "Alice@Example.com", "password": "pw1"}`),
	)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, stub.input)
	assert.Equal(t, c.Email("alice@example.com"), stub.input.Email)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, float64(10001), body["uid"])
	assert.Equal(t, "I-10001", body["uid_formatted"])
	assert.Equal(t, "Alice", body["name"])
	assert.Equal(t, "alice@example.com", body["email"])
	// Password and token material must never leak into the profile.
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")
	assert.NotContains(t, body, "reset_token")
}

func TestLogInHandlerInvalidCredentials(t *testing.T) {
	stub := &stubService{err: user.ErrInvalidCredentials}
	handler := New(stub)

	request := httptest.NewRequest(
		http.MethodPost,
		"/login",
		strings.NewReader(`{"email": "alice@example.com", "password": "wrong"}`),
	)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
