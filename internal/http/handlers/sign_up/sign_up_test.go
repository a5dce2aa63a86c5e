package signup

import (
	c "accountd/internal/core/domain/common"
	"accountd/internal/core/domain/user"
	service "accountd/internal/core/services/sign_up"
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
	result service.Result
	err    error
	input  *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (service.Result, error) {
	s.input = &input
	return s.result, s.err
}

func TestUserCreated(t *testing.T) {
	// Setup ---
	stub := &stubService{
		result: service.Result{
			User: user.User{
				ID:           user.ID(10000),
				Name:         "Alice",
				Email:        c.NewEmail("alice@example.com"),
				PasswordHash: user.PasswordHash("test-hash"),
			},
		},
	}
	handler := New(stub)

	// Exercise ---
	request := httptest.NewRequest(
		http.MethodPost,
		"/users",
		strings.NewReader(`{"name": "Alice", "email": "Alice@Example.com", "password": "secret-password"}`),
	)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	// Verify ---
	require.Equal(t, http.StatusCreated, recorder.Code)
	require.NotNil(t, stub.input)
	assert.Equal(t, c.Email("alice@example.com"), stub.input.Email)

	body := make(map[string]interface{})
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, float64(10000), body["uid"])
	assert.Equal(t, "I-10000", body["uid_formatted"])
	assert.Equal(t, "Alice", body["name"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")
}

func TestBadRequests(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{
			id:             "duplicate email",
			body:           `{"name": "Alice", "email": "alice@example.com", "password": "secret-password"}`,
			serviceErr:     user.ErrEmailAlreadyExists,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing name",
			body:           `{"email": "alice@example.com", "password": "secret-password"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "not an email",
			body:           `{"name": "Alice", "email": "not-an-email", "password": "secret-password"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "password too short",
			body:           `{"name": "Alice", "email": "alice@example.com", "password": "pw"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "malformed body",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			handler := New(stub)

			request := httptest.NewRequest(
				http.MethodPost,
				"/users",
				strings.NewReader(testcase.body),
			)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testcase.expectedStatus, recorder.Code)
		})
	}
}
