package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authservice "github.com/bulatminnakhmetov/collection-tracker/internal/service/auth"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, c *authservice.Collector) (*authservice.Collector, error) {
	args := m.Called(c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authservice.Collector), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) VerifyToken(tokenString string) (*authservice.TokenClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authservice.TokenClaims), args.Error(1)
}

func TestAddCollector(t *testing.T) {
	t.Run("Password is not echoed", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Register", &authservice.Collector{Name: "Alice", Email: "alice@example.com", Password: "hunter2"}).
			Return(&authservice.Collector{ID: 1, Name: "Alice", Email: "alice@example.com"}, nil)

		handler := NewAuthHandler(mockService, zerolog.Nop())
		req := httptest.NewRequest(http.MethodPost, "/addCollector",
			bytes.NewBufferString(`{"name":"Alice","email":"alice@example.com","password":"hunter2"}`))
		rr := httptest.NewRecorder()

		handler.AddCollector(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"id":1,"name":"Alice","email":"alice@example.com"}`, rr.Body.String())
		assert.NotContains(t, rr.Body.String(), "hunter2")
	})

	t.Run("Invalid body", func(t *testing.T) {
		handler := NewAuthHandler(new(MockAuthService), zerolog.Nop())
		rr := httptest.NewRecorder()

		handler.AddCollector(rr, httptest.NewRequest(http.MethodPost, "/addCollector", bytes.NewBufferString("nope")))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Service error", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Register", mock.Anything).Return(nil, errors.New("db down"))
		handler := NewAuthHandler(mockService, zerolog.Nop())
		rr := httptest.NewRecorder()

		handler.AddCollector(rr, httptest.NewRequest(http.MethodPost, "/addCollector", bytes.NewBufferString(`{}`)))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestLogin(t *testing.T) {
	decode := func(t *testing.T, rr *httptest.ResponseRecorder) LoginResponse {
		t.Helper()
		var resp LoginResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		return resp
	}

	t.Run("Success with any method", func(t *testing.T) {
		for _, method := range []string{http.MethodPost, http.MethodGet, http.MethodPut} {
			mockService := new(MockAuthService)
			mockService.On("Login", "alice@example.com", "hunter2").Return("signed.token", nil)
			handler := NewAuthHandler(mockService, zerolog.Nop())
			rr := httptest.NewRecorder()

			handler.Login(rr, httptest.NewRequest(method, "/login",
				bytes.NewBufferString(`{"email":"alice@example.com","password":"hunter2"}`)))

			assert.Equal(t, http.StatusOK, rr.Code, method)
			resp := decode(t, rr)
			assert.True(t, resp.Success)
			assert.Equal(t, "Login successful", resp.Message)
			assert.Equal(t, "signed.token", resp.Token)
		}
	})

	t.Run("Invalid credentials", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Login", "alice@example.com", "wrong").Return("", authservice.ErrInvalidCredentials)
		handler := NewAuthHandler(mockService, zerolog.Nop())
		rr := httptest.NewRecorder()

		handler.Login(rr, httptest.NewRequest(http.MethodPost, "/login",
			bytes.NewBufferString(`{"email":"alice@example.com","password":"wrong"}`)))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		resp := decode(t, rr)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid credentials", resp.Message)
		assert.Empty(t, resp.Token)
	})

	t.Run("Invalid body", func(t *testing.T) {
		handler := NewAuthHandler(new(MockAuthService), zerolog.Nop())
		rr := httptest.NewRecorder()

		handler.Login(rr, httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString("{")))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, decode(t, rr).Success)
	})

	t.Run("Service error", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("Login", mock.Anything, mock.Anything).Return("", errors.New("db down"))
		handler := NewAuthHandler(mockService, zerolog.Nop())
		rr := httptest.NewRecorder()

		handler.Login(rr, httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{}`)))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestVerify(t *testing.T) {
	t.Run("Valid token", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("VerifyToken", "abc").Return(&authservice.TokenClaims{CollectorID: 3, Email: "bob@example.com"}, nil)
		handler := NewAuthHandler(mockService, zerolog.Nop())

		req := httptest.NewRequest(http.MethodGet, "/verify", nil)
		req.Header.Set("Authorization", "Bearer abc")
		rr := httptest.NewRecorder()

		handler.Verify(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"id":3,"email":"bob@example.com"}`, rr.Body.String())
	})

	t.Run("Missing header", func(t *testing.T) {
		handler := NewAuthHandler(new(MockAuthService), zerolog.Nop())
		rr := httptest.NewRecorder()

		handler.Verify(rr, httptest.NewRequest(http.MethodGet, "/verify", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Rejected token", func(t *testing.T) {
		mockService := new(MockAuthService)
		mockService.On("VerifyToken", "bad").Return(nil, authservice.ErrInvalidToken)
		handler := NewAuthHandler(mockService, zerolog.Nop())

		req := httptest.NewRequest(http.MethodGet, "/verify", nil)
		req.Header.Set("Authorization", "Bearer bad")
		rr := httptest.NewRecorder()

		handler.Verify(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
