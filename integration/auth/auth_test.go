//go:build integration

package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/bulatminnakhmetov/collection-tracker/integration"
	"github.com/bulatminnakhmetov/collection-tracker/internal/handler/auth"
)

type AuthIntegrationTestSuite struct {
	suite.Suite
	appURL   string
	email    string
	password string
}

func (s *AuthIntegrationTestSuite) SetupSuite() {
	s.appURL = integration.AppURL()
	s.email = integration.UniqueEmail("collector")
	s.password = "TestPassword123!"

	collector, err := integration.RegisterCollector(s.appURL, auth.RegisterRequest{
		Name:     "Test Collector",
		Email:    s.email,
		Password: s.password,
	})
	s.Require().NoError(err)
	s.Require().NotZero(collector.ID)
}

func (s *AuthIntegrationTestSuite) login(method, email, password string) (int, auth.LoginResponse) {
	reqBody, _ := json.Marshal(auth.LoginRequest{Email: email, Password: password})
	req, err := http.NewRequest(method, s.appURL+"/login", bytes.NewBuffer(reqBody))
	s.Require().NoError(err)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var loginResp auth.LoginResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&loginResp))
	return resp.StatusCode, loginResp
}

func (s *AuthIntegrationTestSuite) TestLoginAndVerify() {
	status, resp := s.login(http.MethodPost, s.email, s.password)
	s.Require().Equal(http.StatusOK, status)
	s.True(resp.Success)
	s.Equal("Login successful", resp.Message)
	s.Require().NotEmpty(resp.Token)

	req, _ := http.NewRequest(http.MethodGet, s.appURL+"/verify", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	verifyResp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer verifyResp.Body.Close()

	s.Equal(http.StatusOK, verifyResp.StatusCode)
	var claims auth.VerifyResponse
	s.Require().NoError(json.NewDecoder(verifyResp.Body).Decode(&claims))
	s.Equal(s.email, claims.Email)
}

func (s *AuthIntegrationTestSuite) TestLoginWithGet() {
	status, resp := s.login(http.MethodGet, s.email, s.password)
	s.Equal(http.StatusOK, status)
	s.True(resp.Success)
}

func (s *AuthIntegrationTestSuite) TestWrongPassword() {
	status, resp := s.login(http.MethodPost, s.email, "wrong")
	s.Equal(http.StatusUnauthorized, status)
	s.False(resp.Success)
	s.Equal("Invalid credentials", resp.Message)
}

func (s *AuthIntegrationTestSuite) TestVerifyWithoutToken() {
	resp, err := http.Get(s.appURL + "/verify")
	s.Require().NoError(err)
	resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthIntegration(t *testing.T) {
	suite.Run(t, new(AuthIntegrationTestSuite))
}
