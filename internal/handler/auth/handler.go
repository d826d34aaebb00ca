package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	authservice "github.com/bulatminnakhmetov/collection-tracker/internal/service/auth"
)

type AuthService interface {
	Register(ctx context.Context, c *authservice.Collector) (*authservice.Collector, error)
	Login(ctx context.Context, email, password string) (string, error)
	VerifyToken(tokenString string) (*authservice.TokenClaims, error)
}

type AuthHandler struct {
	authService AuthService
	log         zerolog.Logger
}

func NewAuthHandler(authService AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log.With().Str("component", "auth-handler").Logger(),
	}
}

// @Summary      Register collector
// @Description  Creates a collector account. The password is stored hashed and never returned.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Collector data"
// @Success      200      {object}  CollectorDTO
// @Failure      400      {string}  string  "Invalid request body"
// @Failure      500      {string}  string  "Internal server error"
// @Router       /addCollector [post]
func (h *AuthHandler) AddCollector(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.authService.Register(r.Context(), req.ToCollector())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to register collector")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ToCollectorDTO(created))
}

// @Summary      Collector login
// @Description  Checks email and password and returns a signed token. Accepts any HTTP method.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  LoginResponse
// @Failure      401      {object}  LoginResponse
// @Failure      500      {object}  LoginResponse
// @Router       /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, LoginResponse{Success: false, Message: "Invalid request body"})
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, LoginResponse{Success: false, Message: "Invalid credentials"})
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		writeJSON(w, http.StatusInternalServerError, LoginResponse{Success: false, Message: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Success: true, Message: "Login successful", Token: token})
}

// @Summary      Verify token
// @Description  Returns the collector a login token was issued to
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  VerifyResponse
// @Failure      401  {string}  string  "Unauthorized"
// @Router       /verify [get]
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	tokenString := extractToken(r)
	if tokenString == "" {
		http.Error(w, "Authorization header required", http.StatusUnauthorized)
		return
	}

	claims, err := h.authService.VerifyToken(tokenString)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, VerifyResponse{ID: claims.CollectorID, Email: claims.Email})
}

// Helper function to extract token from request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")

	// Format should be: "Bearer {token}"
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}

	return strings.TrimSpace(authHeader[7:])
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
