package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	collectorrepo "github.com/bulatminnakhmetov/collection-tracker/internal/repository/collector"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

const DefaultTokenTTL = time.Hour

type Collector = collectorrepo.Collector

type CollectorRepository interface {
	CreateCollector(ctx context.Context, c *collectorrepo.Collector) error
	GetCollectorsByEmail(ctx context.Context, email string) ([]collectorrepo.Collector, error)
}

// TokenClaims identify the collector a token was issued to
type TokenClaims struct {
	CollectorID int64  `json:"collector_id"`
	Email       string `json:"email"`
	jwt.RegisteredClaims
}

type AuthService struct {
	collectorRepository CollectorRepository
	jwtSecret           []byte
	tokenExpiry         time.Duration
}

func NewAuthService(collectorRepo CollectorRepository, jwtSecret string, tokenExpiry time.Duration) *AuthService {
	if tokenExpiry <= 0 {
		tokenExpiry = DefaultTokenTTL
	}
	return &AuthService{
		collectorRepository: collectorRepo,
		jwtSecret:           []byte(jwtSecret),
		tokenExpiry:         tokenExpiry,
	}
}

// Register stores a collector with its password replaced by a bcrypt hash.
// The returned collector carries the generated id.
func (s *AuthService) Register(ctx context.Context, c *Collector) (*Collector, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created := *c
	created.ID = 0
	created.Password = string(hashedPassword)
	if err := s.collectorRepository.CreateCollector(ctx, &created); err != nil {
		return nil, fmt.Errorf("failed to create collector: %w", err)
	}

	// Clear sensitive data
	created.Password = ""
	return &created, nil
}

// Login checks the password against every collector registered with email
// and returns a signed token for the first match
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	collectors, err := s.collectorRepository.GetCollectorsByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to get collectors: %w", err)
	}

	for i := range collectors {
		if bcrypt.CompareHashAndPassword([]byte(collectors[i].Password), []byte(password)) == nil {
			token, err := s.generateToken(&collectors[i])
			if err != nil {
				return "", fmt.Errorf("failed to generate token: %w", err)
			}
			return token, nil
		}
	}

	return "", ErrInvalidCredentials
}

// VerifyToken validates a token issued by Login. A "Bearer " prefix is accepted.
func (s *AuthService) VerifyToken(tokenString string) (*TokenClaims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *AuthService) generateToken(c *Collector) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		CollectorID: c.ID,
		Email:       c.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", c.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
