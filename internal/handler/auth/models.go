package auth

import (
	serviceAuth "github.com/bulatminnakhmetov/collection-tracker/internal/service/auth"
)

// Request models
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response models
type CollectorDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

type VerifyResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Conversion functions
func (r RegisterRequest) ToCollector() *serviceAuth.Collector {
	return &serviceAuth.Collector{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
}

func ToCollectorDTO(c *serviceAuth.Collector) CollectorDTO {
	return CollectorDTO{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
	}
}
