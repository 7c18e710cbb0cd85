package auth

import "github.com/clinicore/hr-management/internal/core/validation"

// LoginDTO is the transport shape for login requests. Both employee and
// client accounts authenticate with an email address.
type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (d LoginDTO) Validate() error {
	return validation.Struct(d)
}

// RefreshTokenDTO carries the refresh token for rotation.
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (d RefreshTokenDTO) Validate() error {
	return validation.Struct(d)
}
