package user

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RegisterRequest - POST /auth/register
type RegisterRequest struct {
	Username      string `json:"username" binding:"required"`
	FullName      string `json:"fullname" binding:"required"`
	Password      string `json:"password" binding:"required"`
	FavoriteGenre string `json:"favorite_genre"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.FullName,
			validation.Required.Error("fullname is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 128).Error("password must be 6-128 characters"),
		),
	)
}

// LoginRequest - POST /auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// AuthResponse carries the bearer token and the user it identifies. The
// user's hash never appears here; see the json tag on the entity.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}
