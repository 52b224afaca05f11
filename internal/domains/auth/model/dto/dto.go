package dto

import (
	"time"

	userModel "ruang/internal/domains/user/model"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

// SessionResponse is the authenticated identity as exposed to clients; it
// mirrors what the session cookie carries.
type SessionResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (s *SessionResponse) FromModel(user userModel.User) {
	s.Email = user.Email
	s.Role = user.Role
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}
