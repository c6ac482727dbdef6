// file: internals/features/users/auth/dto/auth_dto.go
package dto

import "github.com/google/uuid"

/* ===================== REQUESTS ===================== */

type RegisterRequest struct {
	UserName     string     `json:"user_name" validate:"required,min=2,max=100"`
	UserEmail    string     `json:"user_email" validate:"required,email"`
	UserPassword string     `json:"user_password" validate:"required,min=8"`
	UserRole     string     `json:"user_role" validate:"required,oneof=parent teacher admin"`
	UserSchoolID *uuid.UUID `json:"user_school_id" validate:"omitempty,uuid"`
	InviteToken  *string    `json:"invite_token" validate:"omitempty"`
}

type LoginRequest struct {
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required"`
}

/* ===================== RESPONSES ===================== */

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	UserID       uuid.UUID  `json:"user_id"`
	UserName     string     `json:"user_name"`
	UserEmail    string     `json:"user_email"`
	UserRole     string     `json:"user_role"`
	UserSchoolID *uuid.UUID `json:"user_school_id,omitempty"`
}
