package dto

import "github.com/google/uuid"

type RegisterDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,strongpwd"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Age      string `json:"age"`
	Role     string `json:"role"`
}

type LoginDTO struct {
	Email      string `json:"email"    validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// RefreshDTO mirrors the wire contract: the client returns both halves of
// the pair, though only the (possibly expired) access token is inspected.
type RefreshDTO struct {
	AccessToken  string `json:"accessToken"  validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ResetRequestDTO struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetValidateDTO struct {
	UserID    uuid.UUID `json:"userId"    validate:"required"`
	ResetCode int       `json:"resetCode" validate:"required,gte=1000,lte=9999"`
}

type ResetCompleteDTO struct {
	UserID      uuid.UUID `json:"userId"      validate:"required"`
	ResetCode   int       `json:"resetCode"   validate:"required,gte=1000,lte=9999"`
	NewPassword string    `json:"newPassword" validate:"required,strongpwd"`
}
