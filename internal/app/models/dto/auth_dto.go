package dto

import "github.com/ejmancilla/sigms/internal/app/models"

// LoginRequest represents login credentials. Role is claimed by the client
// and checked against the stored account.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=student admin superadmin"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	TokenType    string `json:"tokenType" example:"Bearer"`
	ExpiresIn    int64  `json:"expiresIn"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse   `json:"token"`
	User  AccountResponse `json:"user"`
}

// ChangePasswordRequest represents a password change for the
// authenticated account
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// AccountResponse represents basic account information
type AccountResponse struct {
	ID            int64   `json:"id"`
	Username      string  `json:"username"`
	Role          string  `json:"role"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Group         string  `json:"group,omitempty"`
	Position      string  `json:"position,omitempty"`
	StudentNumber *string `json:"studentNumber,omitempty"`
	Year          *int    `json:"year,omitempty"`
	Section       *string `json:"section,omitempty"`
	Major         *string `json:"major,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// ToAccountResponse maps an account model to its API representation
func ToAccountResponse(a *models.Account) AccountResponse {
	resp := AccountResponse{
		ID:            a.ID,
		Username:      a.Username,
		Role:          string(a.Role),
		Name:          a.Name,
		Email:         a.Email,
		Group:         a.Group,
		Position:      a.Position,
		StudentNumber: a.StudentNumber,
		Year:          a.Year,
		Section:       a.Section,
		Major:         a.Major,
	}
	if a.Status != nil {
		s := string(*a.Status)
		resp.Status = &s
	}
	return resp
}
