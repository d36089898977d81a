package models

// LoginRequest is the parent login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the parent registration payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// ChildLoginRequest is the child login payload.
type ChildLoginRequest struct {
	Username string `json:"username"`
	PIN      string `json:"pin"`
}

// RefreshTokenRequest carries the refresh token to the refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is returned by all four auth endpoints. RefreshToken is
// absent when the backend does not rotate it.
type AuthResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
	Type         string `json:"type,omitempty"`
	UserID       int64  `json:"userId"`
	ChildID      *int64 `json:"childId,omitempty"`
	Email        string `json:"email,omitempty"`
	FullName     string `json:"fullName"`
	Role         string `json:"role"`
}

// Credentials converts an auth response into the persisted blob,
// preserving the previous refresh token when none was rotated.
func (r *AuthResponse) Credentials(previousRefresh string) Credentials {
	refresh := r.RefreshToken
	if refresh == "" {
		refresh = previousRefresh
	}
	return Credentials{
		ID:           CredentialsID,
		AccessToken:  r.Token,
		RefreshToken: refresh,
		UserID:       r.UserID,
		ChildID:      r.ChildID,
		Email:        r.Email,
		FullName:     r.FullName,
		Role:         r.Role,
	}
}
