package models

import "time"

// AuthRequest is the login payload accepted by /api/auth/login.
type AuthRequest struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

type RefreshTokenRequest struct {
    RefreshToken string `json:"refresh_token"`
}

type AuthUser struct {
    ID    int    `json:"id"`
    Name  string `json:"name"`
    Email string `json:"email"`
}

type AuthResponse struct {
    Token        string    `json:"token"`
    RefreshToken string    `json:"refresh_token"`
    ExpiresAt    time.Time `json:"expires_at"`
    User         AuthUser  `json:"user"`
    Message      string    `json:"message,omitempty"`
}

type TokenValidationResponse struct {
    Valid bool     `json:"valid"`
    User  AuthUser `json:"user"`
}
