package handlers

import (
    "encoding/json"
    "log"
    "net/http"

    "pawmart-storefront-api/middleware"
    "pawmart-storefront-api/models"
    "pawmart-storefront-api/services/auth"
    "pawmart-storefront-api/utils"
)

type AuthHandler struct {
    jwtService *auth.JWTService
}

func NewAuthHandler(jwtService *auth.JWTService) *AuthHandler {
    return &AuthHandler{jwtService: jwtService}
}

// Login authenticates a customer by email/password and returns a JWT
// pair. The cart has no dependency on auth state; a visitor cart keeps
// working with or without a login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
    var req models.AuthRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        log.Printf("Error decoding login request: %v", err)
        utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
        return
    }

    if req.Email == "" || req.Password == "" {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Email and password are required")
        return
    }

    authResponse, err := h.jwtService.Authenticate(req.Email, req.Password)
    if err != nil {
        log.Printf("Authentication failed for %s: %v", req.Email, err)

        if err == auth.ErrInvalidCredentials {
            utils.SendErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
            return
        }
        utils.SendErrorResponse(w, http.StatusInternalServerError, "Authentication failed")
        return
    }

    log.Printf("Login successful for %s", req.Email)

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(authResponse)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
    var req models.RefreshTokenRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
        utils.SendErrorResponse(w, http.StatusBadRequest, "Refresh token is required")
        return
    }

    authResponse, err := h.jwtService.RefreshToken(req.RefreshToken)
    if err != nil {
        log.Printf("Token refresh failed: %v", err)

        switch err {
        case auth.ErrTokenExpired:
            utils.SendErrorResponse(w, http.StatusUnauthorized, "Refresh token expired")
        case auth.ErrInvalidToken, auth.ErrInvalidCredentials:
            utils.SendErrorResponse(w, http.StatusUnauthorized, "Invalid refresh token")
        default:
            utils.SendErrorResponse(w, http.StatusInternalServerError, "Token refresh failed")
        }
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(authResponse)
}

// Validate reports whether the bearer token on the request is valid.
// It runs behind the auth middleware, so reaching it means yes.
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
    user := middleware.GetUserFromContext(r.Context())
    if user == nil {
        utils.SendErrorResponse(w, http.StatusInternalServerError, "User not found in context")
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(models.TokenValidationResponse{
        Valid: true,
        User:  *user,
    })
}
