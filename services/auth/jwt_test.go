package auth_test

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "pawmart-storefront-api/models"
    "pawmart-storefront-api/services/auth"
)

func TestTokenRoundTrip(t *testing.T) {
    t.Parallel()

    svc := auth.NewJWTService("test-secret", "pawmart-test", nil)
    user := models.AuthUser{ID: 7, Name: "Ayesha", Email: "ayesha@example.com"}

    token, err := svc.GenerateToken(user, "access", auth.AccessTokenDuration)
    require.NoError(t, err)

    got, err := svc.ValidateToken(token)
    require.NoError(t, err)
    assert.Equal(t, user, *got)
}

func TestValidateRejectsRefreshToken(t *testing.T) {
    t.Parallel()

    svc := auth.NewJWTService("test-secret", "pawmart-test", nil)
    user := models.AuthUser{ID: 7, Name: "Ayesha", Email: "ayesha@example.com"}

    refresh, err := svc.GenerateToken(user, "refresh", auth.RefreshTokenDuration)
    require.NoError(t, err)

    _, err = svc.ValidateToken(refresh)
    assert.Equal(t, auth.ErrInvalidToken, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
    t.Parallel()

    svc := auth.NewJWTService("test-secret", "pawmart-test", nil)
    user := models.AuthUser{ID: 7, Name: "Ayesha", Email: "ayesha@example.com"}

    token, err := svc.GenerateToken(user, "access", -time.Minute)
    require.NoError(t, err)

    _, err = svc.ValidateToken(token)
    assert.Equal(t, auth.ErrTokenExpired, err)
}

func TestValidateRejectsForeignSignature(t *testing.T) {
    t.Parallel()

    svc := auth.NewJWTService("test-secret", "pawmart-test", nil)
    other := auth.NewJWTService("other-secret", "pawmart-test", nil)
    user := models.AuthUser{ID: 7, Name: "Ayesha", Email: "ayesha@example.com"}

    token, err := other.GenerateToken(user, "access", auth.AccessTokenDuration)
    require.NoError(t, err)

    _, err = svc.ValidateToken(token)
    assert.Equal(t, auth.ErrInvalidToken, err)
}
