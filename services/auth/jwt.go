package auth

import (
    "crypto/sha256"
    "database/sql"
    "encoding/hex"
    "errors"
    "fmt"
    "strconv"
    "time"

    "github.com/golang-jwt/jwt/v5"

    "pawmart-storefront-api/database"
    "pawmart-storefront-api/models"
)

const (
    AccessTokenDuration  = 15 * time.Minute
    RefreshTokenDuration = 7 * 24 * time.Hour
)

var (
    ErrInvalidCredentials = errors.New("invalid email or password")
    ErrTokenExpired       = errors.New("token expired")
    ErrInvalidToken       = errors.New("invalid token")
)

type JWTService struct {
    secretKey []byte
    issuer    string
    db        *database.Connection
}

type Claims struct {
    UserID    int    `json:"user_id"`
    Name      string `json:"name"`
    Email     string `json:"email"`
    TokenType string `json:"token_type"` // "access" or "refresh"
    jwt.RegisteredClaims
}

func NewJWTService(secretKey, issuer string, db *database.Connection) *JWTService {
    return &JWTService{
        secretKey: []byte(secretKey),
        issuer:    issuer,
        db:        db,
    }
}

// Authenticate checks email/password against the customers table and
// returns a fresh access/refresh token pair.
func (j *JWTService) Authenticate(email, password string) (*models.AuthResponse, error) {
    hasher := sha256.New()
    hasher.Write([]byte(password))
    hashedPassword := hex.EncodeToString(hasher.Sum(nil))

    var user models.AuthUser
    query := `SELECT id, name, email FROM customers WHERE email = ? AND passphrase = ?`

    err := j.db.GetDB().QueryRow(query, email, hashedPassword).Scan(
        &user.ID, &user.Name, &user.Email)

    if err != nil {
        if err == sql.ErrNoRows {
            return nil, ErrInvalidCredentials
        }
        return nil, fmt.Errorf("database error: %v", err)
    }

    return j.issueTokens(user)
}

func (j *JWTService) issueTokens(user models.AuthUser) (*models.AuthResponse, error) {
    accessToken, err := j.GenerateToken(user, "access", AccessTokenDuration)
    if err != nil {
        return nil, fmt.Errorf("error generating access token: %v", err)
    }

    refreshToken, err := j.GenerateToken(user, "refresh", RefreshTokenDuration)
    if err != nil {
        return nil, fmt.Errorf("error generating refresh token: %v", err)
    }

    return &models.AuthResponse{
        Token:        accessToken,
        RefreshToken: refreshToken,
        ExpiresAt:    time.Now().Add(AccessTokenDuration),
        User:         user,
    }, nil
}

func (j *JWTService) GenerateToken(user models.AuthUser, tokenType string, duration time.Duration) (string, error) {
    now := time.Now()
    claims := Claims{
        UserID:    user.ID,
        Name:      user.Name,
        Email:     user.Email,
        TokenType: tokenType,
        RegisteredClaims: jwt.RegisteredClaims{
            Subject:   strconv.Itoa(user.ID),
            Issuer:    j.issuer,
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
            NotBefore: jwt.NewNumericDate(now),
        },
    }

    token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return token.SignedString(j.secretKey)
}

// ValidateToken checks an access token and returns its user.
func (j *JWTService) ValidateToken(tokenString string) (*models.AuthUser, error) {
    claims, err := j.parseClaims(tokenString)
    if err != nil {
        return nil, err
    }

    if claims.TokenType != "access" {
        return nil, ErrInvalidToken
    }

    return &models.AuthUser{
        ID:    claims.UserID,
        Name:  claims.Name,
        Email: claims.Email,
    }, nil
}

// RefreshToken exchanges a valid refresh token for a new pair. The
// customer row is re-read so a deleted account cannot keep refreshing.
func (j *JWTService) RefreshToken(refreshTokenString string) (*models.AuthResponse, error) {
    claims, err := j.parseClaims(refreshTokenString)
    if err != nil {
        return nil, err
    }

    if claims.TokenType != "refresh" {
        return nil, ErrInvalidToken
    }

    var user models.AuthUser
    query := `SELECT id, name, email FROM customers WHERE id = ?`
    if err := j.db.GetDB().QueryRow(query, claims.UserID).Scan(&user.ID, &user.Name, &user.Email); err != nil {
        return nil, ErrInvalidCredentials
    }

    return j.issueTokens(user)
}

func (j *JWTService) parseClaims(tokenString string) (*Claims, error) {
    token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
        if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
        }
        return j.secretKey, nil
    })

    if err != nil {
        if errors.Is(err, jwt.ErrTokenExpired) {
            return nil, ErrTokenExpired
        }
        return nil, ErrInvalidToken
    }

    claims, ok := token.Claims.(*Claims)
    if !ok || !token.Valid {
        return nil, ErrInvalidToken
    }
    return claims, nil
}
