package jwt

import (
	"errors"
	"fmt"
	"rental/config"
	"rental/shared/timezone"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
	ErrMissingToken = errors.New("authorization header is required")
	ErrBearerFormat = errors.New("authorization header must start with 'Bearer '")
)

const bearerPrefix = "Bearer "

// Claims identifies the actor behind a request. Tokens are issued by the
// identity service, this service only verifies them.
type Claims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email,omitempty"`
	TokenID string `json:"token_id"`
	jwt.RegisteredClaims
}

type JWT interface {
	GenerateAccessToken(userID, email string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type Service struct {
	config *config.Config
}

func New(cfg *config.Config) JWT {
	return &Service{
		config: cfg,
	}
}

// GenerateAccessToken signs a short lived HS256 access token.
func (s *Service) GenerateAccessToken(userID, email string) (string, error) {
	issuedAt := timezone.Now()
	expiresAt := issuedAt.Add(time.Duration(s.config.JWT.AccessExpireMin) * time.Minute)
	tokenID := uuid.NewString()

	claims := Claims{
		UserID:  userID,
		Email:   email,
		TokenID: tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    s.issuer(),
			Subject:   userID,
			ID:        tokenID,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWT.AccessSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken verifies signature, expiry and issuer.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(s.config.JWT.AccessSecret), nil
	}, jwt.WithIssuer(s.issuer()), jwt.WithTimeFunc(timezone.Now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		if errors.Is(err, jwt.ErrTokenInvalidIssuer) {
			return nil, ErrInvalidClaim
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == "" {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

func (s *Service) issuer() string {
	if s.config.JWT.Issuer != "" {
		return s.config.JWT.Issuer
	}

	return s.config.App.Name
}

// ExtractTokenFromHeader extracts JWT token from Authorization header
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingToken
	}

	token, found := strings.CutPrefix(authHeader, bearerPrefix)
	if !found || token == "" {
		return "", ErrBearerFormat
	}

	return token, nil
}
