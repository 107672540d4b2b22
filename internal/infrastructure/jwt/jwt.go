package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fitback-api/internal/domain/identity"
)

// Service verifies HS256 tokens minted by the hosted auth provider.
type Service struct {
	jwtSecret string
}

func New(jwtSecret string) *Service { return &Service{jwtSecret: jwtSecret} }

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT mints a provider-shaped token. Used by tests and local tooling.
func (s *Service) GenerateJWT(subject, email, role string, expiresIn time.Duration) (string, error) {
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.jwtSecret))
}

func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

// Identity reads the hosted session carried by tokenStr.
func (s *Service) Identity(tokenStr string) (*identity.Identity, error) {
	claims, err := s.ValidateToken(tokenStr)
	if err != nil {
		return nil, err
	}

	return &identity.Identity{
		ExternalID: claims.Subject,
		Email:      claims.Email,
		Role:       claims.Role,
	}, nil
}
