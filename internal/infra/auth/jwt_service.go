// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"giftlink/config"
	"giftlink/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret string        // Symmetric key for signing tokens, loaded once at startup.
	ttl    time.Duration // Token lifetime; negative disables the expiry claim.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret: cfg.Auth.Secret,
		ttl:    cfg.Auth.TokenTTL,
	}, nil
}

// Issue creates a signed token whose subject is the given user ID.
func (s *jwtService) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(), // Subject (who the token is for)
		"iat": now.Unix(),      // Issued At
	}
	if s.ttl > 0 {
		claims["exp"] = now.Add(s.ttl).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate checks the signature and expiry of a token string and returns its claims.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected token claims type")
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return nil, errors.New("token subject missing")
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user id in token subject")
	}

	return &service.Claims{UserID: userID}, nil
}
