package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var (
	ErrMissingClaim  = errors.New("required token claim is missing")
	ErrInvalidToken  = errors.New("invalid token")
	ErrAdminRequired = errors.New("admin privilege required")
)

// Claims is the identity the handlers work with.
type Claims struct {
	UserID         string
	OrganizationID string
	IsAdmin        bool
}

// Service verifies bearer tokens issued by the authentication provider and
// can mint access tokens for internal tooling and tests.
type Service interface {
	GenerateAccessToken(claims Claims) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpiration time.Duration) Service {
	return &JWTService{
		accessTokenExpiration: accessTokenExpiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(claims Claims) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpiration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":         claims.UserID,
		"organization_id": claims.OrganizationID,
		"is_admin":        claims.IsAdmin,
		"type":            "access",
		"exp":             expiresAt,
	})
	return tokenString, expiresAt, err
}

// ClaimsFromContext reads the verified token placed in ctx by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, err
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Claims{}, ErrMissingClaim
	}

	organizationID, ok := claims["organization_id"].(string)
	if !ok || organizationID == "" {
		return Claims{}, ErrMissingClaim
	}

	isAdmin, _ := claims["is_admin"].(bool)

	return Claims{
		UserID:         userID,
		OrganizationID: organizationID,
		IsAdmin:        isAdmin,
	}, nil
}
