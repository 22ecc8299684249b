package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", time.Hour)

	tokenString, expiresAt, err := svc.GenerateAccessToken(Claims{
		UserID:         "user-1",
		OrganizationID: "org-1",
		IsAdmin:        true,
	})
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), token, nil)
	claims, err := ClaimsFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, Claims{UserID: "user-1", OrganizationID: "org-1", IsAdmin: true}, claims)
}

func TestClaimsFromContext_MissingOrganization(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", time.Hour)

	tokenString, _, err := svc.GenerateAccessToken(Claims{UserID: "user-1"})
	require.NoError(t, err)
	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	_, err = ClaimsFromContext(jwtauth.NewContext(context.Background(), token, nil))
	assert.ErrorIs(t, err, ErrMissingClaim)
}
