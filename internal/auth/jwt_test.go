package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/logiport/portal/internal/config"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestProvider() Provider {
	return NewProvider(&config.Configuration{Auth: config.AuthConfig{Secret: testSecret}})
}

func TestValidateToken(t *testing.T) {
	token, err := GenerateToken(testSecret, Claims{
		UserID:   "user_1",
		Username: "alice",
		Email:    "alice@example.com",
		IsStaff:  true,
	}, time.Hour)
	require.NoError(t, err)

	claims, err := newTestProvider().ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	actor := claims.ToActor()
	assert.Equal(t, types.RoleAdmin, actor.Role())
	assert.Equal(t, "alice@example.com", actor.Email)
}

func TestValidateTokenRejects(t *testing.T) {
	wrongSecret, err := GenerateToken("other-secret", Claims{UserID: "user_1"}, time.Hour)
	require.NoError(t, err)

	expired, err := GenerateToken(testSecret, Claims{UserID: "user_1"}, -time.Minute)
	require.NoError(t, err)

	noUser, err := GenerateToken(testSecret, Claims{Username: "ghost"}, time.Hour)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user_1",
		"iat":     time.Now().Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "user_1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "wrong_secret", token: wrongSecret},
		{name: "expired", token: expired},
		{name: "missing_user_id", token: noUser},
		{name: "missing_expiry", token: noExpiry},
		{name: "unsigned", token: noneAlg},
		{name: "garbage", token: "not.a.token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := newTestProvider().ValidateToken(context.Background(), tc.token)
			assert.Error(t, err)
			assert.True(t, ierr.IsPermissionDenied(err))
			assert.Nil(t, claims)
		})
	}
}
