package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "talentry/pkg/domain"
	dErrors "talentry/pkg/domain-errors"
)

var tokenService = NewService(
	"test-signing-key",
	"test-issuer",
	"test-audience",
)
var accountID = id.NewAccountID()
var fingerprint = "ab12cd34"
var expiresIn = time.Hour

func Test_GenerateAccessToken(t *testing.T) {
	token, err := tokenService.GenerateAccessToken(accountID, fingerprint, expiresIn)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	claims, err := tokenService.ValidateToken(token)
	require.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, accountID.String(), claims.AccountID)
	assert.Equal(t, fingerprint, claims.DeviceFingerprint)
	assert.WithinDuration(t, time.Now().Add(expiresIn), claims.ExpiresAt.Time, time.Minute)
}

func Test_ValidateToken_InvalidToken(t *testing.T) {
	_, err := tokenService.ValidateToken("invalid-token-string")
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
}

func Test_ValidateToken_ExpiredToken(t *testing.T) {
	expiresIn := -time.Hour // Expired token

	token, err := tokenService.GenerateAccessToken(accountID, fingerprint, expiresIn)
	require.NoError(t, err)

	_, err = tokenService.ValidateToken(token)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "token has expired"))
}

func Test_ValidateToken_WrongKey(t *testing.T) {
	other := NewService("different-signing-key", "test-issuer", "test-audience")

	token, err := other.GenerateAccessToken(accountID, fingerprint, expiresIn)
	require.NoError(t, err)

	_, err = tokenService.ValidateToken(token)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
}

func Test_ExtractAccountID(t *testing.T) {
	token, err := tokenService.GenerateAccessToken(accountID, "", expiresIn)
	require.NoError(t, err)

	extracted, err := tokenService.ExtractAccountID(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, extracted)
}
