package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/zhukovvlad/docfill-go/cmd/internal/config"
	"github.com/zhukovvlad/docfill-go/cmd/internal/history"
	mockhistory "github.com/zhukovvlad/docfill-go/cmd/internal/history/mock"
	"github.com/zhukovvlad/docfill-go/cmd/pkg/logging"
)

/*
BEHAVIORAL SCENARIOS FOR AUTH SERVICE (Unit Tests)

What user problems does this protect us from?
================================================================================
1. Token security - access tokens must be properly signed and validated
2. Token expiration - expired tokens must be rejected
3. Token tampering - modified tokens must be detected
4. Credential security - wrong secrets and unknown clients look identical
5. Client lifecycle - deactivated clients cannot obtain new tokens

GIVEN / WHEN / THEN Scenarios:
================================================================================

SCENARIO 1: Access Token Generation and Validation
- GIVEN a valid client id and name
  WHEN an access token is generated
  THEN token contains correct claims and is verifiable

- GIVEN an expired access token
  WHEN token is validated
  THEN validation fails with ErrInvalidToken

- GIVEN a token with wrong signature
  WHEN token is validated
  THEN validation fails with ErrInvalidToken

SCENARIO 2: Client Credentials Flow
- GIVEN correct client credentials
  WHEN a token is requested
  THEN an access token with the configured TTL is issued

- GIVEN a wrong secret, an unknown client, or a deactivated client
  WHEN a token is requested
  THEN the same ErrInvalidCredentials is returned for all three
*/

const testJWTSecret = "test-secret-key-minimum-32-chars-long"

// setupTestService создает сервис с тестовой конфигурацией без БД
func setupTestService(t *testing.T) *Service {
	t.Helper()
	return setupTestServiceWithStore(t, nil)
}

func setupTestServiceWithStore(t *testing.T, store history.Store) *Service {
	t.Helper()

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      testJWTSecret,
			AccessTokenTTL: 15 * time.Minute,
		},
	}

	return NewService(store, cfg, logging.GetLogger())
}

func activeTestClient(t *testing.T, secret string) history.APIClient {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	require.NoError(t, err)

	return history.APIClient{
		ID:         1,
		ClientID:   "report-service",
		SecretHash: string(hash),
		Name:       "Report Service",
		IsActive:   true,
	}
}

// =============================================================================
// ACCESS TOKEN GENERATION AND VALIDATION TESTS
// =============================================================================

func TestGenerateAccessToken_Success(t *testing.T) {
	// GIVEN: Valid client id and name
	service := setupTestService(t)

	// WHEN: Access token is generated
	token, err := service.generateAccessToken("report-service", "Report Service")

	// THEN: Token is valid and contains correct data
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, "report-service", claims.ClientID)
	assert.Equal(t, "Report Service", claims.ClientName)
	assert.Equal(t, "docfill-go", claims.Issuer)
	assert.Equal(t, "report-service", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
	assert.True(t, claims.ExpiresAt.Before(time.Now().Add(16*time.Minute)),
		"token TTL must match configuration")
}

func TestValidateAccessToken_Expired(t *testing.T) {
	// GIVEN: Token that expired in the past
	service := setupTestService(t)

	now := time.Now().Add(-time.Hour)
	claims := JWTClaims{
		ClientID:   "report-service",
		ClientName: "Report Service",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "docfill-go",
			Subject:   "report-service",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	// WHEN: Expired token is validated
	_, err = service.ValidateAccessToken(signed)

	// THEN: Validation fails
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_WrongSignature(t *testing.T) {
	// GIVEN: Token signed with a different secret
	service := setupTestService(t)

	other := setupTestService(t)
	other.config = &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "completely-different-secret-key-32ch",
			AccessTokenTTL: 15 * time.Minute,
		},
	}
	foreign, err := other.generateAccessToken("report-service", "Report Service")
	require.NoError(t, err)

	// WHEN: Token is validated against our secret
	_, err = service.ValidateAccessToken(foreign)

	// THEN: Validation fails
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_WrongSigningMethod(t *testing.T) {
	// GIVEN: Token declaring alg=none
	service := setupTestService(t)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, JWTClaims{
		ClientID: "report-service",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	// WHEN: Token is validated
	_, err = service.ValidateAccessToken(signed)

	// THEN: Validation fails
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	service := setupTestService(t)

	for _, input := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := service.ValidateAccessToken(input)
		assert.ErrorIs(t, err, ErrInvalidToken, input)
	}
}

// =============================================================================
// CLIENT CREDENTIALS FLOW TESTS
// =============================================================================

func TestIssueToken_Success(t *testing.T) {
	// GIVEN: Active client with known secret
	ctrl := gomock.NewController(t)
	store := mockhistory.NewMockStore(ctrl)
	service := setupTestServiceWithStore(t, store)

	client := activeTestClient(t, "s3cret-value")
	store.EXPECT().
		GetAPIClientByClientID(gomock.Any(), "report-service").
		Return(client, nil)

	// WHEN: Token is requested with correct credentials
	result, err := service.IssueToken(context.Background(), "report-service", "s3cret-value")

	// THEN: Valid token with configured TTL is issued
	require.NoError(t, err)
	assert.Equal(t, int64(900), result.ExpiresIn)
	assert.Equal(t, "Report Service", result.ClientName)

	claims, err := service.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "report-service", claims.ClientID)
}

func TestIssueToken_WrongSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mockhistory.NewMockStore(ctrl)
	service := setupTestServiceWithStore(t, store)

	client := activeTestClient(t, "s3cret-value")
	store.EXPECT().
		GetAPIClientByClientID(gomock.Any(), "report-service").
		Return(client, nil)

	_, err := service.IssueToken(context.Background(), "report-service", "wrong-secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssueToken_UnknownClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mockhistory.NewMockStore(ctrl)
	service := setupTestServiceWithStore(t, store)

	store.EXPECT().
		GetAPIClientByClientID(gomock.Any(), "ghost").
		Return(history.APIClient{}, history.ErrClientNotFound)

	// Неизвестный клиент и неверный секрет неразличимы для вызывающего
	_, err := service.IssueToken(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssueToken_DeactivatedClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mockhistory.NewMockStore(ctrl)
	service := setupTestServiceWithStore(t, store)

	client := activeTestClient(t, "s3cret-value")
	client.IsActive = false
	store.EXPECT().
		GetAPIClientByClientID(gomock.Any(), "report-service").
		Return(client, nil)

	_, err := service.IssueToken(context.Background(), "report-service", "s3cret-value")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssueToken_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mockhistory.NewMockStore(ctrl)
	service := setupTestServiceWithStore(t, store)

	store.EXPECT().
		GetAPIClientByClientID(gomock.Any(), "report-service").
		Return(history.APIClient{}, errors.New("connection refused"))

	_, err := service.IssueToken(context.Background(), "report-service", "s3cret-value")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
