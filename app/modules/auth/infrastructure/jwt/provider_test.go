package authjwt

import (
	"errors"
	"testing"
	"time"

	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-chars-long!!"

func TestProvider_GenerateAndValidateToken(t *testing.T) {
	p := NewProvider(testSecret, Options{Audience: "authenticated"})

	claims := &authdomain.Claims{
		Subject: "user-123",
		Email:   "rider@example.com",
		Role:    authdomain.RoleAuthenticated,
	}

	tests := []struct {
		name        string
		setupClaims *authdomain.Claims
		ttl         time.Duration
		provider    Provider
		expectedErr error
		verify      func(t *testing.T, validated *authdomain.Claims)
	}{
		{
			name:        "success",
			setupClaims: claims,
			ttl:         time.Hour,
			provider:    p,
			verify: func(t *testing.T, validated *authdomain.Claims) {
				assert.Equal(t, "user-123", validated.Subject)
				assert.Equal(t, "rider@example.com", validated.Email)
				assert.Equal(t, authdomain.RoleAuthenticated, validated.Role)
				assert.False(t, validated.IsExpired())
			},
		},
		{
			name:        "unknown role falls back to authenticated",
			setupClaims: &authdomain.Claims{Subject: "user-9", Role: "service"},
			ttl:         time.Hour,
			provider:    p,
			verify: func(t *testing.T, validated *authdomain.Claims) {
				assert.Equal(t, authdomain.RoleAuthenticated, validated.Role)
			},
		},
		{
			name:        "expired token",
			setupClaims: claims,
			ttl:         -time.Hour,
			provider:    p,
			expectedErr: ErrExpiredToken,
		},
		{
			name:        "wrong secret",
			setupClaims: claims,
			ttl:         time.Hour,
			provider:    NewProvider("another-secret-at-least-32-chars!!!", Options{Audience: "authenticated"}),
			expectedErr: ErrInvalidSignature,
		},
		{
			name:        "wrong audience",
			setupClaims: claims,
			ttl:         time.Hour,
			provider:    NewProvider(testSecret, Options{Audience: "service"}),
			expectedErr: ErrInvalidToken,
		},
		{
			name:        "missing subject",
			setupClaims: &authdomain.Claims{Role: authdomain.RoleAuthenticated},
			ttl:         time.Hour,
			provider:    p,
			expectedErr: ErrMissingSubject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := p.GenerateToken(tt.setupClaims, tt.ttl)
			require.NoError(t, err)

			validated, err := tt.provider.ValidateToken(token)
			if tt.expectedErr != nil {
				assert.True(t, errors.Is(err, tt.expectedErr), "expected %v, got %v", tt.expectedErr, err)
				return
			}
			require.NoError(t, err)
			tt.verify(t, validated)
		})
	}
}

func TestProvider_RejectsNoneAndMalformed(t *testing.T) {
	p := NewProvider(testSecret, Options{})

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = p.ValidateToken(raw)
	assert.Error(t, err)

	_, err = p.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestProvider_RequiresExpiry(t *testing.T) {
	p := NewProvider(testSecret, Options{})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1"})
	raw, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = p.ValidateToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
