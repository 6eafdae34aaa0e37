package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
)

func newTestService() *JWTService {
	return NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "tinkerlab"})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService()
	email := "dean@lab.edu"

	issued, err := svc.GenerateToken(&models.User{ID: "dean@lab.edu", Email: &email, Role: models.RoleFaculty})
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := svc.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, claims.ID)

	p, err := claims.Principal()
	require.NoError(t, err)
	assert.Equal(t, models.Principal{UserID: "dean@lab.edu", Email: email, Role: models.RoleFaculty}, p)
}

func TestValidateExpired(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	issued, err := svc.GenerateToken(&models.User{ID: "u1", Role: models.RoleStudent})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(issued.Token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "tinkerlab"})
	issued, err := other.GenerateToken(&models.User{ID: "u1"})
	require.NoError(t, err)

	_, err = newTestService().ValidateToken(issued.Token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestValidateRejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "u1", ID: "x", Issuer: "tinkerlab",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestService().ValidateToken(signed)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestClaimsPrincipalRoles(t *testing.T) {
	p, err := (&Claims{Role: "", RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}).Principal()
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, p.Role)

	_, err = (&Claims{Role: "overlord", RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}).Principal()
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	tok, err = ExtractBearerToken("bearer  xyz ")
	require.NoError(t, err)
	assert.Equal(t, "xyz", tok)

	for _, h := range []string{"", "abc.def.ghi", "Basic dXNlcg==", "Bearer "} {
		_, err := ExtractBearerToken(h)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid, h)
	}
}
