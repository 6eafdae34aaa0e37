package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinkerlab/labtrack/internal/app/auth"
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/app/models/dto"
	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
	jwtauth "github.com/tinkerlab/labtrack/internal/pkg/auth"
	"github.com/tinkerlab/labtrack/internal/pkg/revocation"
	"github.com/tinkerlab/labtrack/internal/pkg/validation"
)

const testSecret = "middleware-secret"

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterGinRules(); err != nil {
		panic(err)
	}
}

func newJWT() *jwtauth.JWTService {
	return jwtauth.NewJWTService(jwtauth.JWTConfig{SecretKey: testSecret, AccessTokenExp: time.Hour, TokenIssuer: "tinkerlab"})
}

func tokenFor(t *testing.T, svc *jwtauth.JWTService, id string, role models.Role) *jwtauth.IssuedToken {
	t.Helper()
	issued, err := svc.GenerateToken(&models.User{ID: id, Role: role})
	require.NoError(t, err)
	return issued
}

func newRouter(m *AuthMiddleware, op auth.Operation) *gin.Engine {
	r := gin.New()
	r.GET("/protected", m.JWTAuth(), m.RequirePermission(op), func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"userId": p.UserID, "role": p.Role})
	})
	return r
}

func doGet(r http.Handler, header string) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body dto.ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestJWTAuth(t *testing.T) {
	jwtSvc := newJWT()
	store := revocation.NewMemoryStore()
	m := NewAuthMiddleware(jwtSvc, store, auth.NewAuthorizationService(nil))
	r := newRouter(m, auth.OpViewEquipment)

	t.Run("missing header", func(t *testing.T) {
		w, body := doGet(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeUnauthorized, body.Code)
	})

	t.Run("not bearer", func(t *testing.T) {
		issued := tokenFor(t, jwtSvc, "u1", models.RoleStudent)
		w, _ := doGet(r, "Token "+issued.Token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w, body := doGet(r, "Bearer not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeInvalidToken, body.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		issued := tokenFor(t, jwtSvc, "u1", models.RoleStudent)
		w, _ := doGet(r, "Bearer "+issued.Token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"userId":"u1","role":"student"}`, w.Body.String())
	})

	t.Run("empty role defaults to student", func(t *testing.T) {
		issued := tokenFor(t, jwtSvc, "u5", "")
		w, _ := doGet(r, "Bearer "+issued.Token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"userId":"u5","role":"student"}`, w.Body.String())
	})

	t.Run("unknown role", func(t *testing.T) {
		issued := tokenFor(t, jwtSvc, "u1", "wizard")
		w, body := doGet(r, "Bearer "+issued.Token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeInvalidToken, body.Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		issued := tokenFor(t, jwtSvc, "u1", models.RoleStudent)
		require.NoError(t, store.Revoke(context.Background(), issued.ID, issued.ExpiresAt))
		w, body := doGet(r, "Bearer "+issued.Token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeRevokedToken, body.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := &jwtauth.Claims{
			Role: "student",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "u1",
				ID:        "old",
				Issuer:    "tinkerlab",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		w, body := doGet(r, "Bearer "+signed)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeExpiredToken, body.Code)
	})
}

func TestJWTAuth_QueryToken(t *testing.T) {
	jwtSvc := newJWT()
	m := NewAuthMiddleware(jwtSvc, revocation.NewMemoryStore(), auth.NewAuthorizationService(nil))
	r := newRouter(m, auth.OpViewEquipment)
	issued := tokenFor(t, jwtSvc, "u1", models.RoleStudent)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"token param", "token=" + issued.Token, http.StatusOK},
		{"authorization param with scheme", "authorization=" + url.QueryEscape("Bearer "+issued.Token), http.StatusOK},
		{"garbage param", "token=not.a.jwt", http.StatusUnauthorized},
		{"wrong scheme", "token=" + url.QueryEscape("Token "+issued.Token), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected?"+tt.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}

	t.Run("header wins over query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected?token="+issued.Token, nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequirePermission(t *testing.T) {
	jwtSvc := newJWT()
	m := NewAuthMiddleware(jwtSvc, revocation.NewMemoryStore(), auth.NewAuthorizationService(nil))
	r := newRouter(m, auth.OpDecideReservation)

	issued := tokenFor(t, jwtSvc, "u1", models.RoleStudent)
	w, body := doGet(r, "Bearer "+issued.Token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "insufficient permissions", body.Message)
	assert.Equal(t, dto.ErrorCodeForbidden, body.Code)

	for _, role := range []models.Role{models.RoleFaculty, models.RoleTechSecretary, models.RoleAdmin} {
		issued := tokenFor(t, jwtSvc, "staff", role)
		w, _ := doGet(r, "Bearer "+issued.Token)
		assert.Equal(t, http.StatusOK, w.Code, "role %s", role)
	}
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{"field validation", apperrors.NewValidationError("purpose", "too short"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
		{"plain validation", fmt.Errorf("wrap: %w", apperrors.ErrValidationFailed), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
		{"expired", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token has expired"},
		{"invalid", jwtauth.ErrInvalidFormat, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
		{"forbidden", apperrors.NewForbiddenError("nope"), http.StatusForbidden, dto.ErrorCodeForbidden, "insufficient permissions"},
		{"disabled", apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeForbidden, "Account is disabled"},
		{"not found", fmt.Errorf("lookup: %w", apperrors.ErrEquipmentNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Equipment not found"},
		{"conflict", fmt.Errorf("%w: taken", apperrors.ErrConflict), http.StatusConflict, dto.ErrorCodeConflict, "conflict: taken"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Message)
			assert.False(t, body.Timestamp.IsZero())
		})
	}
}

func TestHandleAPIError_FieldDetail(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	HandleAPIError(c, apperrors.NewValidationError("endTime", "end time must be after start time"))

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "endTime", body.Errors[0].Field)
}

func TestBindJSON(t *testing.T) {
	r := gin.New()
	r.POST("/decide", func(c *gin.Context) {
		var req dto.DecideReservationRequest
		if !BindJSON(c, &req) {
			return
		}
		c.JSON(http.StatusOK, req)
	})

	post := func(body string) (*httptest.ResponseRecorder, dto.ErrorResponse) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/decide", bytes.NewBufferString(body)))
		var resp dto.ErrorResponse
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		return w, resp
	}

	w, _ := post(`{"status":"approved"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp := post(`{"status":"pending"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "status", resp.Errors[0].Field)
	assert.Equal(t, "status must be approved or rejected", resp.Errors[0].Message)

	w, resp = post(`{"status":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "body", resp.Errors[0].Field)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(&buf)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}
