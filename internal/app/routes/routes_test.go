package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinkerlab/labtrack/internal/app/auth"
	"github.com/tinkerlab/labtrack/internal/app/controllers"
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/app/models/dto"
	"github.com/tinkerlab/labtrack/internal/app/services"
	"github.com/tinkerlab/labtrack/internal/middleware"
	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
	jwtauth "github.com/tinkerlab/labtrack/internal/pkg/auth"
	"github.com/tinkerlab/labtrack/internal/pkg/revocation"
	"github.com/tinkerlab/labtrack/internal/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterGinRules(); err != nil {
		panic(err)
	}
}

type fakeUsers struct {
	users map[string]*models.User
}

func (f *fakeUsers) Upsert(_ context.Context, u *models.User) (*models.User, error) {
	if existing, ok := f.users[u.ID]; ok {
		return existing, nil
	}
	cp := *u
	f.users[u.ID] = &cp
	return &cp, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeReservations struct {
	submitted []models.NewReservation
	decided   []models.ReservationStatus
}

func (f *fakeReservations) Submit(_ context.Context, p models.Principal, r models.NewReservation) (*models.Reservation, error) {
	f.submitted = append(f.submitted, r)
	return &models.Reservation{ID: 1, UserID: p.UserID, EquipmentID: r.EquipmentID, Purpose: r.Purpose,
		StartTime: r.StartTime, EndTime: r.EndTime, Status: models.ReservationPending}, nil
}

func (f *fakeReservations) Decide(_ context.Context, p models.Principal, id int64, status models.ReservationStatus, notes *string) (*models.Reservation, error) {
	if id == 404 {
		return nil, apperrors.ErrReservationNotFound
	}
	f.decided = append(f.decided, status)
	return &models.Reservation{ID: id, Status: status, ApprovedBy: &p.UserID, ApprovalNotes: notes}, nil
}

func (f *fakeReservations) ListForCaller(context.Context, models.Principal) ([]*models.Reservation, error) {
	return []*models.Reservation{}, nil
}

func (f *fakeReservations) ListPending(context.Context, models.Principal) ([]*models.Reservation, error) {
	return []*models.Reservation{{ID: 2, Status: models.ReservationPending}}, nil
}

type fakeAnalytics struct{}

func (fakeAnalytics) Dashboard(context.Context, models.Principal) (*models.Dashboard, error) {
	return &models.Dashboard{
		Stats: models.DashboardStats{
			Equipment: models.EquipmentStats{Total: 24, Available: 16, InUse: 6, Maintenance: 2},
		},
		PopularEquipment: []*models.PopularEquipment{},
	}, nil
}

func (fakeAnalytics) Utilization(context.Context, models.Principal) ([]*models.EquipmentUtilization, error) {
	return []*models.EquipmentUtilization{}, nil
}

func (fakeAnalytics) ReservationStats(context.Context, models.Principal) (*models.ReservationStats, error) {
	return &models.ReservationStats{}, nil
}

type harness struct {
	router       *gin.Engine
	jwt          *jwtauth.JWTService
	reservations *fakeReservations
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	jwtService := jwtauth.NewJWTService(jwtauth.JWTConfig{SecretKey: "routes-secret", AccessTokenExp: time.Hour, TokenIssuer: "tinkerlab"})
	store := revocation.NewMemoryStore()
	authz := auth.NewAuthorizationService(nil)
	users := &fakeUsers{users: map[string]*models.User{}}
	reservations := &fakeReservations{}

	authService := services.NewAuthService(users, jwtService, store, zerolog.Nop())

	router := gin.New()
	SetupRouter(router, Controllers{
		Auth:        controllers.NewAuthController(authService),
		Reservation: controllers.NewReservationController(reservations),
		Analytics:   controllers.NewAnalyticsController(fakeAnalytics{}),
	}, middleware.NewAuthMiddleware(jwtService, store, authz))

	return &harness{router: router, jwt: jwtService, reservations: reservations}
}

func (h *harness) token(t *testing.T, id string, role models.Role) string {
	t.Helper()
	issued, err := h.jwt.GenerateToken(&models.User{ID: id, Role: role})
	require.NoError(t, err)
	return issued.Token
}

func (h *harness) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

const submitBody = `{"equipmentId":7,"purpose":"Testing the new CNC calibration",` +
	`"startTime":"2025-01-10T09:00:00Z","endTime":"2025-01-10T11:00:00Z"}`

func TestRoutes_Health(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRoutes_RequireAuthentication(t *testing.T) {
	h := newHarness(t)

	for _, path := range []string{"/api/reservations", "/api/analytics/dashboard", "/api/auth/user"} {
		w := h.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.NotEmpty(t, errorBody(t, w).Message)
	}
}

func TestRoutes_SubmitReservation(t *testing.T) {
	h := newHarness(t)
	student := h.token(t, "u1", models.RoleStudent)

	w := h.do(http.MethodPost, "/api/reservations", student, submitBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res models.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, models.ReservationPending, res.Status)
	assert.Equal(t, "u1", res.UserID)
	require.Len(t, h.reservations.submitted, 1)
	assert.Equal(t, "u1", h.reservations.submitted[0].UserID)
}

func TestRoutes_SubmitReservationBadBody(t *testing.T) {
	h := newHarness(t)
	student := h.token(t, "u1", models.RoleStudent)

	w := h.do(http.MethodPost, "/api/reservations", student, `{"purpose":"Testing the new CNC calibration"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := errorBody(t, w)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Code)
	assert.NotEmpty(t, body.Errors)
	assert.Empty(t, h.reservations.submitted)
}

func TestRoutes_DecideRoleGate(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPatch, "/api/reservations/1/approve", h.token(t, "u1", models.RoleStudent), `{"status":"approved"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "insufficient permissions", errorBody(t, w).Message)
	assert.Empty(t, h.reservations.decided)

	w = h.do(http.MethodPatch, "/api/reservations/1/approve", h.token(t, "u2", models.RoleFaculty), `{"status":"approved"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []models.ReservationStatus{models.ReservationApproved}, h.reservations.decided)

	w = h.do(http.MethodPatch, "/api/reservations/404/approve", h.token(t, "u2", models.RoleFaculty), `{"status":"rejected"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Reservation not found", errorBody(t, w).Message)

	w = h.do(http.MethodPatch, "/api/reservations/abc/approve", h.token(t, "u2", models.RoleFaculty), `{"status":"rejected"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoutes_PendingRoleGate(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/api/reservations/pending", h.token(t, "u1", models.RoleStudent), "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = h.do(http.MethodGet, "/api/reservations/pending", h.token(t, "sec", models.RoleTechSecretary), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_Dashboard(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/api/analytics/dashboard", h.token(t, "u1", models.RoleStudent), "")
	require.Equal(t, http.StatusOK, w.Code)

	var dash models.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dash))
	assert.Equal(t, models.EquipmentStats{Total: 24, Available: 16, InUse: 6, Maintenance: 2}, dash.Stats.Equipment)
}

func TestRoutes_LoginLogout(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/api/auth/login", "", `{"email":"jane@lab.edu","password":"anything"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	assert.Equal(t, models.RoleStudent, login.User.Role)

	w = h.do(http.MethodGet, "/api/auth/user", login.Token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"jane@lab.edu"`)

	w = h.do(http.MethodPost, "/api/auth/logout", login.Token, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodGet, "/api/auth/user", login.Token, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeRevokedToken, errorBody(t, w).Code)
}

func TestRoutes_LoginRejectsBadEmail(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/api/auth/login", "", `{"email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := errorBody(t, w)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "email", body.Errors[0].Field)
}
