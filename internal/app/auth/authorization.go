package auth

import (
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
	"github.com/tinkerlab/labtrack/internal/pkg/logger"
)

// Operation names a gated action
type Operation string

const (
	OpViewEquipment           Operation = "equipment:view"
	OpCreateEquipment         Operation = "equipment:create"
	OpUpdateEquipment         Operation = "equipment:update"
	OpRetireEquipment         Operation = "equipment:retire"
	OpUpdateEquipmentStatus   Operation = "equipment:status"
	OpSubmitReservation       Operation = "reservation:submit"
	OpDecideReservation       Operation = "reservation:decide"
	OpListPendingReservations Operation = "reservation:pending"
	OpViewAllReservations     Operation = "reservation:view_all"
	OpRecordUsage             Operation = "usage:record"
	OpLogMaintenance          Operation = "maintenance:log"
	OpCertifyTraining         Operation = "training:certify"
	OpViewAnalytics           Operation = "analytics:view"
)

var (
	everyone = []models.Role{models.RoleStudent, models.RoleFaculty, models.RoleTechSecretary, models.RoleAdmin}
	staff    = []models.Role{models.RoleFaculty, models.RoleTechSecretary, models.RoleAdmin}
	curators = []models.Role{models.RoleAdmin, models.RoleFaculty}
)

// DefaultPolicy maps every operation to the roles allowed to invoke it.
// Roles are matched by membership only; there is no ordering between them.
func DefaultPolicy() map[Operation][]models.Role {
	return map[Operation][]models.Role{
		OpViewEquipment:           everyone,
		OpCreateEquipment:         curators,
		OpUpdateEquipment:         curators,
		OpRetireEquipment:         curators,
		OpUpdateEquipmentStatus:   everyone,
		OpSubmitReservation:       everyone,
		OpDecideReservation:       staff,
		OpListPendingReservations: staff,
		OpViewAllReservations:     staff,
		OpRecordUsage:             everyone,
		OpLogMaintenance:          staff,
		OpCertifyTraining:         staff,
		OpViewAnalytics:           everyone,
	}
}

// AuthorizationService answers role checks against an allow-list policy
type AuthorizationService struct {
	policy map[Operation]map[models.Role]struct{}
}

// NewAuthorizationService creates a new AuthorizationService. A nil policy
// means DefaultPolicy.
func NewAuthorizationService(policy map[Operation][]models.Role) *AuthorizationService {
	if policy == nil {
		policy = DefaultPolicy()
	}
	compiled := make(map[Operation]map[models.Role]struct{}, len(policy))
	for op, roles := range policy {
		set := make(map[models.Role]struct{}, len(roles))
		for _, r := range roles {
			set[r] = struct{}{}
		}
		compiled[op] = set
	}
	return &AuthorizationService{policy: compiled}
}

// Allowed reports whether role may invoke op. Unknown operations are denied.
func (s *AuthorizationService) Allowed(role models.Role, op Operation) bool {
	roles, ok := s.policy[op]
	if !ok {
		return false
	}
	_, ok = roles[role]
	return ok
}

// Authorize returns a permission error when the principal's role may not invoke op
func (s *AuthorizationService) Authorize(principal models.Principal, op Operation) error {
	if s.Allowed(principal.Role, op) {
		return nil
	}
	logger.Debug().
		Str("userID", principal.UserID).
		Str("role", string(principal.Role)).
		Str("operation", string(op)).
		Msg("Operation denied for role")
	return apperrors.NewForbiddenError(apperrors.ErrPermissionDenied.Error())
}
