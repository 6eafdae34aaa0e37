package services

import (
	"context"
	"sync"
	"time"

	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
)

var (
	student = models.Principal{UserID: "u1", Email: "u1@lab.edu", Role: models.RoleStudent}
	faculty = models.Principal{UserID: "u2", Email: "u2@lab.edu", Role: models.RoleFaculty}
	admin   = models.Principal{UserID: "admin", Email: "admin@lab.edu", Role: models.RoleAdmin}

	t0 = time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	t1 = t0.Add(2 * time.Hour)
)

func strPtr(s string) *string { return &s }

// equipmentRepoStub keeps equipment in memory
type equipmentRepoStub struct {
	items    map[int64]*models.Equipment
	nextID   int64
	statuses []models.EquipmentStatus
}

func newEquipmentRepoStub(items ...*models.Equipment) *equipmentRepoStub {
	s := &equipmentRepoStub{items: map[int64]*models.Equipment{}, nextID: 100}
	for _, e := range items {
		s.items[e.ID] = e
	}
	return s
}

func (s *equipmentRepoStub) Create(_ context.Context, e *models.Equipment) (*models.Equipment, error) {
	s.nextID++
	cp := *e
	cp.ID = s.nextID
	s.items[cp.ID] = &cp
	return &cp, nil
}

func (s *equipmentRepoStub) GetByID(_ context.Context, id int64) (*models.Equipment, error) {
	e, ok := s.items[id]
	if !ok {
		return nil, apperrors.ErrEquipmentNotFound
	}
	return e, nil
}

func (s *equipmentRepoStub) ListActive(_ context.Context) ([]*models.Equipment, error) {
	var out []*models.Equipment
	for _, e := range s.items {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *equipmentRepoStub) Update(_ context.Context, id int64, u models.EquipmentUpdate) (*models.Equipment, error) {
	e, ok := s.items[id]
	if !ok {
		return nil, apperrors.ErrEquipmentNotFound
	}
	if u.Name != nil {
		e.Name = *u.Name
	}
	if u.Location != nil {
		e.Location = *u.Location
	}
	return e, nil
}

func (s *equipmentRepoStub) UpdateStatus(_ context.Context, id int64, status models.EquipmentStatus) (*models.Equipment, error) {
	e, ok := s.items[id]
	if !ok {
		return nil, apperrors.ErrEquipmentNotFound
	}
	s.statuses = append(s.statuses, status)
	e.Status = status
	return e, nil
}

func (s *equipmentRepoStub) Deactivate(_ context.Context, id int64) error {
	e, ok := s.items[id]
	if !ok {
		return apperrors.ErrEquipmentNotFound
	}
	e.IsActive = false
	return nil
}

func (s *equipmentRepoStub) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, e := range s.items {
		if e.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// reservationRepoStub keeps reservations in memory and joins equipment names
type reservationRepoStub struct {
	equipment *equipmentRepoStub
	items     map[int64]*models.Reservation
	order     []int64
	nextID    int64
	creates   int
	updates   int
}

func newReservationRepoStub(equipment *equipmentRepoStub) *reservationRepoStub {
	return &reservationRepoStub{equipment: equipment, items: map[int64]*models.Reservation{}}
}

func (s *reservationRepoStub) Create(_ context.Context, r models.NewReservation) (*models.Reservation, error) {
	s.creates++
	s.nextID++
	res := &models.Reservation{
		ID:          s.nextID,
		UserID:      r.UserID,
		EquipmentID: r.EquipmentID,
		Purpose:     r.Purpose,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Status:      models.ReservationPending,
	}
	s.items[res.ID] = res
	s.order = append(s.order, res.ID)
	cp := *res
	return &cp, nil
}

func (s *reservationRepoStub) GetByID(_ context.Context, id int64) (*models.Reservation, error) {
	r, ok := s.items[id]
	if !ok {
		return nil, apperrors.ErrReservationNotFound
	}
	cp := *r
	if e, ok := s.equipment.items[r.EquipmentID]; ok {
		cp.Equipment = &models.EquipmentSummary{ID: e.ID, Name: e.Name, Location: e.Location}
	}
	return &cp, nil
}

func (s *reservationRepoStub) filter(keep func(*models.Reservation) bool) []*models.Reservation {
	var out []*models.Reservation
	for _, id := range s.order {
		if r := s.items[id]; keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s *reservationRepoStub) ListAll(_ context.Context) ([]*models.Reservation, error) {
	return s.filter(func(*models.Reservation) bool { return true }), nil
}

func (s *reservationRepoStub) ListByUser(_ context.Context, userID string) ([]*models.Reservation, error) {
	return s.filter(func(r *models.Reservation) bool { return r.UserID == userID }), nil
}

func (s *reservationRepoStub) ListPending(_ context.Context) ([]*models.Reservation, error) {
	return s.filter(func(r *models.Reservation) bool { return r.Status == models.ReservationPending }), nil
}

func (s *reservationRepoStub) UpdateStatus(_ context.Context, id int64, status models.ReservationStatus, approvedBy string, notes *string) error {
	r, ok := s.items[id]
	if !ok {
		return apperrors.ErrReservationNotFound
	}
	s.updates++
	r.Status = status
	r.ApprovedBy = &approvedBy
	r.ApprovalNotes = notes
	return nil
}

// notificationRepoStub records created notifications
type notificationRepoStub struct {
	mu      sync.Mutex
	created []*models.Notification
	failErr error
}

func (s *notificationRepoStub) Create(_ context.Context, n models.NewNotification) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	stored := &models.Notification{
		ID:        int64(len(s.created) + 1),
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Related:   n.Related,
		CreatedAt: t0,
	}
	s.created = append(s.created, stored)
	return stored, nil
}

func (s *notificationRepoStub) ListByUser(_ context.Context, userID string) ([]*models.Notification, error) {
	var out []*models.Notification
	for i := len(s.created) - 1; i >= 0; i-- {
		if s.created[i].UserID == userID {
			out = append(out, s.created[i])
		}
	}
	return out, nil
}

func (s *notificationRepoStub) MarkRead(_ context.Context, id int64, userID string) (*models.Notification, error) {
	for _, n := range s.created {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return n, nil
		}
	}
	return nil, apperrors.ErrNotificationNotFound
}

func (s *notificationRepoStub) forUser(userID string) []*models.Notification {
	var out []*models.Notification
	for _, n := range s.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// publisherStub records pushed notifications
type publisherStub struct {
	published []*models.Notification
}

func (p *publisherStub) PublishNotification(_ context.Context, n *models.Notification) {
	p.published = append(p.published, n)
}

// usageRepoStub keeps usage logs in memory
type usageRepoStub struct {
	items    map[int64]*models.UsageLog
	nextID   int64
	checkIns int
}

func newUsageRepoStub(items ...*models.UsageLog) *usageRepoStub {
	s := &usageRepoStub{items: map[int64]*models.UsageLog{}, nextID: 50}
	for _, l := range items {
		s.items[l.ID] = l
	}
	return s
}

func (s *usageRepoStub) Create(_ context.Context, l *models.UsageLog) (*models.UsageLog, error) {
	s.nextID++
	cp := *l
	cp.ID = s.nextID
	s.items[cp.ID] = &cp
	return &cp, nil
}

func (s *usageRepoStub) GetByID(_ context.Context, id int64) (*models.UsageLog, error) {
	l, ok := s.items[id]
	if !ok {
		return nil, apperrors.ErrUsageLogNotFound
	}
	return l, nil
}

func (s *usageRepoStub) ListByEquipment(_ context.Context, equipmentID int64) ([]*models.UsageLog, error) {
	var out []*models.UsageLog
	for _, l := range s.items {
		if l.EquipmentID == equipmentID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *usageRepoStub) CheckIn(_ context.Context, id int64, at time.Time, minutes int32, notes *string) (*models.UsageLog, error) {
	l, ok := s.items[id]
	if !ok {
		return nil, apperrors.ErrUsageLogNotFound
	}
	s.checkIns++
	l.CheckedInAt = &at
	l.ActualUsageDuration = &minutes
	l.Notes = notes
	return l, nil
}

// userRepoStub keeps users in memory and never overwrites stored roles
type userRepoStub struct {
	users map[string]*models.User
}

func (s *userRepoStub) Upsert(_ context.Context, u *models.User) (*models.User, error) {
	if s.users == nil {
		s.users = map[string]*models.User{}
	}
	if existing, ok := s.users[u.ID]; ok {
		if u.FirstName != nil {
			existing.FirstName = u.FirstName
		}
		return existing, nil
	}
	cp := *u
	cp.IsActive = true
	s.users[u.ID] = &cp
	return &cp, nil
}

func (s *userRepoStub) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

// analyticsRepoStub returns canned aggregates
type analyticsRepoStub struct {
	stats   *models.DashboardStats
	popular []*models.PopularEquipment
	limit   uint64
}

func (s *analyticsRepoStub) DashboardStats(context.Context) (*models.DashboardStats, error) {
	return s.stats, nil
}

func (s *analyticsRepoStub) PopularEquipment(_ context.Context, limit uint64) ([]*models.PopularEquipment, error) {
	s.limit = limit
	return s.popular, nil
}

func (s *analyticsRepoStub) EquipmentUtilization(context.Context) ([]*models.EquipmentUtilization, error) {
	return []*models.EquipmentUtilization{{EquipmentID: 7, Name: "CNC Mill", TotalReservations: 3}}, nil
}

func (s *analyticsRepoStub) ReservationStats(context.Context) (*models.ReservationStats, error) {
	return &models.ReservationStats{Total: 5, Pending: 2, Approved: 2, Active: 1}, nil
}
