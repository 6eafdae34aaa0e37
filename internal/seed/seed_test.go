package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinkerlab/labtrack/internal/app/models"
)

type fakeUsers struct {
	saved map[string]models.User
	err   error
}

func (f *fakeUsers) Upsert(_ context.Context, u *models.User) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.saved == nil {
		f.saved = map[string]models.User{}
	}
	f.saved[u.ID] = *u
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u := f.saved[id]
	return &u, nil
}

type fakeEquipment struct {
	byName map[string]models.Equipment
	nextID int64
}

func (f *fakeEquipment) Create(_ context.Context, e *models.Equipment) (*models.Equipment, error) {
	if f.byName == nil {
		f.byName = map[string]models.Equipment{}
	}
	f.nextID++
	e.ID = f.nextID
	f.byName[e.Name] = *e
	return e, nil
}

func (f *fakeEquipment) GetByID(context.Context, int64) (*models.Equipment, error) { return nil, nil }
func (f *fakeEquipment) ListActive(context.Context) ([]*models.Equipment, error) { return nil, nil }
func (f *fakeEquipment) Update(context.Context, int64, models.EquipmentUpdate) (*models.Equipment, error) {
	return nil, nil
}
func (f *fakeEquipment) UpdateStatus(context.Context, int64, models.EquipmentStatus) (*models.Equipment, error) {
	return nil, nil
}
func (f *fakeEquipment) Deactivate(context.Context, int64) error { return nil }

func (f *fakeEquipment) ExistsByName(_ context.Context, name string) (bool, error) {
	_, ok := f.byName[name]
	return ok, nil
}

func TestCreateDefaultData_SeedsStaffAndCatalog(t *testing.T) {
	users := &fakeUsers{}
	equipment := &fakeEquipment{}

	require.NoError(t, CreateDefaultData(context.Background(), users, equipment, zerolog.Nop()))

	assert.Len(t, users.saved, len(DefaultStaff))
	assert.Equal(t, models.RoleAdmin, users.saved["admin@tinkerlab.local"].Role)
	assert.Equal(t, models.RoleTechSecretary, users.saved["tech@tinkerlab.local"].Role)

	require.Len(t, equipment.byName, len(DefaultEquipment))
	mill := equipment.byName["CNC Mill"]
	assert.Equal(t, models.EquipmentAvailable, mill.Status)
	assert.True(t, mill.IsActive)
	assert.True(t, mill.RequiresTraining)
}

func TestCreateDefaultData_SkipsExistingEquipment(t *testing.T) {
	users := &fakeUsers{}
	equipment := &fakeEquipment{}
	require.NoError(t, CreateDefaultData(context.Background(), users, equipment, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(context.Background(), users, equipment, zerolog.Nop()))

	assert.EqualValues(t, len(DefaultEquipment), equipment.nextID)
}

func TestCreateDefaultData_CollectsErrors(t *testing.T) {
	users := &fakeUsers{err: errors.New("db down")}
	equipment := &fakeEquipment{}

	err := CreateDefaultData(context.Background(), users, equipment, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.Len(t, equipment.byName, len(DefaultEquipment))
}
