package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/app/repositories"
)

func strPtr(s string) *string { return &s }

func int32Ptr(v int32) *int32 { return &v }

// DefaultStaff are the accounts that exist before anyone logs in. Ids are
// emails so a staff login resolves to the seeded row and keeps its role.
var DefaultStaff = []models.User{
	staff("admin@tinkerlab.local", "Lab", "Admin", models.RoleAdmin),
	staff("faculty@tinkerlab.local", "Lab", "Supervisor", models.RoleFaculty),
	staff("tech@tinkerlab.local", "Lab", "Technician", models.RoleTechSecretary),
}

func staff(email, first, last string, role models.Role) models.User {
	return models.User{ID: email, Email: strPtr(email), FirstName: strPtr(first), LastName: strPtr(last), Role: role}
}

// DefaultEquipment is the starter catalog
var DefaultEquipment = []models.Equipment{
	{
		Name:             "CNC Mill",
		Description:      strPtr("Three axis CNC milling machine"),
		Category:         models.CategoryMachining,
		Location:         "Bay 2",
		MaxUsageDuration: int32Ptr(240),
		RequiresTraining: true,
	},
	{
		Name:             "Laser Cutter",
		Description:      strPtr("60W CO2 laser cutter"),
		Category:         models.CategoryMachining,
		Location:         "Bay 1",
		MaxUsageDuration: int32Ptr(120),
		RequiresTraining: true,
	},
	{
		Name:        "3D Printer",
		Description: strPtr("FDM printer, 250mm build volume"),
		Category:    models.CategoryPrinting,
		Location:    "Print Room",
	},
	{
		Name:        "Oscilloscope",
		Description: strPtr("4 channel 200MHz digital oscilloscope"),
		Category:    models.CategoryElectronics,
		Location:    "Electronics Bench",
	},
	{
		Name:             "Tensile Tester",
		Description:      strPtr("Universal testing machine, 10kN"),
		Category:         models.CategoryTesting,
		Location:         "Materials Lab",
		RequiresTraining: true,
	},
}

// CreateDefaultData creates staff accounts and the starter equipment catalog
// if they don't exist. Failures are collected so one bad row does not stop
// the rest.
func CreateDefaultData(ctx context.Context, userRepo repositories.IUserRepository, equipmentRepo repositories.IEquipmentRepository, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (staff/equipment)...")
	var finalErr error

	for _, staff := range DefaultStaff {
		user := staff
		if _, err := userRepo.Upsert(ctx, &user); err != nil {
			lgr.Error().Err(err).Str("userID", user.ID).Msg("Error creating staff user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	created := 0
	for _, item := range DefaultEquipment {
		exists, err := equipmentRepo.ExistsByName(ctx, item.Name)
		if err != nil {
			lgr.Error().Err(err).Str("name", item.Name).Msg("Error checking equipment")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			continue
		}

		equipment := item
		equipment.Status = models.EquipmentAvailable
		equipment.IsActive = true
		if _, err := equipmentRepo.Create(ctx, &equipment); err != nil {
			lgr.Error().Err(err).Str("name", item.Name).Msg("Error creating equipment")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		created++
	}

	lgr.Info().Int("equipmentCreated", created).Msg("Default data check finished")
	return finalErr
}
