package defaults

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"edumarkaz_backend/internals/configs"
	"edumarkaz_backend/internals/constants"
	model "edumarkaz_backend/internals/features/directory/model"
)

// dayCatalog is the fixed Monday-first day-of-week catalog.
func dayCatalog() []model.DayModel {
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	days := make([]model.DayModel, 0, len(names))
	for i, name := range names {
		days = append(days, model.DayModel{DayID: int16(i + 1), DayName: name})
	}
	return days
}

// SeedDayCatalog guarantees the global day-of-week catalog exists.
func SeedDayCatalog(db *gorm.DB) error {
	for _, day := range dayCatalog() {
		if err := db.Where("day_id = ?", day.DayID).FirstOrCreate(&day).Error; err != nil {
			return fmt.Errorf("seed day %q: %w", day.DayName, err)
		}
	}
	return nil
}

// SeedSuperadmin creates the bootstrap login if it is missing. The
// password comes from SUPERADMIN_PASSWORD and is stored as a bcrypt hash.
func SeedSuperadmin(db *gorm.DB) error {
	password := configs.GetEnv("SUPERADMIN_PASSWORD", "")
	if password == "" {
		return fmt.Errorf("SUPERADMIN_PASSWORD is not set, skipping superadmin seed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash superadmin password: %w", err)
	}

	user := model.UserModel{
		UserName:     configs.GetEnv("SUPERADMIN_LOGIN", "superadmin"),
		UserPassword: string(hash),
		UserRole:     constants.RoleSuperadmin,
	}
	if err := db.Where("user_name = ?", user.UserName).FirstOrCreate(&user).Error; err != nil {
		return fmt.Errorf("seed superadmin: %w", err)
	}
	return nil
}

// defaultRoom is the room every school starts with.
func defaultRoom(schoolID uuid.UUID) model.RoomModel {
	return model.RoomModel{
		RoomSchoolID: schoolID,
		RoomName:     "Room 1",
	}
}

// SeedDefaultRoom guarantees one room for the given school so scheduling
// always has a target. Provisioning calls it when a school is created.
func SeedDefaultRoom(db *gorm.DB, school *model.SchoolModel) error {
	room := defaultRoom(school.SchoolID)
	if err := db.Where("room_school_id = ? AND room_name = ?", room.RoomSchoolID, room.RoomName).
		FirstOrCreate(&room).Error; err != nil {
		return fmt.Errorf("seed default room for school %s: %w", school.SchoolID, err)
	}
	return nil
}

// SeedDefaultRooms backfills the default room for every existing school,
// covering schools provisioned before the seed existed.
func SeedDefaultRooms(db *gorm.DB) error {
	var schools []model.SchoolModel
	if err := db.Find(&schools).Error; err != nil {
		return fmt.Errorf("list schools: %w", err)
	}
	for i := range schools {
		if err := SeedDefaultRoom(db, &schools[i]); err != nil {
			return err
		}
	}
	return nil
}
