package seeds

import (
	"log"

	"gorm.io/gorm"

	defaults "edumarkaz_backend/internals/seeds/defaults"
)

// RunAll applies the process-wide defaults once at startup. Every seed
// is idempotent (FirstOrCreate), so re-running on deploy is harmless.
func RunAll(db *gorm.DB) {
	log.Println("[INFO] Running startup seeds...")

	if err := defaults.SeedDayCatalog(db); err != nil {
		log.Printf("[WARN] day catalog seed: %v", err)
	}
	if err := defaults.SeedSuperadmin(db); err != nil {
		log.Printf("[WARN] superadmin seed: %v", err)
	}
	if err := defaults.SeedDefaultRooms(db); err != nil {
		log.Printf("[WARN] default room seed: %v", err)
	}
}
