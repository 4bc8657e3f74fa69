package config

import (
	"log"

	"gorm.io/gorm"

	"skyfare/internal/adapters/persistence/models"
	"skyfare/internal/core/domain"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the bootstrap administrator when none exists. The
// credential comes from SEED_ADMIN_PASSWORD; with it unset the seeder skips,
// which is what production wants.
func (s *Seeder) seedAdminUser() error {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("role = ? AND is_deleted = ?", domain.RoleAdministrator, false).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Admin already exists
	}

	if s.cfg.Seed.AdminPassword == "" {
		log.Println("⚠️ Skipping admin seed: SEED_ADMIN_PASSWORD not set")
		return nil
	}

	admin := &models.User{
		Name:     "Administrator",
		Username: s.cfg.Seed.AdminUsername,
		Password: s.cfg.Seed.AdminPassword,
		Role:     domain.RoleAdministrator,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}
