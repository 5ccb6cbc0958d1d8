package config

import (
	"log"

	"fitconnect/internal/adapters/persistence/models"
	"fitconnect/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedMembershipPlans(); err != nil {
		log.Printf("⚠️ Membership plan seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	// Check if admin already exists
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "ADMIN").Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: "admin",
		Email:    "admin@fitconnect.example.com",
		Password: hashedPassword,
		Role:     "ADMIN",
		Status:   models.UserStatusActive,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}

// seedMembershipPlans seeds the membership plan master data
func (s *Seeder) seedMembershipPlans() error {
	var count int64
	s.db.Model(&models.MembershipPlan{}).Count(&count)
	if count > 0 {
		return nil // Plans already seeded
	}

	plans := []models.MembershipPlan{
		{Code: "MONTHLY", Name: "Monthly", DurationMonths: 1, Fee: 1500, IsActive: true},
		{Code: "QUARTERLY", Name: "Quarterly", DurationMonths: 3, Fee: 4000, IsActive: true},
		{Code: "HALF_YEARLY", Name: "Half Yearly", DurationMonths: 6, Fee: 7500, IsActive: true},
		{Code: "YEARLY", Name: "Yearly", DurationMonths: 12, Fee: 14000, IsActive: true},
	}

	if err := s.db.Create(&plans).Error; err != nil {
		return err
	}

	log.Printf("✅ Membership plans seeded: %d plans", len(plans))
	return nil
}
