package database

import (
	"resellution-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from a Postgres DSN (production).
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") when using connection poolers.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// OpenMemory opens an in-memory SQLite DB for the simulated store and tests.
// The data lives only as long as the process.
func OpenMemory() (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
}

// AutoMigrate runs migrations for the listing store models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Listing{},
		&domain.ListingImage{},
		&domain.ListingEvent{},
		&domain.Category{},
	)
}

// defaultCategories is the static catalog seeded on first start (matches
// the web client's mock catalog).
var defaultCategories = []domain.Category{
	{ID: "cat_1", Name: "Electronics", Slug: "electronics"},
	{ID: "cat_2", Name: "Furniture", Slug: "furniture"},
	{ID: "cat_3", Name: "Clothing", Slug: "clothing"},
	{ID: "cat_4", Name: "Books", Slug: "books"},
	{ID: "cat_5", Name: "Other", Slug: "other"},
}

// SeedCategories inserts the default catalog if the table is empty.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&defaultCategories).Error
}
