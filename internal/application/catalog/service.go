package catalog

import (
	"context"

	"resellution-backend/internal/domain"

	"gorm.io/gorm"
)

// Service reads the category catalog. The data is reference-only: seeded at
// startup, never mutated by this service.
type Service struct {
	DB *gorm.DB
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
