package listings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"resellution-backend/internal/domain"
	"resellution-backend/internal/pkg/validation"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Page size clamp for QueryMine; requests outside the range are adjusted,
// not rejected.
const (
	MinPageSize     = 5
	MaxPageSize     = 20
	DefaultPageSize = 10
)

var (
	ErrListingNotFound   = errors.New("Listing not found")
	ErrIllegalTransition = errors.New("Illegal status transition")
	ErrInvalidStatus     = errors.New("Invalid status")
)

// ValidationError is a field-scoped create error; handlers map it to 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Service is the listing store. DB may be in-memory SQLite (simulated
// mode, tests) or Postgres; behavior is identical.
type Service struct {
	DB *gorm.DB
}

type CreateListingInput struct {
	SellerID    string
	CategoryID  *string
	Title       string
	Description string
	Condition   string
	Price       float64
	Currency    string
	City        string
	State       *string
	ImageURLs   []string
}

// Insert validates the input, assigns identity and timestamps, persists the
// listing with its images at positions 0..n-1, and records a CREATED event.
func (s *Service) Insert(ctx context.Context, in CreateListingInput) (*domain.Listing, error) {
	if msg := validation.ValidateListingTitle(in.Title); msg != "" {
		return nil, &ValidationError{Field: "title", Message: msg}
	}
	if msg := validation.ValidateListingDescription(in.Description); msg != "" {
		return nil, &ValidationError{Field: "description", Message: msg}
	}
	if msg := validation.ValidateListingPrice(in.Price); msg != "" {
		return nil, &ValidationError{Field: "price", Message: msg}
	}
	if msg := validation.ValidateCity(in.City); msg != "" {
		return nil, &ValidationError{Field: "city", Message: msg}
	}
	condition := in.Condition
	if condition == "" {
		condition = domain.ConditionGood
	}
	if !domain.IsValidCondition(condition) {
		return nil, &ValidationError{Field: "condition", Message: fmt.Sprintf("Unknown condition: %s", condition)}
	}
	currency := in.Currency
	if currency == "" {
		currency = "INR"
	}

	listing := &domain.Listing{
		SellerID:    in.SellerID,
		CategoryID:  in.CategoryID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Condition:   condition,
		Price:       in.Price,
		Currency:    currency,
		City:        strings.TrimSpace(in.City),
		State:       in.State,
		Status:      domain.StatusActive,
		ViewCount:   0,
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Create(listing).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("Failed to create listing: %v", err)
	}
	for i, url := range in.ImageURLs {
		img := &domain.ListingImage{ListingID: listing.ID, ImageURL: url, Position: i}
		if err := tx.Create(img).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("Failed to create listing image: %v", err)
		}
		listing.Images = append(listing.Images, *img)
	}
	eventData, _ := json.Marshal(map[string]interface{}{
		"title": listing.Title,
		"price": listing.Price,
		"city":  listing.City,
	})
	if err := tx.Create(&domain.ListingEvent{
		ListingID: listing.ID,
		EventType: domain.EventCreated,
		EventData: datatypes.JSON(eventData),
	}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("Failed to create listing event: %v", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("Failed to create listing: %v", err)
	}
	return listing, nil
}

// QueryMineResult is one page of a seller's listings.
type QueryMineResult struct {
	Listings   []domain.Listing `json:"listings"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// QueryMine returns the seller's listings with the exact status, insertion
// ordered, sliced to the requested page. Page and limit are clamped so a
// client cannot request unbounded responses. The "draft" filter is accepted
// and yields an empty page: drafts live in the wizard, not the store.
func (s *Service) QueryMine(ctx context.Context, sellerID, status string, page, limit int) (*QueryMineResult, error) {
	if status == "" {
		status = domain.StatusActive
	}
	if page < 1 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultPageSize
	}
	if limit < MinPageSize {
		limit = MinPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	result := &QueryMineResult{
		Listings:   []domain.Listing{},
		Page:       page,
		Limit:      limit,
		TotalPages: 1,
	}
	if status == "draft" {
		return result, nil
	}

	if err := s.DB.WithContext(ctx).Model(&domain.Listing{}).
		Where("seller_id = ? AND status = ?", sellerID, status).
		Count(&result.Total).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).
		Where("seller_id = ? AND status = ?", sellerID, status).
		Order("seq ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Find(&result.Listings).Error; err != nil {
		return nil, err
	}
	if result.Total > 0 {
		result.TotalPages = int((result.Total + int64(limit) - 1) / int64(limit))
	}
	return result, nil
}

// SetStatus moves a listing to newStatus, enforcing the transition table,
// bumps updated_at and records the buyer when supplied.
func (s *Service) SetStatus(ctx context.Context, listingID, newStatus string, soldToUserID *string) (*domain.Listing, error) {
	if !domain.IsValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if !domain.CanTransition(listing.Status, newStatus) {
		return nil, ErrIllegalTransition
	}

	previous := listing.Status
	listing.Status = newStatus
	if soldToUserID != nil {
		listing.SoldToUserID = soldToUserID
	}
	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	// Save bumps updated_at via gorm's autoUpdateTime.
	if err := tx.Save(&listing).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	eventData, _ := json.Marshal(map[string]interface{}{
		"from":            previous,
		"to":              newStatus,
		"sold_to_user_id": soldToUserID,
	})
	if err := tx.Create(&domain.ListingEvent{
		ListingID: listing.ID,
		EventType: domain.EventStatusChanged,
		EventData: datatypes.JSON(eventData),
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// Delete removes a listing and cascades its images. Events are kept as the
// audit trail.
func (s *Service) Delete(ctx context.Context, listingID string) error {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrListingNotFound
		}
		return err
	}
	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Where("listing_id = ?", listingID).Delete(&domain.ListingImage{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&listing).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Create(&domain.ListingEvent{
		ListingID: listingID,
		EventType: domain.EventDeleted,
	}).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// AddImage appends an image record. Without an explicit position the image
// goes to the end; with one, it is clamped to [0, count] and trailing
// images are renumbered to keep positions contiguous.
func (s *Service) AddImage(ctx context.Context, listingID, imageURL string, position *int) (*domain.ListingImage, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.ListingImage{}).
		Where("listing_id = ?", listingID).Count(&count).Error; err != nil {
		return nil, err
	}
	pos := int(count)
	if position != nil {
		pos = *position
		if pos < 0 {
			pos = 0
		}
		if pos > int(count) {
			pos = int(count)
		}
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if pos < int(count) {
		if err := tx.Model(&domain.ListingImage{}).
			Where("listing_id = ? AND position >= ?", listingID, pos).
			Update("position", gorm.Expr("position + 1")).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	img := &domain.ListingImage{ListingID: listingID, ImageURL: imageURL, Position: pos}
	if err := tx.Create(img).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	eventData, _ := json.Marshal(map[string]interface{}{"image_url": imageURL, "position": pos})
	if err := tx.Create(&domain.ListingEvent{
		ListingID: listingID,
		EventType: domain.EventImageAdded,
		EventData: datatypes.JSON(eventData),
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return img, nil
}

// Events returns the lifecycle audit trail for a listing, newest first.
func (s *Service) Events(ctx context.Context, listingID string) ([]domain.ListingEvent, error) {
	var events []domain.ListingEvent
	if err := s.DB.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
