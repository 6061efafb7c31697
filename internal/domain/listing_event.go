package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Listing event types recorded by the store.
const (
	EventCreated       = "CREATED"
	EventStatusChanged = "STATUS_CHANGED"
	EventDeleted       = "DELETED"
	EventImageAdded    = "IMAGE_ADDED"
)

// ListingEvent is an audit record of a lifecycle change. Events are kept
// after the listing itself is hard-deleted.
type ListingEvent struct {
	ID        string         `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	ListingID string         `gorm:"column:listing_id;type:varchar(64);index;not null" json:"listing_id"`
	EventType string         `gorm:"column:event_type;type:varchar(32);not null" json:"event_type"`
	EventData datatypes.JSON `gorm:"column:event_data;type:json" json:"event_data"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (ListingEvent) TableName() string {
	return "listing_events"
}

func (e *ListingEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}
