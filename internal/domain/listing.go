package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing condition values accepted on create.
const (
	ConditionNew     = "new"
	ConditionLikeNew = "like_new"
	ConditionGood    = "good"
	ConditionFair    = "fair"
	ConditionPoor    = "poor"
)

// Listing status values (lifecycle state machine).
const (
	StatusActive   = "active"
	StatusReserved = "reserved"
	StatusSold     = "sold"
	StatusDeleted  = "deleted"
)

// statusTransitions is the allowed transition table. The store rejects
// anything not listed here; sold listings can only be deleted, deleted
// listings are terminal.
var statusTransitions = map[string][]string{
	StatusActive:   {StatusReserved, StatusSold, StatusDeleted},
	StatusReserved: {StatusActive, StatusSold, StatusDeleted},
	StatusSold:     {StatusDeleted},
	StatusDeleted:  {},
}

// IsValidCondition reports whether c is one of the five accepted conditions.
func IsValidCondition(c string) bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// IsValidStatus reports whether s is a known listing status.
func IsValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusReserved, StatusSold, StatusDeleted:
		return true
	}
	return false
}

// CanTransition reports whether a listing may move from from to to. Setting
// the same status again is allowed (idempotent re-apply).
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Listing is a single for-sale item owned by one seller.
// Seq is an internal autoincrement used only for stable insertion ordering
// of "my listings" pages; it never appears on the wire.
type Listing struct {
	Seq          int64          `gorm:"column:seq;primaryKey;autoIncrement" json:"-"`
	ID           string         `gorm:"column:id;type:varchar(64);uniqueIndex;not null" json:"id"`
	SellerID     string         `gorm:"column:seller_id;type:varchar(64);index;not null" json:"seller_id"`
	CategoryID   *string        `gorm:"column:category_id;type:varchar(64)" json:"category_id"`
	Title        string         `gorm:"column:title;not null" json:"title"`
	Description  string         `gorm:"column:description;not null" json:"description"`
	Condition    string         `gorm:"column:condition;type:varchar(20);not null" json:"condition"`
	Price        float64        `gorm:"column:price;type:decimal(12,2);not null" json:"price"`
	Currency     string         `gorm:"column:currency;type:varchar(8);not null" json:"currency"`
	City         string         `gorm:"column:city;not null" json:"city"`
	State        *string        `gorm:"column:state" json:"state"`
	Status       string         `gorm:"column:status;type:varchar(20);default:'active'" json:"status"`
	ViewCount    int            `gorm:"column:view_count;default:0" json:"view_count"`
	SoldToUserID *string        `gorm:"column:sold_to_user_id;type:varchar(64)" json:"sold_to_user_id,omitempty"`
	CreatedAt    time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at" json:"updated_at"`
	Images       []ListingImage `gorm:"foreignKey:ListingID;references:ID" json:"images,omitempty"`
}

func (Listing) TableName() string {
	return "listings"
}

// BeforeCreate assigns the public id (DBs without default uuid).
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// ListingImage is one photo of a listing. Position is zero-based and
// contiguous within a listing; position 0 is the cover image.
type ListingImage struct {
	ID        string `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	ListingID string `gorm:"column:listing_id;type:varchar(64);index;not null" json:"listing_id"`
	ImageURL  string `gorm:"column:image_url;not null" json:"image_url"`
	Position  int    `gorm:"column:position;not null" json:"position"`
}

func (ListingImage) TableName() string {
	return "listing_images"
}

func (i *ListingImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
