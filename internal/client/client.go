package client

import (
	"context"
	"errors"

	"resellution-backend/internal/application/listings"
	"resellution-backend/internal/domain"
)

// ErrUnauthorized is returned before any store or network call when the
// caller supplies no credential, and for remote 401 responses.
var ErrUnauthorized = errors.New("Unauthorized")

// RequestFailedMessage is the fallback when a failed response carries no
// usable "error" field.
const RequestFailedMessage = "Request failed"

// CreateListingRequest is the payload of POST /api/v1/listings.
type CreateListingRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Condition   string   `json:"condition"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency,omitempty"`
	City        string   `json:"city"`
	State       *string  `json:"state,omitempty"`
	CategoryID  *string  `json:"category_id,omitempty"`
	ImageURLs   []string `json:"image_urls,omitempty"`
}

// MyListingsParams filters/pages the "my listings" query. Zero values mean
// server defaults (status "active", page 1, limit 10).
type MyListingsParams struct {
	Status string
	Page   int
	Limit  int
}

// Client is the listing service contract consumed by the creation wizard
// and the dashboard. The local and HTTP implementations are behaviorally
// indistinguishable; every call carries the caller's bearer token.
type Client interface {
	GetCategories(ctx context.Context, token string) ([]domain.Category, error)
	CreateListing(ctx context.Context, token string, req CreateListingRequest) (*domain.Listing, error)
	MyListings(ctx context.Context, token string, params MyListingsParams) (*listings.QueryMineResult, error)
	UpdateStatus(ctx context.Context, token, listingID, status string, soldToUserID *string) (*domain.Listing, error)
	DeleteListing(ctx context.Context, token, listingID string) error
	UploadImage(ctx context.Context, token, listingID, imageURL string, position *int) (*domain.ListingImage, error)
}
