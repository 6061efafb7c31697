package client

import (
	"context"

	"resellution-backend/internal/application/catalog"
	"resellution-backend/internal/application/listings"
	"resellution-backend/internal/domain"
)

// LocalClient serves the contract from the in-process store (simulated
// mode). The token is treated as an opaque credential: any non-empty value
// passes, absence fails before the store is touched.
type LocalClient struct {
	Listings *listings.Service
	Catalog  *catalog.Service
	SellerID string
}

func (c *LocalClient) GetCategories(ctx context.Context, token string) ([]domain.Category, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	return c.Catalog.Categories(ctx)
}

func (c *LocalClient) CreateListing(ctx context.Context, token string, req CreateListingRequest) (*domain.Listing, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	return c.Listings.Insert(ctx, listings.CreateListingInput{
		SellerID:    c.SellerID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Condition:   req.Condition,
		Price:       req.Price,
		Currency:    req.Currency,
		City:        req.City,
		State:       req.State,
		ImageURLs:   req.ImageURLs,
	})
}

func (c *LocalClient) MyListings(ctx context.Context, token string, params MyListingsParams) (*listings.QueryMineResult, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	return c.Listings.QueryMine(ctx, c.SellerID, params.Status, params.Page, params.Limit)
}

func (c *LocalClient) UpdateStatus(ctx context.Context, token, listingID, status string, soldToUserID *string) (*domain.Listing, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	return c.Listings.SetStatus(ctx, listingID, status, soldToUserID)
}

func (c *LocalClient) DeleteListing(ctx context.Context, token, listingID string) error {
	if token == "" {
		return ErrUnauthorized
	}
	return c.Listings.Delete(ctx, listingID)
}

func (c *LocalClient) UploadImage(ctx context.Context, token, listingID, imageURL string, position *int) (*domain.ListingImage, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	return c.Listings.AddImage(ctx, listingID, imageURL, position)
}
