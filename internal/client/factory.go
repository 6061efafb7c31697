package client

import (
	"resellution-backend/internal/application/catalog"
	"resellution-backend/internal/application/listings"
	"resellution-backend/internal/config"

	"gorm.io/gorm"
)

// FromConfig selects the contract implementation for the configured mode:
// remote forwards to REMOTE_API_BASE_URL, local serves from the given store.
// sellerID is the identity local-mode calls act as.
func FromConfig(cfg *config.Config, db *gorm.DB, sellerID string) Client {
	if cfg.Mode == config.ModeRemote {
		return &HTTPClient{BaseURL: cfg.RemoteAPIBaseURL}
	}
	return &LocalClient{
		Listings: &listings.Service{DB: db},
		Catalog:  &catalog.Service{DB: db},
		SellerID: sellerID,
	}
}
