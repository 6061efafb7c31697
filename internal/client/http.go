package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"resellution-backend/internal/application/listings"
	"resellution-backend/internal/domain"
)

// HTTPClient forwards every contract call unchanged to a remote backend
// implementing the same wire contract (production mode). Failed responses
// surface the message from the payload's "error" field, defaulting to
// "Request failed" when absent or malformed.
type HTTPClient struct {
	BaseURL string
	Client  *http.Client
}

func (c *HTTPClient) httpClient() *http.Client {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 15 * time.Second}
	}
	return c.Client
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.BaseURL, "/")+path, reader)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("%s: %v", RequestFailedMessage, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return remoteError(resp.StatusCode, respBody)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.New(RequestFailedMessage)
	}
	return nil
}

// remoteError maps a failed response to the same error kinds the local
// client produces, so callers cannot tell the modes apart.
func remoteError(statusCode int, body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	message := RequestFailedMessage
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		message = payload.Error
	}
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return listings.ErrListingNotFound
	case http.StatusConflict:
		return listings.ErrIllegalTransition
	}
	return errors.New(message)
}

func (c *HTTPClient) GetCategories(ctx context.Context, token string) ([]domain.Category, error) {
	var out struct {
		Categories []domain.Category `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/categories", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *HTTPClient) CreateListing(ctx context.Context, token string, req CreateListingRequest) (*domain.Listing, error) {
	var out struct {
		Listing domain.Listing `json:"listing"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/listings", token, req, &out); err != nil {
		return nil, err
	}
	return &out.Listing, nil
}

func (c *HTTPClient) MyListings(ctx context.Context, token string, params MyListingsParams) (*listings.QueryMineResult, error) {
	q := url.Values{}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	path := "/api/v1/listings/me"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var out listings.QueryMineResult
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateStatus(ctx context.Context, token, listingID, status string, soldToUserID *string) (*domain.Listing, error) {
	body := map[string]interface{}{"status": status}
	if soldToUserID != nil {
		body["sold_to_user_id"] = *soldToUserID
	}
	var out struct {
		Listing domain.Listing `json:"listing"`
	}
	if err := c.do(ctx, http.MethodPatch, "/api/v1/listings/"+listingID+"/status", token, body, &out); err != nil {
		return nil, err
	}
	return &out.Listing, nil
}

func (c *HTTPClient) DeleteListing(ctx context.Context, token, listingID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/listings/"+listingID, token, nil, nil)
}

func (c *HTTPClient) UploadImage(ctx context.Context, token, listingID, imageURL string, position *int) (*domain.ListingImage, error) {
	body := map[string]interface{}{"image_url": imageURL}
	if position != nil {
		body["position"] = *position
	}
	var out struct {
		Image domain.ListingImage `json:"image"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/listings/"+listingID+"/images", token, body, &out); err != nil {
		return nil, err
	}
	return &out.Image, nil
}
