package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"resellution-backend/internal/application/listings"
	"resellution-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_CreateListingSendsBearerAndDecodes(t *testing.T) {
	var gotAuth, gotPath, gotMethod string
	var gotBody CreateListingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotMethod = r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"listing": map[string]interface{}{"id": "l-1", "title": gotBody.Title, "status": "active"},
		})
	}))
	defer srv.Close()

	c := &HTTPClient{BaseURL: srv.URL}
	listing, err := c.CreateListing(context.Background(), "tok-123", CreateListingRequest{
		Title:       "iPhone 12",
		Description: "Lightly used",
		Price:       35000,
		City:        "Mumbai",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "/api/v1/listings", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "iPhone 12", gotBody.Title)
	assert.Equal(t, "l-1", listing.ID)
	assert.Equal(t, domain.StatusActive, listing.Status)
}

func TestHTTPClient_MyListingsQueryParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(listings.QueryMineResult{
			Listings:   []domain.Listing{{ID: "l-1"}},
			Total:      11,
			Page:       2,
			Limit:      10,
			TotalPages: 2,
		})
	}))
	defer srv.Close()

	c := &HTTPClient{BaseURL: srv.URL}
	res, err := c.MyListings(context.Background(), "tok", MyListingsParams{Status: "sold", Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "limit=10&page=2&status=sold", gotQuery)
	assert.Equal(t, int64(11), res.Total)
	assert.Equal(t, 2, res.Page)
	require.Len(t, res.Listings, 1)
}

func TestHTTPClient_ErrorMessageExtracted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Title must be at least 3 characters"})
	}))
	defer srv.Close()

	c := &HTTPClient{BaseURL: srv.URL}
	_, err := c.CreateListing(context.Background(), "tok", CreateListingRequest{Title: "ab"})
	require.Error(t, err)
	assert.Equal(t, "Title must be at least 3 characters", err.Error())
}

func TestHTTPClient_MalformedErrorBodyFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer srv.Close()

	c := &HTTPClient{BaseURL: srv.URL}
	_, err := c.GetCategories(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, RequestFailedMessage, err.Error())
}

func TestHTTPClient_StatusCodesMapToSentinels(t *testing.T) {
	cases := []struct {
		code int
		want error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusNotFound, listings.ErrListingNotFound},
		{http.StatusConflict, listings.ErrIllegalTransition},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.code)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "whatever"})
		}))
		_, err := (&HTTPClient{BaseURL: srv.URL}).UpdateStatus(context.Background(), "tok", "l-1", domain.StatusSold, nil)
		assert.Equal(t, tc.want, err)
		srv.Close()
	}
}

func TestHTTPClient_DeleteListing(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Listing deleted"})
	}))
	defer srv.Close()

	err := (&HTTPClient{BaseURL: srv.URL}).DeleteListing(context.Background(), "tok", "l-9")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/v1/listings/l-9", gotPath)
}

func TestHTTPClient_UploadImageBody(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"image": map[string]interface{}{"id": "img-1", "image_url": "https://img/1.jpg", "position": 2},
		})
	}))
	defer srv.Close()

	pos := 2
	img, err := (&HTTPClient{BaseURL: srv.URL}).UploadImage(context.Background(), "tok", "l-1", "https://img/1.jpg", &pos)
	require.NoError(t, err)
	assert.Equal(t, "https://img/1.jpg", gotBody["image_url"])
	assert.Equal(t, float64(2), gotBody["position"])
	assert.Equal(t, 2, img.Position)
}
