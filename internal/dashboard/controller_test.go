package dashboard

import (
	"context"
	"errors"
	"testing"

	"resellution-backend/internal/application/listings"
	"resellution-backend/internal/client"
	"resellution-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	client.Client

	myListings   func(params client.MyListingsParams) (*listings.QueryMineResult, error)
	listCalls    []client.MyListingsParams
	deleteCalls  []string
	deleteErr    error
	statusCalls  []string
	statusBuyers []*string
	statusErr    error
}

func (f *fakeClient) MyListings(ctx context.Context, token string, params client.MyListingsParams) (*listings.QueryMineResult, error) {
	f.listCalls = append(f.listCalls, params)
	if f.myListings != nil {
		return f.myListings(params)
	}
	return &listings.QueryMineResult{Listings: []domain.Listing{}, Page: params.Page, Limit: params.Limit, TotalPages: 1}, nil
}

func (f *fakeClient) DeleteListing(ctx context.Context, token, listingID string) error {
	f.deleteCalls = append(f.deleteCalls, listingID)
	return f.deleteErr
}

func (f *fakeClient) UpdateStatus(ctx context.Context, token, listingID, status string, soldToUserID *string) (*domain.Listing, error) {
	f.statusCalls = append(f.statusCalls, listingID+":"+status)
	f.statusBuyers = append(f.statusBuyers, soldToUserID)
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &domain.Listing{ID: listingID, Status: status}, nil
}

func pageOf(items []domain.Listing, total int64, page int) *listings.QueryMineResult {
	return &listings.QueryMineResult{
		Listings:   items,
		Total:      total,
		Page:       page,
		Limit:      PageSize,
		TotalPages: int((total + PageSize - 1) / PageSize),
	}
}

func TestFetch_PopulatesView(t *testing.T) {
	fc := &fakeClient{myListings: func(p client.MyListingsParams) (*listings.QueryMineResult, error) {
		return pageOf([]domain.Listing{{ID: "l-1"}, {ID: "l-2"}}, 2, p.Page), nil
	}}
	d := New(fc, "tok")

	require.NoError(t, d.Fetch(context.Background()))
	assert.Len(t, d.Listings, 2)
	assert.Equal(t, int64(2), d.Total)
	assert.False(t, d.Loading)
	assert.Empty(t, d.Err)

	require.Len(t, fc.listCalls, 1)
	assert.Equal(t, "active", fc.listCalls[0].Status)
	assert.Equal(t, 1, fc.listCalls[0].Page)
	assert.Equal(t, PageSize, fc.listCalls[0].Limit)
}

func TestFetch_ErrorClearsView(t *testing.T) {
	fc := &fakeClient{myListings: func(p client.MyListingsParams) (*listings.QueryMineResult, error) {
		return nil, errors.New("Request failed")
	}}
	d := New(fc, "tok")
	d.Listings = []domain.Listing{{ID: "stale"}}
	d.Total = 1

	require.Error(t, d.Fetch(context.Background()))
	assert.Equal(t, "Request failed", d.Err)
	assert.Nil(t, d.Listings)
	assert.Equal(t, int64(0), d.Total)
}

func TestFetch_StaleResponseDiscarded(t *testing.T) {
	var d *Controller
	fc := &fakeClient{}
	fc.myListings = func(p client.MyListingsParams) (*listings.QueryMineResult, error) {
		// A newer fetch is issued while this one is in flight.
		d.generation++
		return pageOf([]domain.Listing{{ID: "stale"}}, 1, p.Page), nil
	}
	d = New(fc, "tok")

	require.NoError(t, d.Fetch(context.Background()))
	assert.Empty(t, d.Listings)
	assert.True(t, d.Loading)
}

func TestSetTab_ResetsToFirstPage(t *testing.T) {
	fc := &fakeClient{}
	d := New(fc, "tok")
	d.Page = 3

	require.NoError(t, d.SetTab(context.Background(), TabSold))
	assert.Equal(t, TabSold, d.Tab)
	assert.Equal(t, 1, d.Page)
	require.Len(t, fc.listCalls, 1)
	assert.Equal(t, "sold", fc.listCalls[0].Status)
	assert.Equal(t, 1, fc.listCalls[0].Page)
}

func TestPaging(t *testing.T) {
	fc := &fakeClient{myListings: func(p client.MyListingsParams) (*listings.QueryMineResult, error) {
		return pageOf([]domain.Listing{{ID: "l"}}, 25, p.Page), nil
	}}
	d := New(fc, "tok")
	require.NoError(t, d.Fetch(context.Background()))

	assert.Equal(t, 3, d.TotalPages())
	assert.False(t, d.CanPrev())
	assert.True(t, d.CanNext())

	require.NoError(t, d.NextPage(context.Background()))
	assert.Equal(t, 2, d.Page)
	require.NoError(t, d.PrevPage(context.Background()))
	assert.Equal(t, 1, d.Page)

	// PrevPage at page 1 issues no fetch.
	calls := len(fc.listCalls)
	require.NoError(t, d.PrevPage(context.Background()))
	assert.Equal(t, calls, len(fc.listCalls))
}

func TestTotalPages_NeverZero(t *testing.T) {
	d := New(&fakeClient{}, "tok")
	assert.Equal(t, 1, d.TotalPages())
}

func TestDelete_DeclinedConfirmIssuesNoRequest(t *testing.T) {
	fc := &fakeClient{}
	d := New(fc, "tok")
	d.Listings = []domain.Listing{{ID: "l-1"}}
	d.Total = 1

	err := d.Delete(context.Background(), d.Listings[0], func(string) bool { return false })
	require.NoError(t, err)
	assert.Empty(t, fc.deleteCalls)
	assert.Len(t, d.Listings, 1)
	assert.Equal(t, int64(1), d.Total)
}

func TestDelete_RemovesLocallyOnSuccess(t *testing.T) {
	fc := &fakeClient{}
	d := New(fc, "tok")
	d.Listings = []domain.Listing{{ID: "l-1"}, {ID: "l-2"}}
	d.Total = 12

	err := d.Delete(context.Background(), d.Listings[0], func(string) bool { return true })
	require.NoError(t, err)
	assert.Equal(t, []string{"l-1"}, fc.deleteCalls)
	require.Len(t, d.Listings, 1)
	assert.Equal(t, "l-2", d.Listings[0].ID)
	assert.Equal(t, int64(11), d.Total)
}

func TestDelete_FailureKeepsItem(t *testing.T) {
	fc := &fakeClient{deleteErr: listings.ErrListingNotFound}
	d := New(fc, "tok")
	d.Listings = []domain.Listing{{ID: "l-1"}}
	d.Total = 1

	err := d.Delete(context.Background(), d.Listings[0], func(string) bool { return true })
	require.Error(t, err)
	assert.Equal(t, "Listing not found", d.Err)
	assert.Len(t, d.Listings, 1)
	assert.Equal(t, int64(1), d.Total)
}

func TestDelete_SecondActionOnSameItemRejected(t *testing.T) {
	fc := &fakeClient{}
	d := New(fc, "tok")
	listing := domain.Listing{ID: "l-1"}
	d.Listings = []domain.Listing{listing}
	d.actingID = "l-1"

	err := d.Delete(context.Background(), listing, func(string) bool { return true })
	assert.Equal(t, ErrActionInProgress, err)
	assert.Empty(t, fc.deleteCalls)
}

func TestMarkSold_PromptLifecycle(t *testing.T) {
	fc := &fakeClient{}
	d := New(fc, "tok")
	listing := domain.Listing{ID: "l-1", Status: domain.StatusActive}
	d.Listings = []domain.Listing{listing}
	d.Total = 1

	assert.Nil(t, d.PendingSold())
	d.OpenMarkSold(listing)
	require.NotNil(t, d.PendingSold())
	assert.Equal(t, "l-1", d.PendingSold().ID)

	d.CancelMarkSold()
	assert.Nil(t, d.PendingSold())
	assert.Empty(t, fc.statusCalls)
}

func TestConfirmMarkSold_SuccessClosesPromptAndRemoves(t *testing.T) {
	fc := &fakeClient{}
	d := New(fc, "tok")
	listing := domain.Listing{ID: "l-1", Status: domain.StatusActive}
	d.Listings = []domain.Listing{listing}
	d.Total = 1
	d.OpenMarkSold(listing)

	require.NoError(t, d.ConfirmMarkSold(context.Background(), "buyer-9"))
	assert.Equal(t, []string{"l-1:sold"}, fc.statusCalls)
	require.Len(t, fc.statusBuyers, 1)
	require.NotNil(t, fc.statusBuyers[0])
	assert.Equal(t, "buyer-9", *fc.statusBuyers[0])
	assert.Nil(t, d.PendingSold())
	assert.Empty(t, d.Listings)
	assert.Equal(t, int64(0), d.Total)
}

func TestConfirmMarkSold_EmptyBuyerSendsNil(t *testing.T) {
	fc := &fakeClient{}
	d := New(fc, "tok")
	listing := domain.Listing{ID: "l-1"}
	d.OpenMarkSold(listing)

	require.NoError(t, d.ConfirmMarkSold(context.Background(), ""))
	require.Len(t, fc.statusBuyers, 1)
	assert.Nil(t, fc.statusBuyers[0])
}

func TestConfirmMarkSold_FailureKeepsPromptOpen(t *testing.T) {
	fc := &fakeClient{statusErr: listings.ErrIllegalTransition}
	d := New(fc, "tok")
	listing := domain.Listing{ID: "l-1"}
	d.Listings = []domain.Listing{listing}
	d.Total = 1
	d.OpenMarkSold(listing)

	err := d.ConfirmMarkSold(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, "Illegal status transition", d.Err)
	require.NotNil(t, d.PendingSold())
	assert.Len(t, d.Listings, 1)
	assert.Equal(t, int64(1), d.Total)
}

func TestConfirmMarkSold_NoPromptIsNoop(t *testing.T) {
	fc := &fakeClient{}
	d := New(fc, "tok")
	require.NoError(t, d.ConfirmMarkSold(context.Background(), "buyer"))
	assert.Empty(t, fc.statusCalls)
}
