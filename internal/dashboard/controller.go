package dashboard

import (
	"context"
	"errors"

	"resellution-backend/internal/client"
	"resellution-backend/internal/domain"
)

// Tab is one of the three mutually exclusive dashboard views.
type Tab string

const (
	TabActive Tab = "active"
	TabSold   Tab = "sold"
	TabDraft  Tab = "draft"
)

const PageSize = 10

// ErrActionInProgress is returned when a second mutating action targets an
// item that already has one in flight.
var ErrActionInProgress = errors.New("action already in progress for this listing")

// ConfirmFunc is the blocking yes/no gate for destructive actions.
type ConfirmFunc func(message string) bool

// Controller owns the my-listings view state: current tab, page, the
// fetched slice and its total, plus per-item action gating. Mutations
// reconcile local state optimistically instead of re-fetching.
type Controller struct {
	Client client.Client
	Token  string

	Tab      Tab
	Page     int
	Listings []domain.Listing
	Total    int64
	Err      string
	Loading  bool

	// generation tags each issued fetch; a response is applied only if no
	// newer fetch was issued meanwhile, so stale responses are discarded.
	generation uint64

	actingID    string
	pendingSold *domain.Listing
}

func New(c client.Client, token string) *Controller {
	return &Controller{Client: c, Token: token, Tab: TabActive, Page: 1}
}

// Fetch re-queries the current tab and page.
func (d *Controller) Fetch(ctx context.Context) error {
	d.generation++
	gen := d.generation
	d.Loading = true
	d.Err = ""

	res, err := d.Client.MyListings(ctx, d.Token, client.MyListingsParams{
		Status: string(d.Tab),
		Page:   d.Page,
		Limit:  PageSize,
	})
	if gen != d.generation {
		// A newer fetch superseded this one; drop the result.
		return nil
	}
	d.Loading = false
	if err != nil {
		d.Err = err.Error()
		d.Listings = nil
		d.Total = 0
		return err
	}
	d.Listings = res.Listings
	d.Total = res.Total
	d.Page = res.Page
	return nil
}

// SetTab switches tabs and re-fetches from page 1.
func (d *Controller) SetTab(ctx context.Context, tab Tab) error {
	d.Tab = tab
	d.Page = 1
	return d.Fetch(ctx)
}

// Refresh is the external refresh signal (e.g. after listing creation).
func (d *Controller) Refresh(ctx context.Context) error {
	return d.Fetch(ctx)
}

func (d *Controller) TotalPages() int {
	pages := int((d.Total + PageSize - 1) / PageSize)
	if pages < 1 {
		pages = 1
	}
	return pages
}

func (d *Controller) CanPrev() bool {
	return d.Page > 1
}

func (d *Controller) CanNext() bool {
	return d.Page < d.TotalPages()
}

func (d *Controller) NextPage(ctx context.Context) error {
	if !d.CanNext() {
		return nil
	}
	d.Page++
	return d.Fetch(ctx)
}

func (d *Controller) PrevPage(ctx context.Context) error {
	if !d.CanPrev() {
		return nil
	}
	d.Page--
	return d.Fetch(ctx)
}

// Acting reports whether a mutating action is in flight for the listing.
func (d *Controller) Acting(listingID string) bool {
	return d.actingID == listingID
}

func (d *Controller) removeLocal(listingID string) {
	kept := d.Listings[:0]
	for _, l := range d.Listings {
		if l.ID != listingID {
			kept = append(kept, l)
		}
	}
	d.Listings = kept
	if d.Total > 0 {
		d.Total--
	}
}

// Delete removes a listing after the confirmation gate. A declined gate
// issues no request and leaves the store untouched. Success removes the
// item locally and decrements the total instead of re-fetching.
func (d *Controller) Delete(ctx context.Context, listing domain.Listing, confirm ConfirmFunc) error {
	if d.actingID == listing.ID {
		return ErrActionInProgress
	}
	if confirm == nil || !confirm("Delete this listing? This cannot be undone.") {
		return nil
	}
	d.actingID = listing.ID
	defer func() { d.actingID = "" }()

	if err := d.Client.DeleteListing(ctx, d.Token, listing.ID); err != nil {
		d.Err = err.Error()
		return err
	}
	d.removeLocal(listing.ID)
	return nil
}

// OpenMarkSold opens the buyer-attribution prompt for a listing.
func (d *Controller) OpenMarkSold(listing domain.Listing) {
	l := listing
	d.pendingSold = &l
}

// PendingSold returns the listing awaiting mark-sold confirmation, nil if
// the prompt is closed.
func (d *Controller) PendingSold() *domain.Listing {
	return d.pendingSold
}

// CancelMarkSold closes the prompt without a request.
func (d *Controller) CancelMarkSold() {
	d.pendingSold = nil
}

// ConfirmMarkSold transitions the prompted listing to sold, with an
// optional buyer id. Success closes the prompt and removes the item from
// the current (active) view; failure keeps the prompt open for retry.
func (d *Controller) ConfirmMarkSold(ctx context.Context, soldToUserID string) error {
	if d.pendingSold == nil {
		return nil
	}
	listing := *d.pendingSold
	if d.actingID == listing.ID {
		return ErrActionInProgress
	}
	d.actingID = listing.ID
	defer func() { d.actingID = "" }()

	var buyer *string
	if soldToUserID != "" {
		buyer = &soldToUserID
	}
	if _, err := d.Client.UpdateStatus(ctx, d.Token, listing.ID, domain.StatusSold, buyer); err != nil {
		d.Err = err.Error()
		return err
	}
	d.pendingSold = nil
	d.removeLocal(listing.ID)
	return nil
}
