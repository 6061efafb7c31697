package wizard

import (
	"context"
	"errors"
	"strings"

	"resellution-backend/internal/client"
	"resellution-backend/internal/domain"
	"resellution-backend/internal/pkg/validation"
)

// Step is one stage of the guided creation flow.
type Step string

const (
	StepBasic   Step = "basic"
	StepDetails Step = "details"
	StepPhotos  Step = "photos"
	StepReview  Step = "review"
)

var steps = []Step{StepBasic, StepDetails, StepPhotos, StepReview}

// ErrSubmitInProgress guards against double submission while a create call
// is in flight.
var ErrSubmitInProgress = errors.New("submit already in progress")

// Draft holds the in-progress field values for an unsaved listing.
type Draft struct {
	Title       string
	Description string
	Condition   string
	Price       float64
	Currency    string
	City        string
	State       string
	CategoryID  string
}

// Wizard drives the 4-stage creation flow: basic -> details -> photos ->
// review. Forward progression is gated on per-stage validation; backward
// navigation to any visited stage is free.
type Wizard struct {
	Client   client.Client
	Uploader Uploader
	Token    string

	Draft       Draft
	Photos      []PhotoItem
	FieldErrors map[string]string
	Err         string

	stepIndex  int
	submitting bool
	done       bool

	MaxFiles     int
	MaxSizeBytes int64
}

// New creates a wizard with the caller's city prefilled and condition
// defaulted to "good".
func New(c client.Client, up Uploader, token, userCity, currency string) *Wizard {
	return &Wizard{
		Client:   c,
		Uploader: up,
		Token:    token,
		Draft: Draft{
			Condition: domain.ConditionGood,
			Currency:  currency,
			City:      userCity,
		},
		FieldErrors:  map[string]string{},
		MaxFiles:     DefaultMaxFiles,
		MaxSizeBytes: DefaultMaxSizeBytes,
	}
}

func (w *Wizard) Step() Step {
	return steps[w.stepIndex]
}

func (w *Wizard) StepIndex() int {
	return w.stepIndex
}

// Done reports whether a submission succeeded; the caller closes the wizard.
func (w *Wizard) Done() bool {
	return w.done
}

// Categories loads the catalog for the basic stage's category picker.
func (w *Wizard) Categories(ctx context.Context) ([]domain.Category, error) {
	return w.Client.GetCategories(ctx, w.Token)
}

func (w *Wizard) validateBasic() bool {
	errs := map[string]string{}
	if msg := validation.ValidateListingTitle(w.Draft.Title); msg != "" {
		errs["title"] = msg
	}
	if strings.TrimSpace(w.Draft.City) == "" {
		errs["city"] = "City is required"
	}
	w.FieldErrors = errs
	return len(errs) == 0
}

func (w *Wizard) validateDetails() bool {
	errs := map[string]string{}
	if msg := validation.ValidateListingDescription(w.Draft.Description); msg != "" {
		errs["description"] = msg
	}
	if msg := validation.ValidateListingPrice(w.Draft.Price); msg != "" {
		errs["price"] = msg
	}
	w.FieldErrors = errs
	return len(errs) == 0
}

// Next advances one stage if the current stage validates; a failed
// validation leaves the stage unchanged and populates FieldErrors.
func (w *Wizard) Next() bool {
	w.Err = ""
	w.FieldErrors = map[string]string{}
	switch w.Step() {
	case StepBasic:
		if !w.validateBasic() {
			return false
		}
	case StepDetails:
		if !w.validateDetails() {
			return false
		}
	case StepReview:
		return false
	}
	w.stepIndex++
	return true
}

// Back moves one stage backward; never blocked.
func (w *Wizard) Back() {
	w.Err = ""
	w.FieldErrors = map[string]string{}
	if w.stepIndex > 0 {
		w.stepIndex--
	}
}

// GoTo jumps to a previously visited stage. Forward jumps are rejected;
// only Next may advance.
func (w *Wizard) GoTo(s Step) bool {
	for i, step := range steps {
		if step == s && i <= w.stepIndex {
			w.Err = ""
			w.FieldErrors = map[string]string{}
			w.stepIndex = i
			return true
		}
	}
	return false
}

// Field setters clear the field's pending error on edit.

func (w *Wizard) SetTitle(v string) {
	w.Draft.Title = v
	delete(w.FieldErrors, "title")
}

func (w *Wizard) SetCity(v string) {
	w.Draft.City = v
	delete(w.FieldErrors, "city")
}

func (w *Wizard) SetCategoryID(v string) {
	w.Draft.CategoryID = v
}

func (w *Wizard) SetDescription(v string) {
	w.Draft.Description = v
	delete(w.FieldErrors, "description")
}

func (w *Wizard) SetCondition(v string) {
	w.Draft.Condition = v
}

func (w *Wizard) SetPrice(v float64) {
	w.Draft.Price = v
	delete(w.FieldErrors, "price")
}

func (w *Wizard) SetState(v string) {
	w.Draft.State = v
}

// imageURLs collects the submittable photo URLs: uploaded items whose
// upload finished, or items carrying a direct URL. Order follows the queue.
func (w *Wizard) imageURLs() []string {
	urls := make([]string, 0, len(w.Photos))
	for _, p := range w.Photos {
		switch {
		case p.URL != "":
			urls = append(urls, p.URL)
		case p.Status == PhotoDone && p.Preview != "":
			urls = append(urls, p.Preview)
		}
	}
	return urls
}

// Submit assembles the draft plus finished photo URLs and invokes the
// create operation. Only legal at the review stage. Failure keeps the
// wizard at review with the draft intact for retry; success is terminal.
func (w *Wizard) Submit(ctx context.Context) (*domain.Listing, error) {
	if w.Step() != StepReview {
		w.Next()
		return nil, nil
	}
	if w.submitting {
		return nil, ErrSubmitInProgress
	}
	w.submitting = true
	w.Err = ""
	defer func() { w.submitting = false }()

	condition := w.Draft.Condition
	if condition == "" {
		condition = domain.ConditionGood
	}
	req := client.CreateListingRequest{
		Title:       strings.TrimSpace(w.Draft.Title),
		Description: strings.TrimSpace(w.Draft.Description),
		Condition:   condition,
		Price:       w.Draft.Price,
		Currency:    w.Draft.Currency,
		City:        strings.TrimSpace(w.Draft.City),
		ImageURLs:   w.imageURLs(),
	}
	if state := strings.TrimSpace(w.Draft.State); state != "" {
		req.State = &state
	}
	if w.Draft.CategoryID != "" {
		categoryID := w.Draft.CategoryID
		req.CategoryID = &categoryID
	}

	listing, err := w.Client.CreateListing(ctx, w.Token, req)
	if err != nil {
		w.Err = err.Error()
		return nil, err
	}
	w.done = true
	return listing, nil
}
