package listings

import (
	catsvc "resellution-backend/internal/application/catalog"
	listsvc "resellution-backend/internal/application/listings"
	"resellution-backend/internal/middleware"
	"resellution-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *listsvc.Service
	Catalog *catsvc.Service
}

// GET /api/v1/categories — { categories }
func (h *Handlers) GetCategories(c *fiber.Ctx) error {
	categories, err := h.Catalog.Categories(c.Context())
	if err != nil {
		return response.Error(c, "Request failed", fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// POST /api/v1/listings — 201 with { listing }
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	var body struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Condition   string   `json:"condition"`
		Price       float64  `json:"price"`
		Currency    string   `json:"currency"`
		City        string   `json:"city"`
		State       *string  `json:"state"`
		CategoryID  *string  `json:"category_id"`
		ImageURLs   []string `json:"image_urls"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}

	listing, err := h.Service.Insert(c.Context(), listsvc.CreateListingInput{
		SellerID:    middleware.UserID(c),
		CategoryID:  body.CategoryID,
		Title:       body.Title,
		Description: body.Description,
		Condition:   body.Condition,
		Price:       body.Price,
		Currency:    body.Currency,
		City:        body.City,
		State:       body.State,
		ImageURLs:   body.ImageURLs,
	})
	if err != nil {
		if ve, ok := err.(*listsvc.ValidationError); ok {
			return response.Error(c, ve.Message, fiber.StatusBadRequest)
		}
		return response.Error(c, "Request failed", fiber.StatusInternalServerError)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"listing": listing})
}

// GET /api/v1/listings/me?status&page&limit — { listings, total, page, limit, total_pages }
func (h *Handlers) MyListings(c *fiber.Ctx) error {
	result, err := h.Service.QueryMine(
		c.Context(),
		middleware.UserID(c),
		c.Query("status"),
		c.QueryInt("page"),
		c.QueryInt("limit"),
	)
	if err != nil {
		return response.Error(c, "Request failed", fiber.StatusInternalServerError)
	}
	return c.JSON(result)
}

// PATCH /api/v1/listings/:id/status — { listing }; 409 on illegal transition
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	var body struct {
		Status       string  `json:"status"`
		SoldToUserID *string `json:"sold_to_user_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}

	listing, err := h.Service.SetStatus(c.Context(), c.Params("id"), body.Status, body.SoldToUserID)
	if err != nil {
		switch err {
		case listsvc.ErrInvalidStatus:
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		case listsvc.ErrListingNotFound:
			return response.NotFound(c, err.Error())
		case listsvc.ErrIllegalTransition:
			return response.Error(c, err.Error(), fiber.StatusConflict)
		default:
			return response.Error(c, "Request failed", fiber.StatusInternalServerError)
		}
	}
	return c.JSON(fiber.Map{"listing": listing})
}

// DELETE /api/v1/listings/:id — { message }
func (h *Handlers) DeleteListing(c *fiber.Ctx) error {
	if err := h.Service.Delete(c.Context(), c.Params("id")); err != nil {
		if err == listsvc.ErrListingNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Request failed", fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"message": "Listing deleted"})
}

// POST /api/v1/listings/:id/images — { image }
func (h *Handlers) UploadImage(c *fiber.Ctx) error {
	var body struct {
		ImageURL string `json:"image_url"`
		Position *int   `json:"position"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	if body.ImageURL == "" {
		return response.Error(c, "image_url is required", fiber.StatusBadRequest)
	}

	img, err := h.Service.AddImage(c.Context(), c.Params("id"), body.ImageURL, body.Position)
	if err != nil {
		if err == listsvc.ErrListingNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Request failed", fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"image": img})
}

// GET /api/v1/listings/:id/events — { events }, newest first
func (h *Handlers) GetEvents(c *fiber.Ctx) error {
	events, err := h.Service.Events(c.Context(), c.Params("id"))
	if err != nil {
		return response.Error(c, "Request failed", fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"events": events})
}
