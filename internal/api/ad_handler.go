package api

import (
	"errors"
	"log/slog"

	"callboard/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const adsPerPage = 10

type AdHandler struct {
	adService service.AdService
	validate  *validator.Validate
}

func NewAdHandler(adService service.AdService) *AdHandler {
	return &AdHandler{
		adService: adService,
		validate:  validator.New(),
	}
}

type AdRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category,omitempty" validate:"omitempty,max=50"`
}

func (h *AdHandler) ListAds(c *fiber.Ctx) error {
	category := c.Query("category")
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	result, err := h.adService.List(c.Context(), category, page, adsPerPage)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error listing ads", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch ads"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AdHandler) GetAd(c *fiber.Ctx) error {
	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ad ID format"})
	}

	ad, err := h.adService.Get(c.Context(), adID)
	if err != nil {
		if errors.Is(err, service.ErrAdNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Ad not found"})
		}
		slog.ErrorContext(c.UserContext(), "Error getting ad", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch ad"})
	}

	return c.Status(fiber.StatusOK).JSON(ad)
}

func (h *AdHandler) CreateAd(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}
	role := GetRoleFromClaims(c)

	var request AdRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	ad, err := h.adService.Create(c.Context(), userID, role, request.Title, request.Content, request.Category)
	if err != nil {
		return h.mapAdError(c, err, "Could not create ad")
	}

	return c.Status(fiber.StatusCreated).JSON(ad)
}

func (h *AdHandler) UpdateAd(c *fiber.Ctx) error {
	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ad ID format"})
	}

	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}
	role := GetRoleFromClaims(c)

	var request AdRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	ad, err := h.adService.Update(c.Context(), adID, userID, role, request.Title, request.Content, request.Category)
	if err != nil {
		return h.mapAdError(c, err, "Could not update ad")
	}

	return c.Status(fiber.StatusOK).JSON(ad)
}

func (h *AdHandler) DeleteAd(c *fiber.Ctx) error {
	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ad ID format"})
	}

	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}
	role := GetRoleFromClaims(c)

	if err := h.adService.Delete(c.Context(), adID, userID, role); err != nil {
		return h.mapAdError(c, err, "Could not delete ad")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Ad deleted"})
}

func (h *AdHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.adService.GetCategories(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch categories"})
	}
	return c.Status(fiber.StatusOK).JSON(categories)
}

// mapAdError translates service sentinels into a single consistent HTTP
// policy: validation to 400, missing rows to 404 and any authorization
// failure to 403.
func (h *AdHandler) mapAdError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrAdNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrMissingCapability), errors.Is(err, service.ErrNotAdAuthor):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrEmptyTitle),
		errors.Is(err, service.ErrEmptyContent):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		slog.ErrorContext(c.UserContext(), fallback, slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}
