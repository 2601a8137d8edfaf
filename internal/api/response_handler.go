package api

import (
	"errors"
	"log/slog"

	"callboard/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ResponseHandler struct {
	responseService service.ResponseService
	validate        *validator.Validate
}

func NewResponseHandler(responseService service.ResponseService) *ResponseHandler {
	return &ResponseHandler{
		responseService: responseService,
		validate:        validator.New(),
	}
}

type CreateResponseRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *ResponseHandler) CreateResponse(c *fiber.Ctx) error {
	adID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ad ID format"})
	}

	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	var request CreateResponseRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	response, err := h.responseService.Create(c.Context(), adID, userID, GetUsernameFromClaims(c), request.Content)
	if err != nil {
		return h.mapResponseError(c, err, "Could not create response")
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// ListResponses always scopes to ads authored by the caller; the optional
// `ad` query narrows it to a single ad.
func (h *ResponseHandler) ListResponses(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}
	role := GetRoleFromClaims(c)

	var adFilter *uuid.UUID
	if adParam := c.Query("ad"); adParam != "" {
		adID, err := uuid.Parse(adParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ad filter format"})
		}
		adFilter = &adID
	}

	responses, err := h.responseService.List(c.Context(), userID, role, adFilter)
	if err != nil {
		return h.mapResponseError(c, err, "Could not fetch responses")
	}

	return c.Status(fiber.StatusOK).JSON(responses)
}

func (h *ResponseHandler) GetResponse(c *fiber.Ctx) error {
	responseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid response ID format"})
	}

	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	response, err := h.responseService.Get(c.Context(), responseID, userID)
	if err != nil {
		return h.mapResponseError(c, err, "Could not fetch response")
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func (h *ResponseHandler) AcceptResponse(c *fiber.Ctx) error {
	responseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid response ID format"})
	}

	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	response, err := h.responseService.Accept(c.Context(), responseID, userID)
	if err != nil {
		return h.mapResponseError(c, err, "Could not accept response")
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func (h *ResponseHandler) DeleteResponse(c *fiber.Ctx) error {
	responseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid response ID format"})
	}

	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	if err := h.responseService.Delete(c.Context(), responseID, userID); err != nil {
		return h.mapResponseError(c, err, "Could not delete response")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Response deleted"})
}

func (h *ResponseHandler) mapResponseError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrAdNotFound), errors.Is(err, service.ErrResponseNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotAdAuthor),
		errors.Is(err, service.ErrMissingCapability),
		errors.Is(err, service.ErrResponseForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyContent):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		slog.ErrorContext(c.UserContext(), fallback, slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}
