package api

import (
	"errors"
	"log/slog"

	"callboard/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type NewsletterHandler struct {
	newsletterService service.NewsletterService
	validate          *validator.Validate
}

func NewNewsletterHandler(newsletterService service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{
		newsletterService: newsletterService,
		validate:          validator.New(),
	}
}

type SetSubscriptionRequest struct {
	Subscribed *bool `json:"subscribed" validate:"required"`
}

type PublishIssueRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	HTML    string `json:"html" validate:"required"`
}

func (h *NewsletterHandler) SetSubscription(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	var request SetSubscriptionRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	sub, err := h.newsletterService.SetSubscription(c.Context(), userID, *request.Subscribed)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error setting subscription", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update subscription"})
	}

	return c.Status(fiber.StatusOK).JSON(sub)
}

func (h *NewsletterHandler) PublishIssue(c *fiber.Ctx) error {
	role := GetRoleFromClaims(c)

	var request PublishIssueRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	err := h.newsletterService.PublishIssue(c.Context(), role, request.Subject, request.HTML)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCapability):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrEmptySubject):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			slog.ErrorContext(c.UserContext(), "Error publishing newsletter issue", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not publish issue"})
		}
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "Newsletter issue queued"})
}
