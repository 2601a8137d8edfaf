package service

import (
	"context"
	"errors"
	"strings"

	"callboard/internal/authz"
	"callboard/internal/events"
	"callboard/internal/model"
	"callboard/internal/repository"

	"github.com/google/uuid"
)

var ErrEmptySubject = errors.New("newsletter subject must not be empty")

type NewsletterService interface {
	SetSubscription(ctx context.Context, userID uuid.UUID, subscribed bool) (*model.Subscription, error)
	PublishIssue(ctx context.Context, role, subject, html string) error
}

type newsletterService struct {
	subscriptionRepo repository.SubscriptionRepository
	publisher        events.EventPublisher
}

func NewNewsletterService(subscriptionRepo repository.SubscriptionRepository, pub events.EventPublisher) NewsletterService {
	return &newsletterService{
		subscriptionRepo: subscriptionRepo,
		publisher:        pub,
	}
}

func (s *newsletterService) SetSubscription(ctx context.Context, userID uuid.UUID, subscribed bool) (*model.Subscription, error) {
	return s.subscriptionRepo.Set(ctx, userID, subscribed)
}

// PublishIssue hands an issue to the worker. Unlike response notifications
// this is the operation itself, not a side effect, so a publish failure is
// returned to the caller.
func (s *newsletterService) PublishIssue(ctx context.Context, role, subject, html string) error {
	if !authz.HasCapability(role, authz.CapSendNewsletter) {
		return ErrMissingCapability
	}

	if strings.TrimSpace(subject) == "" {
		return ErrEmptySubject
	}

	return s.publisher.PublishNewsletterIssue(events.NewsletterIssueEvent{
		Subject: subject,
		HTML:    html,
	})
}
