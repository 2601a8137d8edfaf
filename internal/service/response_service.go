package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"callboard/internal/authz"
	"callboard/internal/events"
	"callboard/internal/model"
	"callboard/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrResponseNotFound  = errors.New("response not found")
	ErrResponseForbidden = errors.New("response is not visible to this user")
)

type ResponseService interface {
	Create(ctx context.Context, adID, authorID uuid.UUID, authorName, content string) (*model.Response, error)
	Accept(ctx context.Context, responseID, actorID uuid.UUID) (*model.ResponseDetails, error)
	Delete(ctx context.Context, responseID, actorID uuid.UUID) error
	List(ctx context.Context, actorID uuid.UUID, role string, adFilter *uuid.UUID) ([]model.ResponseDetails, error)
	Get(ctx context.Context, responseID, actorID uuid.UUID) (*model.ResponseDetails, error)
}

type responseService struct {
	responseRepo repository.ResponseRepository
	adRepo       repository.AdRepository
	publisher    events.EventPublisher
}

func NewResponseService(responseRepo repository.ResponseRepository, adRepo repository.AdRepository, pub events.EventPublisher) ResponseService {
	return &responseService{
		responseRepo: responseRepo,
		adRepo:       adRepo,
		publisher:    pub,
	}
}

// Create submits a response against an ad and notifies the ad's author.
// Notification is published after the row is committed and never fails the
// request; the worker decides whether the author's address is usable.
func (s *responseService) Create(ctx context.Context, adID, authorID uuid.UUID, authorName, content string) (*model.Response, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	ad, err := s.adRepo.FindByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, ErrAdNotFound
	}

	response := &model.Response{
		AdID:     adID,
		AuthorID: authorID,
		Content:  content,
	}

	created, err := s.responseRepo.Create(ctx, response)
	if err != nil {
		return nil, err
	}

	go s.publisher.PublishResponseCreated(events.ResponseCreatedEvent{
		ResponseID:    created.ID,
		AdID:          ad.ID,
		AdTitle:       ad.Title,
		AdAuthorID:    ad.AuthorID,
		ResponderName: authorName,
		CreatedAt:     created.CreatedAt,
	})

	return created, nil
}

// Accept flips a pending response to accepted. Only the parent ad's author
// may do so. Re-accepting an already accepted response is a state no-op and
// must not re-notify, so the event is tied to the conditional update having
// actually flipped the row.
func (s *responseService) Accept(ctx context.Context, responseID, actorID uuid.UUID) (*model.ResponseDetails, error) {
	response, err := s.responseRepo.FindByID(ctx, responseID)
	if err != nil {
		return nil, err
	}
	if response == nil {
		return nil, ErrResponseNotFound
	}

	if !authz.CanMutateResponse(actorID, response.AdAuthorID) {
		return nil, ErrNotAdAuthor
	}

	transitioned, err := s.responseRepo.MarkAccepted(ctx, responseID)
	if err != nil {
		return nil, err
	}

	if transitioned {
		go s.publisher.PublishResponseAccepted(events.ResponseAcceptedEvent{
			ResponseID:       response.ID,
			AdID:             response.AdID,
			AdTitle:          response.AdTitle,
			ResponseAuthorID: response.AuthorID,
			AcceptedAt:       time.Now(),
		})
	}

	response.IsAccepted = true
	return response, nil
}

// Delete permanently removes a response. Rejection has no state of its own;
// an unwanted response is simply deleted by the ad's author.
func (s *responseService) Delete(ctx context.Context, responseID, actorID uuid.UUID) error {
	response, err := s.responseRepo.FindByID(ctx, responseID)
	if err != nil {
		return err
	}
	if response == nil {
		return ErrResponseNotFound
	}

	if !authz.CanMutateResponse(actorID, response.AdAuthorID) {
		return ErrNotAdAuthor
	}

	return s.responseRepo.Delete(ctx, responseID)
}

func (s *responseService) List(ctx context.Context, actorID uuid.UUID, role string, adFilter *uuid.UUID) ([]model.ResponseDetails, error) {
	if !authz.CanViewResponses(role) {
		return nil, ErrMissingCapability
	}

	return s.responseRepo.ListByAdAuthor(ctx, actorID, adFilter)
}

func (s *responseService) Get(ctx context.Context, responseID, actorID uuid.UUID) (*model.ResponseDetails, error) {
	response, err := s.responseRepo.FindByID(ctx, responseID)
	if err != nil {
		return nil, err
	}
	if response == nil {
		return nil, ErrResponseNotFound
	}

	if actorID != response.AdAuthorID && actorID != response.AuthorID {
		return nil, ErrResponseForbidden
	}

	return response, nil
}
