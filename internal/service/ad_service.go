package service

import (
	"context"
	"errors"
	"strings"

	"callboard/internal/authz"
	"callboard/internal/model"
	"callboard/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrAdNotFound        = errors.New("ad not found")
	ErrInvalidCategory   = errors.New("category is not one of the allowed labels")
	ErrNotAdAuthor       = errors.New("only the ad's author may do this")
	ErrMissingCapability = errors.New("user role lacks the required capability")
	ErrEmptyTitle        = errors.New("ad title must not be empty")
	ErrEmptyContent      = errors.New("content must not be empty")
)

type AdService interface {
	Create(ctx context.Context, actorID uuid.UUID, role, title, content, categorySlug string) (*model.Ad, error)
	Update(ctx context.Context, adID, actorID uuid.UUID, role, title, content, categorySlug string) (*model.Ad, error)
	Delete(ctx context.Context, adID, actorID uuid.UUID, role string) error
	Get(ctx context.Context, adID uuid.UUID) (*model.AdDetails, error)
	List(ctx context.Context, categorySlug string, page int, limit int) (*repository.PaginatedAds, error)
	GetCategories(ctx context.Context) ([]model.Category, error)
}

type adService struct {
	adRepo repository.AdRepository
}

func NewAdService(adRepo repository.AdRepository) AdService {
	return &adService{adRepo: adRepo}
}

// resolveCategory maps a slug to its category ID. An empty slug is a valid
// "no category" choice; an unknown slug is a validation failure, never a
// silent null.
func (s *adService) resolveCategory(ctx context.Context, slug string) (*uuid.UUID, error) {
	if slug == "" {
		return nil, nil
	}

	category, err := s.adRepo.FindCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrInvalidCategory
	}

	return &category.ID, nil
}

func (s *adService) Create(ctx context.Context, actorID uuid.UUID, role, title, content, categorySlug string) (*model.Ad, error) {
	if !authz.CanCreateAd(role) {
		return nil, ErrMissingCapability
	}

	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	categoryID, err := s.resolveCategory(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	ad := &model.Ad{
		Title:      title,
		Content:    content,
		CategoryID: categoryID,
		AuthorID:   actorID,
	}

	return s.adRepo.Create(ctx, ad)
}

func (s *adService) Update(ctx context.Context, adID, actorID uuid.UUID, role, title, content, categorySlug string) (*model.Ad, error) {
	existing, err := s.adRepo.FindByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrAdNotFound
	}

	if !authz.HasCapability(role, authz.CapChangeAd) {
		return nil, ErrMissingCapability
	}
	if !authz.CanModifyAd(role, authz.CapChangeAd, actorID, existing.AuthorID) {
		return nil, ErrNotAdAuthor
	}

	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	categoryID, err := s.resolveCategory(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	ad := &model.Ad{
		ID:         adID,
		Title:      title,
		Content:    content,
		CategoryID: categoryID,
		AuthorID:   existing.AuthorID,
		CreatedAt:  existing.CreatedAt,
	}

	if err := s.adRepo.Update(ctx, ad); err != nil {
		return nil, err
	}

	return ad, nil
}

func (s *adService) Delete(ctx context.Context, adID, actorID uuid.UUID, role string) error {
	existing, err := s.adRepo.FindByID(ctx, adID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrAdNotFound
	}

	if !authz.HasCapability(role, authz.CapDeleteAd) {
		return ErrMissingCapability
	}
	if !authz.CanModifyAd(role, authz.CapDeleteAd, actorID, existing.AuthorID) {
		return ErrNotAdAuthor
	}

	return s.adRepo.Delete(ctx, adID)
}

func (s *adService) Get(ctx context.Context, adID uuid.UUID) (*model.AdDetails, error) {
	ad, err := s.adRepo.FindByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, ErrAdNotFound
	}
	return ad, nil
}

func (s *adService) List(ctx context.Context, categorySlug string, page int, limit int) (*repository.PaginatedAds, error) {
	return s.adRepo.List(ctx, categorySlug, page, limit)
}

func (s *adService) GetCategories(ctx context.Context) ([]model.Category, error) {
	return s.adRepo.GetCategories(ctx)
}
