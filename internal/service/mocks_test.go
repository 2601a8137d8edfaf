package service_test

import (
	"context"
	"sync"
	"time"

	"callboard/internal/events"
	"callboard/internal/model"
	"callboard/internal/repository"

	"github.com/google/uuid"
)

// fakeAdRepo serves a fixed set of ads and categories from memory.
type fakeAdRepo struct {
	ads        map[uuid.UUID]*model.AdDetails
	categories map[string]*model.Category
	updated    []*model.Ad
	deleted    []uuid.UUID
}

func newFakeAdRepo() *fakeAdRepo {
	return &fakeAdRepo{
		ads:        map[uuid.UUID]*model.AdDetails{},
		categories: map[string]*model.Category{},
	}
}

func (f *fakeAdRepo) addCategory(slug string) *model.Category {
	c := &model.Category{ID: uuid.New(), Slug: slug, Name: slug}
	f.categories[slug] = c
	return c
}

func (f *fakeAdRepo) addAd(authorID uuid.UUID, title string) *model.AdDetails {
	ad := &model.AdDetails{
		ID:        uuid.New(),
		Title:     title,
		Content:   "content",
		AuthorID:  authorID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.ads[ad.ID] = ad
	return ad
}

func (f *fakeAdRepo) Create(ctx context.Context, ad *model.Ad) (*model.Ad, error) {
	ad.ID = uuid.New()
	ad.CreatedAt = time.Now()
	ad.UpdatedAt = ad.CreatedAt
	f.ads[ad.ID] = &model.AdDetails{
		ID:         ad.ID,
		Title:      ad.Title,
		Content:    ad.Content,
		CategoryID: ad.CategoryID,
		AuthorID:   ad.AuthorID,
		CreatedAt:  ad.CreatedAt,
		UpdatedAt:  ad.UpdatedAt,
	}
	return ad, nil
}

func (f *fakeAdRepo) FindByID(ctx context.Context, adID uuid.UUID) (*model.AdDetails, error) {
	return f.ads[adID], nil
}

func (f *fakeAdRepo) List(ctx context.Context, categorySlug string, page int, limit int) (*repository.PaginatedAds, error) {
	var ads []model.AdDetails
	for _, ad := range f.ads {
		ads = append(ads, *ad)
	}
	return &repository.PaginatedAds{Data: ads, Meta: repository.PaginationMeta{CurrentPage: page, PerPage: limit, TotalItems: len(ads)}}, nil
}

func (f *fakeAdRepo) Update(ctx context.Context, ad *model.Ad) error {
	f.updated = append(f.updated, ad)
	return nil
}

func (f *fakeAdRepo) Delete(ctx context.Context, adID uuid.UUID) error {
	f.deleted = append(f.deleted, adID)
	delete(f.ads, adID)
	return nil
}

func (f *fakeAdRepo) FindCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return f.categories[slug], nil
}

func (f *fakeAdRepo) GetCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	for _, c := range f.categories {
		categories = append(categories, *c)
	}
	return categories, nil
}

// fakeResponseRepo keeps responses in memory and implements the same
// conditional accept the SQL layer does.
type fakeResponseRepo struct {
	mu        sync.Mutex
	responses map[uuid.UUID]*model.ResponseDetails
	deleted   []uuid.UUID
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{responses: map[uuid.UUID]*model.ResponseDetails{}}
}

func (f *fakeResponseRepo) addResponse(ad *model.AdDetails, authorID uuid.UUID) *model.ResponseDetails {
	r := &model.ResponseDetails{
		ID:         uuid.New(),
		AdID:       ad.ID,
		AdTitle:    ad.Title,
		AdAuthorID: ad.AuthorID,
		AuthorID:   authorID,
		AuthorName: "responder",
		Content:    "I can help",
		CreatedAt:  time.Now(),
	}
	f.responses[r.ID] = r
	return r
}

func (f *fakeResponseRepo) Create(ctx context.Context, response *model.Response) (*model.Response, error) {
	response.ID = uuid.New()
	response.CreatedAt = time.Now()
	response.IsAccepted = false
	return response, nil
}

func (f *fakeResponseRepo) FindByID(ctx context.Context, responseID uuid.UUID) (*model.ResponseDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.responses[responseID]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (f *fakeResponseRepo) ListByAdAuthor(ctx context.Context, adAuthorID uuid.UUID, adID *uuid.UUID) ([]model.ResponseDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []model.ResponseDetails{}
	for _, r := range f.responses {
		if r.AdAuthorID != adAuthorID {
			continue
		}
		if adID != nil && r.AdID != *adID {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (f *fakeResponseRepo) MarkAccepted(ctx context.Context, responseID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.responses[responseID]
	if !ok || r.IsAccepted {
		return false, nil
	}
	r.IsAccepted = true
	return true, nil
}

func (f *fakeResponseRepo) Delete(ctx context.Context, responseID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, responseID)
	delete(f.responses, responseID)
	return nil
}

// countingPublisher records how many events of each kind were published.
// Publishing happens on a goroutine, so counts are read via the getters
// under the mutex.
type countingPublisher struct {
	mu          sync.Mutex
	created     int
	accepted    int
	newsletters int
}

func (p *countingPublisher) PublishResponseCreated(event events.ResponseCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created++
	return nil
}

func (p *countingPublisher) PublishResponseAccepted(event events.ResponseAcceptedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accepted++
	return nil
}

func (p *countingPublisher) PublishNewsletterIssue(event events.NewsletterIssueEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.newsletters++
	return nil
}

func (p *countingPublisher) createdCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}

func (p *countingPublisher) acceptedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.accepted
}

func (p *countingPublisher) newslettersCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.newsletters
}
