package service_test

import (
	"context"
	"testing"
	"time"

	"callboard/internal/authz"
	"callboard/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseService_Create_PublishesEvent(t *testing.T) {
	adRepo := newFakeAdRepo()
	responseRepo := newFakeResponseRepo()
	publisher := &countingPublisher{}
	svc := service.NewResponseService(responseRepo, adRepo, publisher)

	authorID := uuid.New()
	ad := adRepo.addAd(uuid.New(), "Looking for a healer")

	created, err := svc.Create(context.Background(), ad.ID, authorID, "responder", "I can help")

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, ad.ID, created.AdID)
	assert.False(t, created.IsAccepted)
	require.Eventually(t, func() bool {
		return publisher.createdCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestResponseService_Create_EmptyContent(t *testing.T) {
	adRepo := newFakeAdRepo()
	responseRepo := newFakeResponseRepo()
	publisher := &countingPublisher{}
	svc := service.NewResponseService(responseRepo, adRepo, publisher)

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), "responder", "   ")

	require.ErrorIs(t, err, service.ErrEmptyContent)
	assert.Zero(t, publisher.createdCount())
}

func TestResponseService_Create_AdNotFound(t *testing.T) {
	adRepo := newFakeAdRepo()
	responseRepo := newFakeResponseRepo()
	publisher := &countingPublisher{}
	svc := service.NewResponseService(responseRepo, adRepo, publisher)

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), "responder", "hello")

	require.ErrorIs(t, err, service.ErrAdNotFound)
	assert.Zero(t, publisher.createdCount())
}

func TestResponseService_Accept_NotifiesOnce(t *testing.T) {
	adRepo := newFakeAdRepo()
	responseRepo := newFakeResponseRepo()
	publisher := &countingPublisher{}
	svc := service.NewResponseService(responseRepo, adRepo, publisher)

	adAuthorID := uuid.New()
	ad := adRepo.addAd(adAuthorID, "Need a blacksmith")
	response := responseRepo.addResponse(ad, uuid.New())

	accepted, err := svc.Accept(context.Background(), response.ID, adAuthorID)
	require.NoError(t, err)
	assert.True(t, accepted.IsAccepted)
	require.Eventually(t, func() bool {
		return publisher.acceptedCount() == 1
	}, time.Second, 10*time.Millisecond)

	// Accepting again is a no-op on the row and must not re-notify.
	accepted, err = svc.Accept(context.Background(), response.ID, adAuthorID)
	require.NoError(t, err)
	assert.True(t, accepted.IsAccepted)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, publisher.acceptedCount())
}

func TestResponseService_Accept_NotAdAuthor(t *testing.T) {
	adRepo := newFakeAdRepo()
	responseRepo := newFakeResponseRepo()
	publisher := &countingPublisher{}
	svc := service.NewResponseService(responseRepo, adRepo, publisher)

	ad := adRepo.addAd(uuid.New(), "Need a blacksmith")
	response := responseRepo.addResponse(ad, uuid.New())

	_, err := svc.Accept(context.Background(), response.ID, uuid.New())

	require.ErrorIs(t, err, service.ErrNotAdAuthor)
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, publisher.acceptedCount())
}

func TestResponseService_Accept_NotFound(t *testing.T) {
	svc := service.NewResponseService(newFakeResponseRepo(), newFakeAdRepo(), &countingPublisher{})

	_, err := svc.Accept(context.Background(), uuid.New(), uuid.New())

	require.ErrorIs(t, err, service.ErrResponseNotFound)
}

func TestResponseService_Delete_NotAdAuthor(t *testing.T) {
	adRepo := newFakeAdRepo()
	responseRepo := newFakeResponseRepo()
	svc := service.NewResponseService(responseRepo, adRepo, &countingPublisher{})

	ad := adRepo.addAd(uuid.New(), "Need a blacksmith")
	response := responseRepo.addResponse(ad, uuid.New())

	err := svc.Delete(context.Background(), response.ID, uuid.New())

	require.ErrorIs(t, err, service.ErrNotAdAuthor)
	assert.Empty(t, responseRepo.deleted)
}

func TestResponseService_Delete_ByAdAuthor(t *testing.T) {
	adRepo := newFakeAdRepo()
	responseRepo := newFakeResponseRepo()
	svc := service.NewResponseService(responseRepo, adRepo, &countingPublisher{})

	adAuthorID := uuid.New()
	ad := adRepo.addAd(adAuthorID, "Need a blacksmith")
	response := responseRepo.addResponse(ad, uuid.New())

	err := svc.Delete(context.Background(), response.ID, adAuthorID)

	require.NoError(t, err)
	require.Len(t, responseRepo.deleted, 1)
	assert.Equal(t, response.ID, responseRepo.deleted[0])
}

func TestResponseService_List_RequiresCapability(t *testing.T) {
	svc := service.NewResponseService(newFakeResponseRepo(), newFakeAdRepo(), &countingPublisher{})

	_, err := svc.List(context.Background(), uuid.New(), authz.RoleMember, nil)

	require.ErrorIs(t, err, service.ErrMissingCapability)
}

func TestResponseService_List_ScopedToOwnAds(t *testing.T) {
	adRepo := newFakeAdRepo()
	responseRepo := newFakeResponseRepo()
	svc := service.NewResponseService(responseRepo, adRepo, &countingPublisher{})

	ownerID := uuid.New()
	ownAd := adRepo.addAd(ownerID, "Mine")
	otherAd := adRepo.addAd(uuid.New(), "Someone else's")
	mine := responseRepo.addResponse(ownAd, uuid.New())
	responseRepo.addResponse(otherAd, uuid.New())

	responses, err := svc.List(context.Background(), ownerID, authz.RoleAuthor, nil)

	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, mine.ID, responses[0].ID)
}

func TestResponseService_Get_ForbiddenForStranger(t *testing.T) {
	adRepo := newFakeAdRepo()
	responseRepo := newFakeResponseRepo()
	svc := service.NewResponseService(responseRepo, adRepo, &countingPublisher{})

	ad := adRepo.addAd(uuid.New(), "Need a blacksmith")
	response := responseRepo.addResponse(ad, uuid.New())

	_, err := svc.Get(context.Background(), response.ID, uuid.New())

	require.ErrorIs(t, err, service.ErrResponseForbidden)
}

func TestResponseService_Get_VisibleToResponseAuthor(t *testing.T) {
	adRepo := newFakeAdRepo()
	responseRepo := newFakeResponseRepo()
	svc := service.NewResponseService(responseRepo, adRepo, &countingPublisher{})

	responderID := uuid.New()
	ad := adRepo.addAd(uuid.New(), "Need a blacksmith")
	response := responseRepo.addResponse(ad, responderID)

	got, err := svc.Get(context.Background(), response.ID, responderID)

	require.NoError(t, err)
	assert.Equal(t, response.ID, got.ID)
}
