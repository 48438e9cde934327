package service

import (
	"context"
	"strings"
	"time"

	"nonprofit-ops/internal/model"
	"nonprofit-ops/internal/repository"
)

type CollectionService struct {
	collections *repository.CollectionRepository
	deletion    *DeletionService
}

func NewCollectionService(collections *repository.CollectionRepository, deletion *DeletionService) *CollectionService {
	return &CollectionService{collections: collections, deletion: deletion}
}

func (s *CollectionService) Create(ctx context.Context, req model.CreateCollectionRequest, submittedBy string) (model.Collection, error) {
	hostName := strings.TrimSpace(req.HostName)
	date := strings.TrimSpace(req.CollectionDate)
	if hostName == "" || date == "" || req.SandwichCount < 0 {
		return model.Collection{}, model.ErrInvalidInput
	}

	now := time.Now().UTC()
	collection := model.Collection{
		HostName:       hostName,
		CollectionDate: date,
		SandwichCount:  req.SandwichCount,
		SubmittedBy:    submittedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	return s.collections.Create(ctx, collection)
}

func (s *CollectionService) Get(ctx context.Context, id string) (model.Collection, error) {
	return s.collections.FindByID(ctx, id)
}

func (s *CollectionService) List(ctx context.Context, vis repository.Visibility) ([]model.Collection, error) {
	return s.collections.List(ctx, vis)
}

func (s *CollectionService) Delete(ctx context.Context, id string, actorID string, reason string) (bool, error) {
	return s.deletion.SoftDelete(ctx, repository.TableCollections.Name(), id, actorID, reason)
}
