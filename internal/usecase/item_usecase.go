package usecase

import (
	"context"
	"strings"

	"freestuff/internal/domain/entity"
	"freestuff/internal/domain/repository"
	"freestuff/pkg/errors"
)

type ItemUseCase struct {
	itemRepo repository.ItemRepository
}

func NewItemUseCase(itemRepo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{
		itemRepo: itemRepo,
	}
}

type CreateItemInput struct {
	Title       string
	Description string
	Category    entity.ItemCategory
	City        string
	Photos      []string
	Latitude    *float64
	Longitude   *float64
}

func (uc *ItemUseCase) CreateItem(ctx context.Context, ownerID string, input CreateItemInput) (*entity.Item, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.Validation("title must not be empty")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, errors.Validation("description must not be empty")
	}
	if !input.Category.Valid() {
		return nil, errors.Validation("unknown category")
	}

	item := &entity.Item{
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		City:        input.City,
		Photos:      input.Photos,
		Status:      entity.ItemStatusAvailable,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
	}
	if item.Photos == nil {
		item.Photos = []string{}
	}

	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (uc *ItemUseCase) GetItem(ctx context.Context, id string) (*entity.Item, error) {
	return uc.itemRepo.GetByID(ctx, id)
}

// ListAvailable returns every available item, newest first.
func (uc *ItemUseCase) ListAvailable(ctx context.Context) ([]*entity.Item, error) {
	return uc.itemRepo.ListAvailable(ctx)
}

// ListByOwner returns every item the owner ever posted, any status.
func (uc *ItemUseCase) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Item, error) {
	return uc.itemRepo.ListByOwnerID(ctx, ownerID)
}

// WatchAvailable streams the available-item set to fn until ctx is cancelled.
func (uc *ItemUseCase) WatchAvailable(ctx context.Context, fn func(items []*entity.Item)) error {
	return uc.itemRepo.ListenAvailable(ctx, fn)
}
