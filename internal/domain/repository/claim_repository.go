package repository

import (
	"context"

	"freestuff/internal/domain/entity"
)

type ClaimRepository interface {
	Create(ctx context.Context, claim *entity.Claim) error
	GetByID(ctx context.Context, id string) (*entity.Claim, error)
	ListByClaimerID(ctx context.Context, claimerID string) ([]*entity.Claim, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*entity.Claim, error)
	UpdateStatus(ctx context.Context, id string, status entity.ClaimStatus) error

	// GetWinnerByItemID returns the approved claim for an item, if any.
	GetWinnerByItemID(ctx context.Context, itemID string) (*entity.Claim, error)
}
