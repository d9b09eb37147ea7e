package repository

import (
	"context"

	"freestuff/internal/domain/entity"
)

type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	ListAvailable(ctx context.Context) ([]*entity.Item, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*entity.Item, error)

	// UpdateStatus is a conditional write: it applies only if the stored
	// status still equals expected at commit time, and returns a CONFLICT
	// error when another writer got there first. This is the only
	// concurrency primitive the claim arbitration relies on.
	UpdateStatus(ctx context.Context, id string, expected, next entity.ItemStatus) error

	// ListenAvailable invokes fn with the full available-item set whenever
	// it changes, until ctx is cancelled.
	ListenAvailable(ctx context.Context, fn func(items []*entity.Item)) error
}
