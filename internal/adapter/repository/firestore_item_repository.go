package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"freestuff/internal/domain/entity"
	"freestuff/internal/domain/repository"
	"freestuff/pkg/errors"
	"freestuff/pkg/logger"
)

type firestoreItemRepository struct {
	client *firestore.Client
}

func NewFirestoreItemRepository(client *firestore.Client) repository.ItemRepository {
	return &firestoreItemRepository{
		client: client,
	}
}

func (r *firestoreItemRepository) Create(ctx context.Context, item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("items").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return errors.Unavailable("Failed to create item", err)
	}

	return nil
}

func (r *firestoreItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	doc, err := r.client.Collection("items").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Item", err)
		}
		return nil, errors.Unavailable("Failed to get item", err)
	}

	var item entity.Item
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.Internal("Failed to parse item data", err)
	}

	return &item, nil
}

func (r *firestoreItemRepository) ListAvailable(ctx context.Context) ([]*entity.Item, error) {
	query := r.client.Collection("items").
		Where("status", "==", string(entity.ItemStatusAvailable)).
		OrderBy("createdAt", firestore.Desc)

	return r.collectItems(query.Documents(ctx))
}

func (r *firestoreItemRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*entity.Item, error) {
	query := r.client.Collection("items").
		Where("ownerId", "==", ownerID).
		OrderBy("createdAt", firestore.Desc)

	return r.collectItems(query.Documents(ctx))
}

// UpdateStatus performs the conditional status write inside a Firestore
// transaction: read the document, compare the stored status with expected,
// and only then write. Firestore retries the transaction on contention, so a
// successful return means the comparison held at commit time.
func (r *firestoreItemRepository) UpdateStatus(ctx context.Context, id string, expected, next entity.ItemStatus) error {
	ref := r.client.Collection("items").Doc(id)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}

		current, err := doc.DataAt("status")
		if err != nil {
			return err
		}
		if current != string(expected) {
			return errors.Conflict("Item status changed by another writer")
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: string(next)},
		})
	})

	if err != nil {
		if errors.Is(err, "CONFLICT") {
			return err
		}
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Item", err)
		}
		return errors.Unavailable("Failed to update item status", err)
	}

	return nil
}

func (r *firestoreItemRepository) ListenAvailable(ctx context.Context, fn func(items []*entity.Item)) error {
	query := r.client.Collection("items").
		Where("status", "==", string(entity.ItemStatusAvailable)).
		OrderBy("createdAt", firestore.Desc)

	snapshots := query.Snapshots(ctx)
	go func() {
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("Item listener stopped: %v", err)
				}
				return
			}
			items, err := r.collectItems(snap.Documents)
			if err != nil {
				logger.Warn("Item listener failed to read snapshot: %v", err)
				continue
			}
			fn(items)
		}
	}()

	return nil
}

func (r *firestoreItemRepository) collectItems(iter *firestore.DocumentIterator) ([]*entity.Item, error) {
	var items []*entity.Item
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Unavailable("Failed to iterate items", err)
		}

		var item entity.Item
		if err := doc.DataTo(&item); err != nil {
			return nil, errors.Internal("Failed to parse item data", err)
		}
		items = append(items, &item)
	}

	return items, nil
}
