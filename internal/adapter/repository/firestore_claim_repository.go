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
)

type firestoreClaimRepository struct {
	client *firestore.Client
}

func NewFirestoreClaimRepository(client *firestore.Client) repository.ClaimRepository {
	return &firestoreClaimRepository{
		client: client,
	}
}

func (r *firestoreClaimRepository) Create(ctx context.Context, claim *entity.Claim) error {
	if claim.ID == "" {
		claim.ID = uuid.New().String()
	}
	if claim.CreatedAt.IsZero() {
		claim.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("claims").Doc(claim.ID).Set(ctx, claim)
	if err != nil {
		return errors.Unavailable("Failed to create claim", err)
	}

	return nil
}

func (r *firestoreClaimRepository) GetByID(ctx context.Context, id string) (*entity.Claim, error) {
	doc, err := r.client.Collection("claims").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Claim", err)
		}
		return nil, errors.Unavailable("Failed to get claim", err)
	}

	var claim entity.Claim
	if err := doc.DataTo(&claim); err != nil {
		return nil, errors.Internal("Failed to parse claim data", err)
	}

	return &claim, nil
}

func (r *firestoreClaimRepository) ListByClaimerID(ctx context.Context, claimerID string) ([]*entity.Claim, error) {
	query := r.client.Collection("claims").
		Where("claimerId", "==", claimerID).
		OrderBy("createdAt", firestore.Desc)

	return r.collectClaims(query.Documents(ctx))
}

func (r *firestoreClaimRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*entity.Claim, error) {
	query := r.client.Collection("claims").
		Where("ownerId", "==", ownerID).
		OrderBy("createdAt", firestore.Desc)

	return r.collectClaims(query.Documents(ctx))
}

func (r *firestoreClaimRepository) UpdateStatus(ctx context.Context, id string, claimStatus entity.ClaimStatus) error {
	_, err := r.client.Collection("claims").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(claimStatus)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Claim", err)
		}
		return errors.Unavailable("Failed to update claim status", err)
	}

	return nil
}

func (r *firestoreClaimRepository) GetWinnerByItemID(ctx context.Context, itemID string) (*entity.Claim, error) {
	query := r.client.Collection("claims").
		Where("itemId", "==", itemID).
		Where("status", "==", string(entity.ClaimStatusApproved)).
		Limit(1)

	claims, err := r.collectClaims(query.Documents(ctx))
	if err != nil {
		return nil, err
	}
	if len(claims) == 0 {
		return nil, errors.NotFound("Winning claim", nil)
	}

	return claims[0], nil
}

func (r *firestoreClaimRepository) collectClaims(iter *firestore.DocumentIterator) ([]*entity.Claim, error) {
	var claims []*entity.Claim
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Unavailable("Failed to iterate claims", err)
		}

		var claim entity.Claim
		if err := doc.DataTo(&claim); err != nil {
			return nil, errors.Internal("Failed to parse claim data", err)
		}
		claims = append(claims, &claim)
	}

	return claims, nil
}
