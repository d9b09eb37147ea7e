package usecase

import (
	"context"

	"freestuff/internal/domain/entity"
	"freestuff/internal/domain/repository"
	"freestuff/pkg/errors"
	"freestuff/pkg/logger"
)

// ClaimUseCase arbitrates concurrent claims on the same item. The only
// synchronization it relies on is the item repository's conditional status
// write: out of any number of simultaneous claimants exactly one observes a
// successful available->claimed transition, and everyone else gets a
// conflict, which is converted into a terminal rejected claim.
type ClaimUseCase struct {
	claimRepo repository.ClaimRepository
	itemRepo  repository.ItemRepository
	chatUC    *ChatUseCase
}

func NewClaimUseCase(
	claimRepo repository.ClaimRepository,
	itemRepo repository.ItemRepository,
	chatUC *ChatUseCase,
) *ClaimUseCase {
	return &ClaimUseCase{
		claimRepo: claimRepo,
		itemRepo:  itemRepo,
		chatUC:    chatUC,
	}
}

type SubmitClaimInput struct {
	ItemID  string
	Message string
}

// ClaimResult is the outcome of an arbitration attempt. Won is true for the
// single winner; losers get Won=false with a reason rather than an error,
// because losing the race is a designed outcome.
type ClaimResult struct {
	Won    bool          `json:"won"`
	Reason string        `json:"reason,omitempty"`
	Claim  *entity.Claim `json:"claim"`
	Chat   *entity.Chat  `json:"chat,omitempty"`
}

func (uc *ClaimUseCase) SubmitClaim(ctx context.Context, claimerID string, input SubmitClaimInput) (*ClaimResult, error) {
	item, err := uc.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	if claimerID == item.OwnerID {
		return nil, errors.Validation("you cannot claim your own item")
	}

	// The pending claim is the audit record of the request. It is written
	// before arbitration and retained whatever the outcome.
	claim := &entity.Claim{
		ItemID:    item.ID,
		ClaimerID: claimerID,
		OwnerID:   item.OwnerID,
		Message:   input.Message,
		Status:    entity.ClaimStatusPending,
	}
	if err := uc.claimRepo.Create(ctx, claim); err != nil {
		return nil, err
	}

	return uc.arbitrate(ctx, claim)
}

// RetryClaim re-runs arbitration for a claim left pending by a transient
// store failure. The conditional write makes the retry idempotent: if the
// original attempt actually landed, the item is already claimed and the
// winner lookup below resolves it.
func (uc *ClaimUseCase) RetryClaim(ctx context.Context, claimerID, claimID string) (*ClaimResult, error) {
	claim, err := uc.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim.ClaimerID != claimerID {
		return nil, errors.Forbidden("claim belongs to another user", nil)
	}

	switch claim.Status {
	case entity.ClaimStatusPending:
		return uc.arbitrate(ctx, claim)
	case entity.ClaimStatusApproved:
		// Earlier attempt won but may have failed before chat creation;
		// ensureChat is idempotent so finishing it here is safe.
		chat, err := uc.chatUC.EnsureChat(ctx, claim.ItemID, claim.OwnerID, claim.ClaimerID)
		if err != nil {
			return nil, err
		}
		return &ClaimResult{Won: true, Claim: claim, Chat: chat}, nil
	default:
		return &ClaimResult{Won: false, Reason: "item no longer available", Claim: claim}, nil
	}
}

func (uc *ClaimUseCase) arbitrate(ctx context.Context, claim *entity.Claim) (*ClaimResult, error) {
	err := uc.itemRepo.UpdateStatus(ctx, claim.ItemID, entity.ItemStatusAvailable, entity.ItemStatusClaimed)
	if err != nil {
		if errors.Is(err, "CONFLICT") {
			// Someone else won. Reject this claim terminally; no
			// queueing, no waitlist.
			if uerr := uc.claimRepo.UpdateStatus(ctx, claim.ID, entity.ClaimStatusRejected); uerr != nil {
				logger.Warn("Failed to reject losing claim %s: %v", claim.ID, uerr)
			}
			claim.Status = entity.ClaimStatusRejected
			return &ClaimResult{Won: false, Reason: "item no longer available", Claim: claim}, nil
		}
		// Transient failure: the claim stays pending and the caller may
		// retry the same claim id.
		return nil, err
	}

	if err := uc.claimRepo.UpdateStatus(ctx, claim.ID, entity.ClaimStatusApproved); err != nil {
		// The item transition is already committed; the claim record will
		// be reconciled on retry.
		logger.Warn("Failed to approve winning claim %s: %v", claim.ID, err)
	}
	claim.Status = entity.ClaimStatusApproved

	chat, err := uc.chatUC.EnsureChat(ctx, claim.ItemID, claim.OwnerID, claim.ClaimerID)
	if err != nil {
		// The win is committed regardless; chat provisioning is retried
		// independently via the idempotent EnsureChat.
		logger.Warn("Won claim %s but chat provisioning failed: %v", claim.ID, err)
		return &ClaimResult{Won: true, Claim: claim}, nil
	}

	return &ClaimResult{Won: true, Claim: claim, Chat: chat}, nil
}

// MarkGivenAway finalizes the exchange: only the owner may call it, only from
// claimed, and it completes the winning claim. There is no path back.
func (uc *ClaimUseCase) MarkGivenAway(ctx context.Context, actingOwnerID, itemID string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID != actingOwnerID {
		return nil, errors.Forbidden("only the item owner can mark it as given away", nil)
	}
	if item.Status != entity.ItemStatusClaimed {
		return nil, errors.InvalidTransition("item must be claimed before it can be given away")
	}

	if err := uc.itemRepo.UpdateStatus(ctx, itemID, entity.ItemStatusClaimed, entity.ItemStatusGivenAway); err != nil {
		return nil, err
	}
	item.Status = entity.ItemStatusGivenAway

	winner, err := uc.claimRepo.GetWinnerByItemID(ctx, itemID)
	if err != nil {
		logger.Warn("No winning claim found for given-away item %s: %v", itemID, err)
		return item, nil
	}
	if err := uc.claimRepo.UpdateStatus(ctx, winner.ID, entity.ClaimStatusCompleted); err != nil {
		logger.Warn("Failed to complete claim %s: %v", winner.ID, err)
	}

	return item, nil
}

func (uc *ClaimUseCase) ListByClaimer(ctx context.Context, claimerID string) ([]*entity.Claim, error) {
	return uc.claimRepo.ListByClaimerID(ctx, claimerID)
}

func (uc *ClaimUseCase) ListReceived(ctx context.Context, ownerID string) ([]*entity.Claim, error) {
	return uc.claimRepo.ListByOwnerID(ctx, ownerID)
}
