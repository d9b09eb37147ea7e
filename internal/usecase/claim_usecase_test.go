package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freestuff/internal/domain/entity"
	"freestuff/pkg/errors"
)

func newClaimFixture() (*ClaimUseCase, *memItemRepo, *memClaimRepo, *memChatRepo) {
	itemRepo := newMemItemRepo()
	claimRepo := newMemClaimRepo()
	chatRepo := newMemChatRepo()
	chatUC := NewChatUseCase(chatRepo)
	return NewClaimUseCase(claimRepo, itemRepo, chatUC), itemRepo, claimRepo, chatRepo
}

func seedItem(t *testing.T, itemRepo *memItemRepo, ownerID string, status entity.ItemStatus) *entity.Item {
	t.Helper()
	item := &entity.Item{
		OwnerID:     ownerID,
		Title:       "Old bookshelf",
		Description: "Solid pine, some scratches",
		Category:    entity.CategoryFurniture,
		City:        "Helsinki",
		Status:      status,
	}
	require.NoError(t, itemRepo.Create(context.Background(), item))
	return item
}

func TestSubmitClaimWins(t *testing.T) {
	uc, itemRepo, _, _ := newClaimFixture()
	item := seedItem(t, itemRepo, "owner1", entity.ItemStatusAvailable)

	result, err := uc.SubmitClaim(context.Background(), "claimer1", SubmitClaimInput{ItemID: item.ID, Message: "I can pick it up today"})
	require.NoError(t, err)

	assert.True(t, result.Won)
	assert.Equal(t, entity.ClaimStatusApproved, result.Claim.Status)
	assert.Equal(t, "owner1", result.Claim.OwnerID)
	require.NotNil(t, result.Chat)
	assert.Equal(t, item.ID, result.Chat.ItemID)
	assert.Equal(t, "claimer1", result.Chat.ClaimerID)

	stored, err := itemRepo.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusClaimed, stored.Status)
}

func TestSubmitClaimOwnItemRejected(t *testing.T) {
	uc, itemRepo, claimRepo, _ := newClaimFixture()
	item := seedItem(t, itemRepo, "owner1", entity.ItemStatusAvailable)

	_, err := uc.SubmitClaim(context.Background(), "owner1", SubmitClaimInput{ItemID: item.ID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	claims, err := claimRepo.ListByOwnerID(context.Background(), "owner1")
	require.NoError(t, err)
	assert.Empty(t, claims, "invalid claims must not leave audit records")
}

func TestSubmitClaimOnClaimedItemLoses(t *testing.T) {
	uc, itemRepo, _, chatRepo := newClaimFixture()
	item := seedItem(t, itemRepo, "owner1", entity.ItemStatusAvailable)

	first, err := uc.SubmitClaim(context.Background(), "claimer1", SubmitClaimInput{ItemID: item.ID})
	require.NoError(t, err)
	require.True(t, first.Won)

	second, err := uc.SubmitClaim(context.Background(), "claimer2", SubmitClaimInput{ItemID: item.ID})
	require.NoError(t, err)

	assert.False(t, second.Won)
	assert.Equal(t, "item no longer available", second.Reason)
	assert.Equal(t, entity.ClaimStatusRejected, second.Claim.Status)
	assert.Nil(t, second.Chat)

	_, err = chatRepo.GetByItemAndClaimer(context.Background(), item.ID, "claimer2")
	assert.True(t, errors.Is(err, "NOT_FOUND"), "losers never get a chat")
}

func TestSubmitClaimSingleWinnerUnderRace(t *testing.T) {
	uc, itemRepo, claimRepo, _ := newClaimFixture()
	item := seedItem(t, itemRepo, "owner1", entity.ItemStatusAvailable)

	const claimants = 16
	results := make([]*ClaimResult, claimants)
	errs := make([]error, claimants)
	var wg sync.WaitGroup
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = uc.SubmitClaim(context.Background(), claimerName(i), SubmitClaimInput{ItemID: item.ID})
		}(i)
	}
	wg.Wait()

	winners := 0
	for i, result := range results {
		require.NoError(t, errs[i])
		if result.Won {
			winners++
		} else {
			assert.Equal(t, entity.ClaimStatusRejected, result.Claim.Status)
		}
	}
	assert.Equal(t, 1, winners)

	stored, err := itemRepo.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusClaimed, stored.Status)

	winner, err := claimRepo.GetWinnerByItemID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ClaimStatusApproved, winner.Status)
}

func claimerName(i int) string {
	return "claimer" + string(rune('A'+i))
}

func TestConditionalWriteSecondAttemptConflicts(t *testing.T) {
	itemRepo := newMemItemRepo()
	item := seedItem(t, itemRepo, "owner1", entity.ItemStatusAvailable)

	require.NoError(t, itemRepo.UpdateStatus(context.Background(), item.ID, entity.ItemStatusAvailable, entity.ItemStatusClaimed))

	err := itemRepo.UpdateStatus(context.Background(), item.ID, entity.ItemStatusAvailable, entity.ItemStatusClaimed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestRetryClaimAfterTransientFailure(t *testing.T) {
	uc, itemRepo, _, _ := newClaimFixture()
	item := seedItem(t, itemRepo, "owner1", entity.ItemStatusAvailable)

	itemRepo.statusErr = errors.Unavailable("store down", nil)
	_, err := uc.SubmitClaim(context.Background(), "claimer1", SubmitClaimInput{ItemID: item.ID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "STORE_UNAVAILABLE"))

	claims, err := uc.ListByClaimer(context.Background(), "claimer1")
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, entity.ClaimStatusPending, claims[0].Status, "transient failure leaves the claim pending")

	result, err := uc.RetryClaim(context.Background(), "claimer1", claims[0].ID)
	require.NoError(t, err)
	assert.True(t, result.Won)
	assert.Equal(t, entity.ClaimStatusApproved, result.Claim.Status)
	require.NotNil(t, result.Chat)
}

func TestRetryClaimIdempotentAfterWin(t *testing.T) {
	uc, itemRepo, _, _ := newClaimFixture()
	item := seedItem(t, itemRepo, "owner1", entity.ItemStatusAvailable)

	first, err := uc.SubmitClaim(context.Background(), "claimer1", SubmitClaimInput{ItemID: item.ID})
	require.NoError(t, err)
	require.True(t, first.Won)

	retried, err := uc.RetryClaim(context.Background(), "claimer1", first.Claim.ID)
	require.NoError(t, err)
	assert.True(t, retried.Won)
	assert.Equal(t, first.Chat.ID, retried.Chat.ID, "retry must not provision a second chat")
}

func TestRetryClaimForeignClaimForbidden(t *testing.T) {
	uc, itemRepo, _, _ := newClaimFixture()
	item := seedItem(t, itemRepo, "owner1", entity.ItemStatusAvailable)

	first, err := uc.SubmitClaim(context.Background(), "claimer1", SubmitClaimInput{ItemID: item.ID})
	require.NoError(t, err)

	_, err = uc.RetryClaim(context.Background(), "claimer2", first.Claim.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestMarkGivenAwayCompletesWinningClaim(t *testing.T) {
	uc, itemRepo, claimRepo, _ := newClaimFixture()
	item := seedItem(t, itemRepo, "owner1", entity.ItemStatusAvailable)

	result, err := uc.SubmitClaim(context.Background(), "claimer1", SubmitClaimInput{ItemID: item.ID})
	require.NoError(t, err)
	require.True(t, result.Won)

	updated, err := uc.MarkGivenAway(context.Background(), "owner1", item.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusGivenAway, updated.Status)

	claim, err := claimRepo.GetByID(context.Background(), result.Claim.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ClaimStatusCompleted, claim.Status)
}

func TestMarkGivenAwayNonOwnerForbidden(t *testing.T) {
	uc, itemRepo, _, _ := newClaimFixture()
	item := seedItem(t, itemRepo, "owner1", entity.ItemStatusClaimed)

	_, err := uc.MarkGivenAway(context.Background(), "intruder", item.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestMarkGivenAwayInvalidTransitions(t *testing.T) {
	tests := []struct {
		name   string
		status entity.ItemStatus
	}{
		{"unclaimed item", entity.ItemStatusAvailable},
		{"already given away", entity.ItemStatusGivenAway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, itemRepo, _, _ := newClaimFixture()
			item := seedItem(t, itemRepo, "owner1", tt.status)

			_, err := uc.MarkGivenAway(context.Background(), "owner1", item.ID)
			require.Error(t, err)
			assert.True(t, errors.Is(err, "INVALID_TRANSITION"))
		})
	}
}

func TestClaimExchangeEndToEnd(t *testing.T) {
	uc, itemRepo, _, chatRepo := newClaimFixture()
	item := seedItem(t, itemRepo, "U1", entity.ItemStatusAvailable)

	won, err := uc.SubmitClaim(context.Background(), "U2", SubmitClaimInput{ItemID: item.ID})
	require.NoError(t, err)
	assert.True(t, won.Won)

	stored, err := itemRepo.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusClaimed, stored.Status)

	chat, err := chatRepo.GetByItemAndClaimer(context.Background(), item.ID, "U2")
	require.NoError(t, err)
	assert.Equal(t, "U1", chat.OwnerID)

	lost, err := uc.SubmitClaim(context.Background(), "U3", SubmitClaimInput{ItemID: item.ID})
	require.NoError(t, err)
	assert.False(t, lost.Won)

	_, err = chatRepo.GetByItemAndClaimer(context.Background(), item.ID, "U3")
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	given, err := uc.MarkGivenAway(context.Background(), "U1", item.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusGivenAway, given.Status)

	winner, err := uc.ListByClaimer(context.Background(), "U2")
	require.NoError(t, err)
	require.Len(t, winner, 1)
	assert.Equal(t, entity.ClaimStatusCompleted, winner[0].Status)
}
