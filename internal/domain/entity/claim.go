package entity

import "time"

type ClaimStatus string

const (
	ClaimStatusPending   ClaimStatus = "pending"
	ClaimStatusApproved  ClaimStatus = "approved"
	ClaimStatusRejected  ClaimStatus = "rejected"
	ClaimStatusCompleted ClaimStatus = "completed"
)

// Claim is the audit record of one user's request to take an item. At most
// one claim per item ever leaves the pending/rejected pair; the rest are
// rejected and retained.
type Claim struct {
	ID        string      `json:"id" firestore:"claimId"`
	ItemID    string      `json:"item_id" firestore:"itemId"`
	ClaimerID string      `json:"claimer_id" firestore:"claimerId"`
	OwnerID   string      `json:"owner_id" firestore:"ownerId"`
	Message   string      `json:"message,omitempty" firestore:"message,omitempty"`
	Status    ClaimStatus `json:"status" firestore:"status"`
	CreatedAt time.Time   `json:"created_at" firestore:"createdAt"`
}
