package entity

import "time"

// Chat links the owner and the winning claimer of an item. Exactly one chat
// exists per (itemId, claimerId) pair; LastMessage and the unread counters are
// denormalized projections of the messages collection.
type Chat struct {
	ID                 string     `json:"id" firestore:"chatId"`
	ItemID             string     `json:"item_id" firestore:"itemId"`
	OwnerID            string     `json:"owner_id" firestore:"ownerId"`
	ClaimerID          string     `json:"claimer_id" firestore:"claimerId"`
	LastMessage        string     `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt      *time.Time `json:"last_message_at,omitempty" firestore:"lastMessageAt,omitempty"`
	OwnerUnreadCount   int        `json:"owner_unread_count" firestore:"ownerUnreadCount"`
	ClaimerUnreadCount int        `json:"claimer_unread_count" firestore:"claimerUnreadCount"`
	CreatedAt          time.Time  `json:"created_at" firestore:"createdAt"`
}

// Participant reports whether userID is one of the two chat members.
func (c *Chat) Participant(userID string) bool {
	return userID == c.OwnerID || userID == c.ClaimerID
}

// OtherParty returns the chat member opposite to userID.
func (c *Chat) OtherParty(userID string) string {
	if userID == c.OwnerID {
		return c.ClaimerID
	}
	return c.OwnerID
}
