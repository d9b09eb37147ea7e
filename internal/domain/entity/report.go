package entity

import "time"

type Report struct {
	ID         string    `json:"id" firestore:"reportId"`
	ReporterID string    `json:"reporter_id" firestore:"reporterId"`
	ItemID     string    `json:"item_id,omitempty" firestore:"itemId,omitempty"`
	UserID     string    `json:"user_id,omitempty" firestore:"userId,omitempty"`
	Reason     string    `json:"reason" firestore:"reason"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
