package entity

import "time"

type Message struct {
	ID         string    `json:"id" firestore:"messageId"`
	ChatID     string    `json:"chat_id" firestore:"chatId"`
	SenderID   string    `json:"sender_id" firestore:"senderId"`
	ReceiverID string    `json:"receiver_id" firestore:"receiverId"`
	Content    string    `json:"content" firestore:"content"`
	IsRead     bool      `json:"is_read" firestore:"isRead"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
