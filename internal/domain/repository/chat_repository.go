package repository

import (
	"context"
	"time"

	"freestuff/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	GetByItemAndClaimer(ctx context.Context, itemID, claimerID string) (*entity.Chat, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error)

	// SetLastMessage updates the chat's denormalized message summary and
	// bumps the receiver's unread counter.
	SetLastMessage(ctx context.Context, chatID, content string, at time.Time, receiverID string) error
	ResetUnread(ctx context.Context, chatID, readerID string) error

	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, chatID string) ([]*entity.Message, error)
	MarkMessagesRead(ctx context.Context, chatID, readerID string) error

	// ListenMessages invokes fn with the chat's full ordered message history
	// whenever it changes, until ctx is cancelled.
	ListenMessages(ctx context.Context, chatID string, fn func(messages []*entity.Message)) error
}
