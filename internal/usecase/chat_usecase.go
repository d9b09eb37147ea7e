package usecase

import (
	"context"
	"strings"
	"time"

	"freestuff/internal/domain/entity"
	"freestuff/internal/domain/repository"
	"freestuff/pkg/errors"
	"freestuff/pkg/logger"
)

type ChatUseCase struct {
	chatRepo repository.ChatRepository
}

func NewChatUseCase(chatRepo repository.ChatRepository) *ChatUseCase {
	return &ChatUseCase{
		chatRepo: chatRepo,
	}
}

// EnsureChat creates the chat for a winning claim, or returns the existing
// one unchanged. Idempotent so the arbitrator's win path can be re-run under
// retry without ever producing a duplicate.
func (uc *ChatUseCase) EnsureChat(ctx context.Context, itemID, ownerID, claimerID string) (*entity.Chat, error) {
	existing, err := uc.chatRepo.GetByItemAndClaimer(ctx, itemID, claimerID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	chat := &entity.Chat{
		ItemID:    itemID,
		OwnerID:   ownerID,
		ClaimerID: claimerID,
	}
	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}

	return chat, nil
}

func (uc *ChatUseCase) GetChat(ctx context.Context, userID, chatID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.Participant(userID) {
		return nil, errors.Forbidden("you are not a participant of this chat", nil)
	}
	return chat, nil
}

func (uc *ChatUseCase) ListChats(ctx context.Context, userID string) ([]*entity.Chat, error) {
	return uc.chatRepo.ListByUserID(ctx, userID)
}

type SendMessageInput struct {
	ChatID  string
	Content string
}

// SendMessage appends a message and then updates the chat's denormalized
// summary. The two writes are not atomic; a reader polling the chat may
// briefly see the old summary, which self-corrects on the next write.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*entity.Message, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, errors.Validation("message content must not be empty")
	}

	chat, err := uc.chatRepo.GetByID(ctx, input.ChatID)
	if err != nil {
		return nil, err
	}
	if !chat.Participant(senderID) {
		return nil, errors.Forbidden("you are not a participant of this chat", nil)
	}

	message := &entity.Message{
		ChatID:     chat.ID,
		SenderID:   senderID,
		ReceiverID: chat.OtherParty(senderID),
		Content:    input.Content,
		IsRead:     false,
		CreatedAt:  time.Now(),
	}
	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if err := uc.chatRepo.SetLastMessage(ctx, chat.ID, message.Content, message.CreatedAt, message.ReceiverID); err != nil {
		// The message itself is durable; the summary catches up on the
		// next successful write.
		logger.Warn("Message %s written but chat summary update failed: %v", message.ID, err)
	}

	return message, nil
}

// ListMessages returns the chat history ascending by creation time.
func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, chatID string) ([]*entity.Message, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.Participant(userID) {
		return nil, errors.Forbidden("you are not a participant of this chat", nil)
	}

	return uc.chatRepo.ListMessages(ctx, chatID)
}

// MarkRead flags the reader's received messages as read and resets their
// unread counter on the chat.
func (uc *ChatUseCase) MarkRead(ctx context.Context, userID, chatID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !chat.Participant(userID) {
		return errors.Forbidden("you are not a participant of this chat", nil)
	}

	if err := uc.chatRepo.MarkMessagesRead(ctx, chatID, userID); err != nil {
		return err
	}
	return uc.chatRepo.ResetUnread(ctx, chatID, userID)
}

// WatchMessages streams the chat's message history to fn until ctx is
// cancelled.
func (uc *ChatUseCase) WatchMessages(ctx context.Context, userID, chatID string, fn func(messages []*entity.Message)) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !chat.Participant(userID) {
		return errors.Forbidden("you are not a participant of this chat", nil)
	}

	return uc.chatRepo.ListenMessages(ctx, chatID, fn)
}
