package repository

import (
	"context"
	"sort"
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

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}
	if chat.CreatedAt.IsZero() {
		chat.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("chats").Doc(chat.ID).Set(ctx, chat)
	if err != nil {
		return errors.Unavailable("Failed to create chat", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.client.Collection("chats").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat", err)
		}
		return nil, errors.Unavailable("Failed to get chat", err)
	}

	return r.parseChat(doc)
}

func (r *firestoreChatRepository) GetByItemAndClaimer(ctx context.Context, itemID, claimerID string) (*entity.Chat, error) {
	query := r.client.Collection("chats").
		Where("itemId", "==", itemID).
		Where("claimerId", "==", claimerID).
		Limit(1)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Unavailable("Failed to query chats", err)
	}
	if len(docs) == 0 {
		return nil, errors.NotFound("Chat", nil)
	}

	return r.parseChat(docs[0])
}

// ListByUserID merges the chats where the user is the owner with those where
// the user is the claimer, newest activity first. Two queries because
// Firestore has no OR filter across fields.
func (r *firestoreChatRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error) {
	ownerDocs, err := r.client.Collection("chats").
		Where("ownerId", "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Unavailable("Failed to query chats", err)
	}

	claimerDocs, err := r.client.Collection("chats").
		Where("claimerId", "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Unavailable("Failed to query chats", err)
	}

	var chats []*entity.Chat
	for _, doc := range append(ownerDocs, claimerDocs...) {
		chat, err := r.parseChat(doc)
		if err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}

	sort.SliceStable(chats, func(i, j int) bool {
		var ti, tj time.Time
		if chats[i].LastMessageAt != nil {
			ti = *chats[i].LastMessageAt
		}
		if chats[j].LastMessageAt != nil {
			tj = *chats[j].LastMessageAt
		}
		return ti.After(tj)
	})

	return chats, nil
}

func (r *firestoreChatRepository) SetLastMessage(ctx context.Context, chatID, content string, at time.Time, receiverID string) error {
	chat, err := r.GetByID(ctx, chatID)
	if err != nil {
		return err
	}

	unreadField := "claimerUnreadCount"
	if receiverID == chat.OwnerID {
		unreadField = "ownerUnreadCount"
	}

	_, err = r.client.Collection("chats").Doc(chatID).Update(ctx, []firestore.Update{
		{Path: "lastMessage", Value: content},
		{Path: "lastMessageAt", Value: at},
		{Path: unreadField, Value: firestore.Increment(1)},
	})
	if err != nil {
		return errors.Unavailable("Failed to update chat summary", err)
	}

	return nil
}

func (r *firestoreChatRepository) ResetUnread(ctx context.Context, chatID, readerID string) error {
	chat, err := r.GetByID(ctx, chatID)
	if err != nil {
		return err
	}

	unreadField := "claimerUnreadCount"
	if readerID == chat.OwnerID {
		unreadField = "ownerUnreadCount"
	}

	_, err = r.client.Collection("chats").Doc(chatID).Update(ctx, []firestore.Update{
		{Path: unreadField, Value: 0},
	})
	if err != nil {
		return errors.Unavailable("Failed to reset unread count", err)
	}

	return nil
}

func (r *firestoreChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Unavailable("Failed to create message", err)
	}

	return nil
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, chatID string) ([]*entity.Message, error) {
	query := r.messagesQuery(chatID)
	return r.collectMessages(query.Documents(ctx))
}

func (r *firestoreChatRepository) MarkMessagesRead(ctx context.Context, chatID, readerID string) error {
	docs, err := r.client.Collection("messages").
		Where("chatId", "==", chatID).
		Where("receiverId", "==", readerID).
		Where("isRead", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return errors.Unavailable("Failed to query unread messages", err)
	}

	bw := r.client.BulkWriter(ctx)
	for _, doc := range docs {
		bw.Update(doc.Ref, []firestore.Update{
			{Path: "isRead", Value: true},
		})
	}
	bw.End()

	return nil
}

func (r *firestoreChatRepository) ListenMessages(ctx context.Context, chatID string, fn func(messages []*entity.Message)) error {
	snapshots := r.messagesQuery(chatID).Snapshots(ctx)
	go func() {
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("Message listener for chat %s stopped: %v", chatID, err)
				}
				return
			}
			messages, err := r.collectMessages(snap.Documents)
			if err != nil {
				logger.Warn("Message listener for chat %s failed to read snapshot: %v", chatID, err)
				continue
			}
			fn(messages)
		}
	}()

	return nil
}

// messagesQuery orders by createdAt with messageId as tie-breaker so readers
// always observe the same total order.
func (r *firestoreChatRepository) messagesQuery(chatID string) firestore.Query {
	return r.client.Collection("messages").
		Where("chatId", "==", chatID).
		OrderBy("createdAt", firestore.Asc).
		OrderBy("messageId", firestore.Asc)
}

func (r *firestoreChatRepository) parseChat(doc *firestore.DocumentSnapshot) (*entity.Chat, error) {
	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.Internal("Failed to parse chat data", err)
	}
	return &chat, nil
}

func (r *firestoreChatRepository) collectMessages(iter *firestore.DocumentIterator) ([]*entity.Message, error) {
	var messages []*entity.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Unavailable("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, errors.Internal("Failed to parse message data", err)
		}
		messages = append(messages, &message)
	}

	return messages, nil
}
