package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"freestuff/internal/domain/entity"
	"freestuff/pkg/errors"
)

// In-memory repositories backing the use case tests. The mutex-guarded
// status update gives the same linearizable conditional-write guarantee the
// Firestore transaction provides, so the arbitration tests exercise real
// races with goroutines.

type memItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Item

	// statusErr, when set, fails the next UpdateStatus call to simulate a
	// transient store outage.
	statusErr error
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{items: make(map[string]*entity.Item)}
}

func (r *memItemRepo) Create(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, errors.NotFound("Item", nil)
	}
	cp := *item
	return &cp, nil
}

func (r *memItemRepo) ListAvailable(ctx context.Context) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Item
	for _, item := range r.items {
		if item.Status == entity.ItemStatusAvailable {
			cp := *item
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memItemRepo) ListByOwnerID(ctx context.Context, ownerID string) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Item
	for _, item := range r.items {
		if item.OwnerID == ownerID {
			cp := *item
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memItemRepo) UpdateStatus(ctx context.Context, id string, expected, next entity.ItemStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.statusErr != nil {
		err := r.statusErr
		r.statusErr = nil
		return err
	}
	item, ok := r.items[id]
	if !ok {
		return errors.NotFound("Item", nil)
	}
	if item.Status != expected {
		return errors.Conflict("Item status changed by another writer")
	}
	item.Status = next
	return nil
}

func (r *memItemRepo) ListenAvailable(ctx context.Context, fn func(items []*entity.Item)) error {
	items, _ := r.ListAvailable(ctx)
	fn(items)
	return nil
}

type memClaimRepo struct {
	mu     sync.Mutex
	claims map[string]*entity.Claim
}

func newMemClaimRepo() *memClaimRepo {
	return &memClaimRepo{claims: make(map[string]*entity.Claim)}
}

func (r *memClaimRepo) Create(ctx context.Context, claim *entity.Claim) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if claim.ID == "" {
		claim.ID = uuid.New().String()
	}
	if claim.CreatedAt.IsZero() {
		claim.CreatedAt = time.Now()
	}
	cp := *claim
	r.claims[claim.ID] = &cp
	return nil
}

func (r *memClaimRepo) GetByID(ctx context.Context, id string) (*entity.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	claim, ok := r.claims[id]
	if !ok {
		return nil, errors.NotFound("Claim", nil)
	}
	cp := *claim
	return &cp, nil
}

func (r *memClaimRepo) ListByClaimerID(ctx context.Context, claimerID string) ([]*entity.Claim, error) {
	return r.list(func(c *entity.Claim) bool { return c.ClaimerID == claimerID })
}

func (r *memClaimRepo) ListByOwnerID(ctx context.Context, ownerID string) ([]*entity.Claim, error) {
	return r.list(func(c *entity.Claim) bool { return c.OwnerID == ownerID })
}

func (r *memClaimRepo) list(keep func(*entity.Claim) bool) ([]*entity.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Claim
	for _, claim := range r.claims {
		if keep(claim) {
			cp := *claim
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memClaimRepo) UpdateStatus(ctx context.Context, id string, status entity.ClaimStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	claim, ok := r.claims[id]
	if !ok {
		return errors.NotFound("Claim", nil)
	}
	claim.Status = status
	return nil
}

func (r *memClaimRepo) GetWinnerByItemID(ctx context.Context, itemID string) (*entity.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, claim := range r.claims {
		if claim.ItemID == itemID && claim.Status == entity.ClaimStatusApproved {
			cp := *claim
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Winning claim", nil)
}

type memChatRepo struct {
	mu       sync.Mutex
	chats    map[string]*entity.Chat
	messages []*entity.Message
}

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{chats: make(map[string]*entity.Chat)}
}

func (r *memChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}
	if chat.CreatedAt.IsZero() {
		chat.CreatedAt = time.Now()
	}
	cp := *chat
	r.chats[chat.ID] = &cp
	return nil
}

func (r *memChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	cp := *chat
	return &cp, nil
}

func (r *memChatRepo) GetByItemAndClaimer(ctx context.Context, itemID, claimerID string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, chat := range r.chats {
		if chat.ItemID == itemID && chat.ClaimerID == claimerID {
			cp := *chat
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Chat", nil)
}

func (r *memChatRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Chat
	for _, chat := range r.chats {
		if chat.Participant(userID) {
			cp := *chat
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		var ti, tj time.Time
		if out[i].LastMessageAt != nil {
			ti = *out[i].LastMessageAt
		}
		if out[j].LastMessageAt != nil {
			tj = *out[j].LastMessageAt
		}
		return ti.After(tj)
	})
	return out, nil
}

func (r *memChatRepo) SetLastMessage(ctx context.Context, chatID, content string, at time.Time, receiverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[chatID]
	if !ok {
		return errors.NotFound("Chat", nil)
	}
	chat.LastMessage = content
	t := at
	chat.LastMessageAt = &t
	if receiverID == chat.OwnerID {
		chat.OwnerUnreadCount++
	} else {
		chat.ClaimerUnreadCount++
	}
	return nil
}

func (r *memChatRepo) ResetUnread(ctx context.Context, chatID, readerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[chatID]
	if !ok {
		return errors.NotFound("Chat", nil)
	}
	if readerID == chat.OwnerID {
		chat.OwnerUnreadCount = 0
	} else {
		chat.ClaimerUnreadCount = 0
	}
	return nil
}

func (r *memChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	cp := *message
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *memChatRepo) ListMessages(ctx context.Context, chatID string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Message
	for _, msg := range r.messages {
		if msg.ChatID == chatID {
			cp := *msg
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memChatRepo) MarkMessagesRead(ctx context.Context, chatID, readerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, msg := range r.messages {
		if msg.ChatID == chatID && msg.ReceiverID == readerID {
			msg.IsRead = true
		}
	}
	return nil
}

func (r *memChatRepo) ListenMessages(ctx context.Context, chatID string, fn func(messages []*entity.Message)) error {
	messages, _ := r.ListMessages(ctx, chatID)
	fn(messages)
	return nil
}
